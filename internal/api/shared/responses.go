package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/redact"
)

// ErrorResponse is the standard JSON shape for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithJSON writes a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Default().Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message.
func RespondWithError(w http.ResponseWriter, status int, message string) {
	RespondWithJSON(w, status, ErrorResponse{Error: message})
}

// RespondWithErrorAndLog logs the underlying error with redaction applied and
// writes a safe message to the client.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	safeMessage string,
	err error,
) {
	log := logger.FromContext(r.Context())
	if err != nil {
		log.Error("request failed",
			"status", status,
			"path", r.URL.Path,
			"method", r.Method,
			"trace_id", GetTraceID(r.Context()),
			"error", redact.Error(err))
	}
	RespondWithError(w, status, safeMessage)
}
