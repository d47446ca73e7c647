package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/domain"
)

// decodeAndValidate decodes the JSON body into req and runs struct
// validation, writing the error response itself on failure. It returns false
// when the caller should stop processing.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, err.Error())
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, SanitizeValidationError(err))
		return false
	}
	return true
}

// uuidParam parses a UUID URL parameter, writing a 400 response on failure.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// videoIDParam parses and validates a YouTube video ID, taken from the URL
// path or, when the path carries none, the video_id query parameter.
func videoIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	videoID := chi.URLParam(r, "videoID")
	if videoID == "" {
		videoID = r.URL.Query().Get("video_id")
	}
	if !domain.IsValidVideoID(videoID) {
		shared.RespondWithError(w, http.StatusBadRequest, "Invalid YouTube video ID")
		return "", false
	}
	return videoID, true
}
