package api

import (
	"log/slog"
	"net/http"

	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/service"
)

// SummaryHandler requests and reports asynchronous transcript summaries.
type SummaryHandler struct {
	summaries *service.SummaryService
	logger    *slog.Logger
}

// NewSummaryHandler creates a SummaryHandler.
func NewSummaryHandler(summaries *service.SummaryService, log *slog.Logger) *SummaryHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SummaryHandler{
		summaries: summaries,
		logger:    log.With("component", "summary_handler"),
	}
}

// RequestSummary handles POST /api/videos/{videoID}/summary. It enqueues
// summary generation and returns 202; repeated requests for the same video
// are idempotent.
func (h *SummaryHandler) RequestSummary(w http.ResponseWriter, r *http.Request) {
	videoID, ok := videoIDParam(w, r)
	if !ok {
		return
	}

	transcript, err := h.summaries.RequestSummary(r.Context(), videoID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusAccepted, summaryResponse(transcript))
}

// GetSummary handles GET /api/videos/{videoID}/summary.
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	videoID, ok := videoIDParam(w, r)
	if !ok {
		return
	}

	transcript, err := h.summaries.GetSummary(r.Context(), videoID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, summaryResponse(transcript))
}

func summaryResponse(t *domain.Transcript) SummaryResponse {
	return SummaryResponse{
		VideoID: t.VideoID,
		Status:  string(t.SummaryStatus),
		Summary: t.Summary,
	}
}
