package api

import (
	"log/slog"
	"net/http"

	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/service"
)

// TranscriptHandler serves transcripts directly by video ID.
type TranscriptHandler struct {
	transcripts *service.TranscriptService
	logger      *slog.Logger
}

// NewTranscriptHandler creates a TranscriptHandler.
func NewTranscriptHandler(transcripts *service.TranscriptService, log *slog.Logger) *TranscriptHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TranscriptHandler{
		transcripts: transcripts,
		logger:      log.With("component", "transcript_handler"),
	}
}

// GetTranscript handles GET /transcript/{videoID} and its query-parameter
// form GET /transcript/?video_id=. The transcript is fetched from YouTube on
// first request and cached afterwards.
func (h *TranscriptHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	videoID, ok := videoIDParam(w, r)
	if !ok {
		return
	}

	transcript, err := h.transcripts.GetOrFetch(r.Context(), videoID)
	if err != nil {
		// Unlike the chat flow, an unfetchable video here is a bad request:
		// the caller named the video directly.
		if isTranscriptFetchFailure(err) {
			shared.RespondWithError(w, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, TranscriptResponse{
		VideoID:    transcript.VideoID,
		Transcript: transcript.Transcript,
	})
}
