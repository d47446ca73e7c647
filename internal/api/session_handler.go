package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/api/middleware"
	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/store"
)

// SessionHandler lists, inspects, and deletes a user's chat sessions.
type SessionHandler struct {
	sessions store.SessionStore
	messages store.MessageStore
	logger   *slog.Logger
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(
	sessions store.SessionStore,
	messages store.MessageStore,
	log *slog.Logger,
) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		messages: messages,
		logger:   log.With("component", "session_handler"),
	}
}

// ListSessions handles GET /api/sessions.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())

	sessions, err := h.sessions.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := make([]SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, SessionResponse{
			ID:        s.ID.String(),
			VideoID:   s.VideoID,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		})
	}

	shared.RespondWithJSON(w, http.StatusOK, resp)
}

// GetSessionMessages handles GET /api/sessions/{sessionID}/messages.
func (h *SessionHandler) GetSessionMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	messages, err := h.messages.ListBySession(r.Context(), session.ID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	resp := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, MessageResponse{
			ID:        m.ID.String(),
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}

	shared.RespondWithJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /api/sessions/{sessionID}.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.ownedSession(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Delete(r.Context(), session.ID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ownedSession loads the session named in the URL and verifies it belongs to
// the authenticated user. Sessions owned by others are reported as not found.
func (h *SessionHandler) ownedSession(w http.ResponseWriter, r *http.Request) (*domain.ChatSession, bool) {
	sessionID, ok := uuidParam(w, r, "sessionID")
	if !ok {
		return nil, false
	}

	userID := middleware.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return nil, false
	}

	session, err := h.sessions.GetByID(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			HandleAPIError(w, r, store.ErrSessionNotFound)
			return nil, false
		}
		HandleAPIError(w, r, err)
		return nil, false
	}

	if session.UserID != userID {
		HandleAPIError(w, r, store.ErrSessionNotFound)
		return nil, false
	}

	return session, true
}
