package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/api/middleware"
	"github.com/youchat/youchat-api/internal/api/shared"
	"github.com/youchat/youchat-api/internal/service"
)

// ChatHandler handles chat turns.
type ChatHandler struct {
	chatService *service.ChatService
	logger      *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chatService *service.ChatService, log *slog.Logger) *ChatHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ChatHandler{
		chatService: chatService,
		logger:      log.With("component", "chat_handler"),
	}
}

// Chat handles POST /chat/. Anonymous requests are allowed; authenticated
// requests tie the session to the user.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sessionID := uuid.Nil
	if req.SessionID != "" {
		// Format is already checked by the uuid validate tag.
		sessionID = uuid.MustParse(req.SessionID)
	}

	userID := middleware.UserIDFromContext(r.Context())

	result, err := h.chatService.HandleMessage(r.Context(), sessionID, userID, req.Message)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, ChatResponse{
		Reply: ChatReply{
			Role:    string(result.Reply.Role),
			Content: result.Reply.Content,
		},
		SessionID: result.SessionID.String(),
	})
}
