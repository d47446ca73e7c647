package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/generation"
	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/platform/youtube"
	"github.com/youchat/youchat-api/internal/store"
)

// transcriptLoadedReply is sent when a message contains a YouTube link and the
// transcript is fetched successfully. No model call is made for these turns.
const transcriptLoadedReply = "I've retrieved the transcript. What would you like to ask?"

// ChatResult is the outcome of handling one chat turn.
type ChatResult struct {
	SessionID uuid.UUID
	Reply     *domain.Message
}

// ChatService orchestrates chat turns: session bookkeeping, transcript
// loading when a message carries a YouTube link, and reply generation.
type ChatService struct {
	logger      *slog.Logger
	sessions    store.SessionStore
	messages    store.MessageStore
	transcripts *TranscriptService
	generator   generation.Generator
}

// NewChatService creates a ChatService.
func NewChatService(
	log *slog.Logger,
	sessions store.SessionStore,
	messages store.MessageStore,
	transcripts *TranscriptService,
	generator generation.Generator,
) *ChatService {
	if log == nil {
		log = slog.Default()
	}
	return &ChatService{
		logger:      log.With("component", "chat_service"),
		sessions:    sessions,
		messages:    messages,
		transcripts: transcripts,
		generator:   generator,
	}
}

// HandleMessage processes one chat turn. A zero sessionID starts a new
// session; userID may be uuid.Nil for anonymous chats. When the message
// contains a YouTube link the transcript is loaded into the session and a
// fixed acknowledgement is returned instead of a generated reply.
func (s *ChatService) HandleMessage(
	ctx context.Context,
	sessionID uuid.UUID,
	userID uuid.UUID,
	message string,
) (*ChatResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	session, err := s.resolveSession(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	userMsg, err := domain.NewMessage(session.ID, domain.MessageRoleUser, message)
	if err != nil {
		return nil, fmt.Errorf("invalid user message: %w", err)
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	var replyContent string
	if videoID, ok := youtube.ExtractVideoID(message); ok {
		replyContent, err = s.loadTranscript(ctx, session, videoID)
	} else {
		replyContent, err = s.generateReply(ctx, session, message)
	}
	if err != nil {
		return nil, err
	}

	reply, err := domain.NewMessage(session.ID, domain.MessageRoleAssistant, replyContent)
	if err != nil {
		return nil, fmt.Errorf("invalid assistant message: %w", err)
	}
	if err := s.messages.Create(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	log.Debug("chat turn completed",
		"session_id", session.ID,
		"has_video", session.VideoID != "")

	return &ChatResult{SessionID: session.ID, Reply: reply}, nil
}

// resolveSession loads an existing session or creates a new one when
// sessionID is zero. Sessions owned by a different user are reported as not
// found so session IDs cannot be probed.
func (s *ChatService) resolveSession(
	ctx context.Context,
	sessionID uuid.UUID,
	userID uuid.UUID,
) (*domain.ChatSession, error) {
	if sessionID == uuid.Nil {
		session := domain.NewChatSession(userID)
		if err := s.sessions.Create(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
		return session, nil
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if session.UserID != uuid.Nil && session.UserID != userID {
		return nil, store.ErrSessionNotFound
	}

	return session, nil
}

// loadTranscript fetches the transcript for videoID, attaches it to the
// session, and returns the fixed acknowledgement reply.
func (s *ChatService) loadTranscript(
	ctx context.Context,
	session *domain.ChatSession,
	videoID string,
) (string, error) {
	if _, err := s.transcripts.GetOrFetch(ctx, videoID); err != nil {
		return "", err
	}

	if err := s.sessions.SetVideo(ctx, session.ID, videoID); err != nil {
		return "", fmt.Errorf("failed to attach video to session: %w", err)
	}
	session.SetVideo(videoID)

	return transcriptLoadedReply, nil
}

// generateReply produces a model reply, including the session's transcript as
// context when one has been loaded.
func (s *ChatService) generateReply(
	ctx context.Context,
	session *domain.ChatSession,
	message string,
) (string, error) {
	var transcript string
	if session.VideoID != "" {
		t, err := s.transcripts.GetOrFetch(ctx, session.VideoID)
		if err != nil {
			return "", err
		}
		transcript = t.Transcript
	}

	reply, err := s.generator.GenerateReply(ctx, message, transcript)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}
	return reply, nil
}
