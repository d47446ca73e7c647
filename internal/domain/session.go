package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies who authored a chat message.
type MessageRole string

// Possible message roles
const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

// Common validation errors for ChatSession and Message
var (
	ErrEmptySessionID        = errors.New("session ID cannot be empty")
	ErrEmptyMessageID        = errors.New("message ID cannot be empty")
	ErrEmptyMessageSessionID = errors.New("message session ID cannot be empty")
	ErrEmptyMessageContent   = errors.New("message content cannot be empty")
	ErrInvalidMessageRole    = errors.New("invalid message role")
)

// ChatSession represents one conversation thread. A session may belong to an
// authenticated user or be anonymous (UserID is uuid.Nil). When the
// conversation is about a YouTube video, VideoID carries the video whose
// transcript serves as context for follow-up questions.
type ChatSession struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id,omitempty"`
	VideoID   string    `json:"video_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewChatSession creates a new session for the given user.
// Pass uuid.Nil for anonymous sessions.
func NewChatSession(userID uuid.UUID) *ChatSession {
	now := time.Now().UTC()
	return &ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks if the ChatSession has valid data.
func (s *ChatSession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySessionID
	}
	return nil
}

// SetVideo attaches a video to the session and bumps the update timestamp.
func (s *ChatSession) SetVideo(videoID string) {
	s.VideoID = videoID
	s.UpdatedAt = time.Now().UTC()
}

// Message is a single utterance within a chat session.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	SessionID uuid.UUID   `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewMessage creates a new message in the given session.
// Returns an error if validation fails.
func NewMessage(sessionID uuid.UUID, role MessageRole, content string) (*Message, error) {
	msg := &Message{
		ID:        uuid.New(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	if m.ID == uuid.Nil {
		return ErrEmptyMessageID
	}

	if m.SessionID == uuid.Nil {
		return ErrEmptyMessageSessionID
	}

	if m.Content == "" {
		return ErrEmptyMessageContent
	}

	if !isValidMessageRole(m.Role) {
		return ErrInvalidMessageRole
	}

	return nil
}

// isValidMessageRole checks if the given role is a valid MessageRole.
func isValidMessageRole(role MessageRole) bool {
	switch role {
	case MessageRoleUser, MessageRoleAssistant:
		return true
	default:
		return false
	}
}
