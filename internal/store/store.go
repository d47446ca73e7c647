// Package store defines the persistence interfaces for the application's
// entities. Implementations live under internal/platform/postgres.
package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/youchat/youchat-api/internal/domain"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	// Create saves a new user. The implementation hashes the plaintext
	// Password field before storage and clears it from the struct.
	// Returns ErrEmailExists if the email is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// SessionStore defines persistence operations for chat sessions.
type SessionStore interface {
	// Create saves a new chat session.
	Create(ctx context.Context, session *domain.ChatSession) error

	// GetByID retrieves a session by ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)

	// ListByUser returns the sessions owned by the given user,
	// most recently updated first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatSession, error)

	// SetVideo attaches a video to the session.
	// Returns ErrSessionNotFound if the session does not exist.
	SetVideo(ctx context.Context, id uuid.UUID, videoID string) error

	// Delete removes a session and, via cascade, its messages.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// MessageStore defines persistence operations for chat messages.
type MessageStore interface {
	// Create saves a new message.
	// Returns ErrInvalidEntity if the session does not exist.
	Create(ctx context.Context, message *domain.Message) error

	// ListBySession returns all messages of a session in chronological order.
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Message, error)
}

// TranscriptStore defines persistence operations for cached transcripts.
type TranscriptStore interface {
	// Upsert inserts the transcript or replaces the cached text for the
	// same video ID, preserving any existing summary.
	Upsert(ctx context.Context, transcript *domain.Transcript) error

	// GetByVideoID retrieves a cached transcript.
	// Returns ErrTranscriptNotFound if the video has not been cached.
	GetByVideoID(ctx context.Context, videoID string) (*domain.Transcript, error)

	// UpdateSummary sets the summary text and status for a video.
	// Returns ErrTranscriptNotFound if the video has not been cached.
	UpdateSummary(ctx context.Context, videoID string, status domain.SummaryStatus, summary string) error
}
