package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// Create implements store.SessionStore.Create
// Anonymous sessions are stored with a NULL user_id.
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.ChatSession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO chat_sessions (id, user_id, video_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		nullableUUID(session.UserID),
		nullableString(session.VideoID),
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, session.UserID)
		}
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return fmt.Errorf("failed to create session: %w", err)
	}

	log.Debug("session created", slog.String("session_id", session.ID.String()))
	return nil
}

// GetByID implements store.SessionStore.GetByID
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	query := `
		SELECT id, user_id, video_id, created_at, updated_at
		FROM chat_sessions
		WHERE id = $1
	`
	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}
	return session, nil
}

// ListByUser implements store.SessionStore.ListByUser
// Sessions are ordered by most recent activity first.
func (s *PostgresSessionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatSession, error) {
	query := `
		SELECT id, user_id, video_id, created_at, updated_at
		FROM chat_sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.ChatSession
	for rows.Next() {
		session, err := scanSessionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}

	return sessions, nil
}

// SetVideo implements store.SessionStore.SetVideo
func (s *PostgresSessionStore) SetVideo(ctx context.Context, id uuid.UUID, videoID string) error {
	query := `
		UPDATE chat_sessions
		SET video_id = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := s.db.ExecContext(ctx, query, videoID, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update session video: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}

// Delete implements store.SessionStore.Delete
// Messages are removed by the ON DELETE CASCADE constraint.
func (s *PostgresSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrSessionNotFound
	}

	log.Debug("session deleted", slog.String("session_id", id.String()))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession reads one session from a row scanner, converting the nullable
// user_id and video_id columns back to their zero values.
func scanSession(row rowScanner) (*domain.ChatSession, error) {
	var (
		session domain.ChatSession
		userID  uuid.NullUUID
		videoID sql.NullString
	)
	if err := row.Scan(&session.ID, &userID, &videoID, &session.CreatedAt, &session.UpdatedAt); err != nil {
		return nil, err
	}
	session.UserID = userID.UUID
	session.VideoID = videoID.String
	return &session, nil
}

func scanSessionRow(rows *sql.Rows) (*domain.ChatSession, error) {
	return scanSession(rows)
}

// nullableUUID maps uuid.Nil to a NULL column value.
func nullableUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

// nullableString maps "" to a NULL column value.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
