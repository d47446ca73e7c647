package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/store"
)

// PostgresTranscriptStore implements the store.TranscriptStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTranscriptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTranscriptStore creates a new PostgreSQL implementation of the
// TranscriptStore interface. If logger is nil, a default logger will be used.
func NewPostgresTranscriptStore(db store.DBTX, logger *slog.Logger) *PostgresTranscriptStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTranscriptStore{
		db:     db,
		logger: logger.With(slog.String("component", "transcript_store")),
	}
}

// Ensure PostgresTranscriptStore implements store.TranscriptStore interface
var _ store.TranscriptStore = (*PostgresTranscriptStore)(nil)

// Upsert implements store.TranscriptStore.Upsert
// A conflicting video ID refreshes the transcript text and fetch time while
// preserving the existing summary.
func (s *PostgresTranscriptStore) Upsert(ctx context.Context, transcript *domain.Transcript) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := transcript.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO transcripts (video_id, transcript, summary, summary_status, fetched_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (video_id) DO UPDATE
		SET transcript = EXCLUDED.transcript,
		    fetched_at = EXCLUDED.fetched_at,
		    updated_at = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		transcript.VideoID,
		transcript.Transcript,
		nullableString(transcript.Summary),
		transcript.SummaryStatus,
		transcript.FetchedAt,
		transcript.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert transcript",
			slog.String("error", err.Error()),
			slog.String("video_id", transcript.VideoID))
		return fmt.Errorf("failed to upsert transcript: %w", err)
	}

	log.Debug("transcript cached",
		slog.String("video_id", transcript.VideoID),
		slog.Int("length", len(transcript.Transcript)))
	return nil
}

// GetByVideoID implements store.TranscriptStore.GetByVideoID
// Returns store.ErrTranscriptNotFound if the video has not been cached.
func (s *PostgresTranscriptStore) GetByVideoID(ctx context.Context, videoID string) (*domain.Transcript, error) {
	query := `
		SELECT video_id, transcript, summary, summary_status, fetched_at, updated_at
		FROM transcripts
		WHERE video_id = $1
	`
	var (
		transcript domain.Transcript
		summary    sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, videoID).Scan(
		&transcript.VideoID,
		&transcript.Transcript,
		&summary,
		&transcript.SummaryStatus,
		&transcript.FetchedAt,
		&transcript.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTranscriptNotFound
		}
		return nil, fmt.Errorf("failed to query transcript: %w", err)
	}

	transcript.Summary = summary.String
	return &transcript, nil
}

// UpdateSummary implements store.TranscriptStore.UpdateSummary
func (s *PostgresTranscriptStore) UpdateSummary(
	ctx context.Context,
	videoID string,
	status domain.SummaryStatus,
	summary string,
) error {
	query := `
		UPDATE transcripts
		SET summary = $1, summary_status = $2, updated_at = $3
		WHERE video_id = $4
	`
	result, err := s.db.ExecContext(ctx, query,
		nullableString(summary),
		status,
		time.Now().UTC(),
		videoID,
	)
	if err != nil {
		return fmt.Errorf("failed to update summary: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTranscriptNotFound
	}

	return nil
}
