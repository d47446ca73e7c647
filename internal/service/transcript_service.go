package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/store"
)

// TranscriptFetcher retrieves a transcript from an external source.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

// TranscriptService retrieves transcripts, caching them in the store so each
// video is fetched from YouTube at most once.
type TranscriptService struct {
	logger  *slog.Logger
	store   store.TranscriptStore
	fetcher TranscriptFetcher
}

// NewTranscriptService creates a TranscriptService.
func NewTranscriptService(
	log *slog.Logger,
	transcriptStore store.TranscriptStore,
	fetcher TranscriptFetcher,
) *TranscriptService {
	if log == nil {
		log = slog.Default()
	}
	return &TranscriptService{
		logger:  log.With("component", "transcript_service"),
		store:   transcriptStore,
		fetcher: fetcher,
	}
}

// GetOrFetch returns the transcript for videoID, fetching and caching it when
// no stored copy exists.
func (s *TranscriptService) GetOrFetch(ctx context.Context, videoID string) (*domain.Transcript, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidVideoID(videoID) {
		return nil, domain.ErrInvalidVideoID
	}

	cached, err := s.store.GetByVideoID(ctx, videoID)
	if err == nil {
		log.Debug("transcript cache hit", "video_id", videoID)
		return cached, nil
	}
	if !errors.Is(err, store.ErrTranscriptNotFound) {
		return nil, fmt.Errorf("failed to look up transcript: %w", err)
	}

	log.Info("transcript cache miss, fetching from source", "video_id", videoID)
	text, err := s.fetcher.FetchTranscript(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranscriptFetch, err)
	}

	transcript, err := domain.NewTranscript(videoID, text)
	if err != nil {
		return nil, fmt.Errorf("invalid transcript: %w", err)
	}

	if err := s.store.Upsert(ctx, transcript); err != nil {
		// The fetch succeeded; a failed cache write should not fail the
		// request.
		log.Warn("failed to cache transcript", "video_id", videoID, "error", err)
	}

	return transcript, nil
}
