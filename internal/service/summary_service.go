package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/platform/logger"
	"github.com/youchat/youchat-api/internal/store"
	"github.com/youchat/youchat-api/internal/task"
)

// TaskSubmitter enqueues background tasks for execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// SummaryService requests and reports asynchronous transcript summaries.
type SummaryService struct {
	logger      *slog.Logger
	transcripts *TranscriptService
	store       store.TranscriptStore
	factory     *task.SummaryTaskFactory
	runner      TaskSubmitter
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(
	log *slog.Logger,
	transcripts *TranscriptService,
	transcriptStore store.TranscriptStore,
	factory *task.SummaryTaskFactory,
	runner TaskSubmitter,
) *SummaryService {
	if log == nil {
		log = slog.Default()
	}
	return &SummaryService{
		logger:      log.With("component", "summary_service"),
		transcripts: transcripts,
		store:       transcriptStore,
		factory:     factory,
		runner:      runner,
	}
}

// RequestSummary ensures a transcript exists for videoID and enqueues summary
// generation. It is idempotent: a summary that is already pending, in
// progress, or completed is left alone and its current state returned.
func (s *SummaryService) RequestSummary(ctx context.Context, videoID string) (*domain.Transcript, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	transcript, err := s.transcripts.GetOrFetch(ctx, videoID)
	if err != nil {
		return nil, err
	}

	switch transcript.SummaryStatus {
	case domain.SummaryStatusPending, domain.SummaryStatusProcessing, domain.SummaryStatusCompleted:
		log.Debug("summary already requested",
			"video_id", videoID,
			"status", transcript.SummaryStatus)
		return transcript, nil
	}

	summaryTask, err := s.factory.CreateTask(videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to create summary task: %w", err)
	}

	// Mark pending before handing the task to the runner so a fast worker
	// cannot be overwritten by a later pending write.
	if err := s.store.UpdateSummary(ctx, videoID, domain.SummaryStatusPending, ""); err != nil {
		log.Warn("failed to mark summary pending", "video_id", videoID, "error", err)
	}

	if err := s.runner.Submit(ctx, summaryTask); err != nil {
		if markErr := s.store.UpdateSummary(ctx, videoID, domain.SummaryStatusFailed, err.Error()); markErr != nil {
			log.Warn("failed to mark summary failed", "video_id", videoID, "error", markErr)
		}
		return nil, fmt.Errorf("failed to enqueue summary task: %w", err)
	}
	transcript.SummaryStatus = domain.SummaryStatusPending

	log.Info("summary task enqueued", "video_id", videoID, "task_id", summaryTask.ID())
	return transcript, nil
}

// GetSummary returns the stored transcript with its summary state for
// videoID.
func (s *SummaryService) GetSummary(ctx context.Context, videoID string) (*domain.Transcript, error) {
	if !domain.IsValidVideoID(videoID) {
		return nil, domain.ErrInvalidVideoID
	}
	return s.store.GetByVideoID(ctx, videoID)
}
