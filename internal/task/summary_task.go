package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/domain"
)

// Common errors
var (
	ErrNilTranscripts = errors.New("transcript provider cannot be nil")
	ErrNilWriter      = errors.New("summary writer cannot be nil")
	ErrNilGenerator   = errors.New("generator cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrUnknownType    = errors.New("unknown task type")
)

// TranscriptProvider supplies the transcript of a video, fetching and caching
// it if necessary.
type TranscriptProvider interface {
	GetOrFetch(ctx context.Context, videoID string) (*domain.Transcript, error)
}

// SummaryWriter persists the summary text and status for a video.
type SummaryWriter interface {
	UpdateSummary(ctx context.Context, videoID string, status domain.SummaryStatus, summary string) error
}

// SummaryGenerator produces a summary of a transcript.
type SummaryGenerator interface {
	GenerateSummary(ctx context.Context, transcript string) (string, error)
}

// summaryPayload represents the serialized data stored in the task
type summaryPayload struct {
	VideoID string `json:"video_id"`
}

// SummaryTask implements the Task interface for generating a summary of a
// video transcript.
type SummaryTask struct {
	id          uuid.UUID
	videoID     string
	transcripts TranscriptProvider
	writer      SummaryWriter
	generator   SummaryGenerator
	logger      *slog.Logger
	status      TaskStatus
}

// Ensure SummaryTask implements the Task interface
var _ Task = (*SummaryTask)(nil)

// ID returns the task's unique identifier
func (t *SummaryTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *SummaryTask) Type() string {
	return TaskTypeVideoSummary
}

// Payload returns the serialized task data
func (t *SummaryTask) Payload() []byte {
	payload, err := json.Marshal(summaryPayload{VideoID: t.videoID})
	if err != nil {
		// Marshalling a one-field struct of primitives cannot fail.
		t.logger.Error("failed to marshal summary payload", "error", err)
		return nil
	}
	return payload
}

// Status returns the current task status
func (t *SummaryTask) Status() TaskStatus {
	return t.status
}

// Execute fetches the transcript (from cache or YouTube), generates a summary
// through the LLM, and persists the result. The summary status on the
// transcript row tracks progress so clients can poll for completion.
func (t *SummaryTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing

	transcript, err := t.transcripts.GetOrFetch(ctx, t.videoID)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to get transcript for video %s: %w", t.videoID, err)
	}

	if err := t.writer.UpdateSummary(ctx, t.videoID, domain.SummaryStatusProcessing, ""); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to mark summary as processing: %w", err)
	}

	summary, err := t.generator.GenerateSummary(ctx, transcript.Transcript)
	if err != nil {
		t.status = TaskStatusFailed
		if updateErr := t.writer.UpdateSummary(ctx, t.videoID, domain.SummaryStatusFailed, ""); updateErr != nil {
			t.logger.Error("failed to mark summary as failed",
				"video_id", t.videoID,
				"error", updateErr)
		}
		return fmt.Errorf("failed to generate summary for video %s: %w", t.videoID, err)
	}

	if err := t.writer.UpdateSummary(ctx, t.videoID, domain.SummaryStatusCompleted, summary); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to save summary for video %s: %w", t.videoID, err)
	}

	t.status = TaskStatusCompleted
	t.logger.Info("summary generated",
		"video_id", t.videoID,
		"summary_length", len(summary))
	return nil
}

// SummaryTaskFactory creates and hydrates SummaryTask instances.
type SummaryTaskFactory struct {
	transcripts TranscriptProvider
	writer      SummaryWriter
	generator   SummaryGenerator
	logger      *slog.Logger
}

// Ensure SummaryTaskFactory implements the Hydrator interface
var _ Hydrator = (*SummaryTaskFactory)(nil)

// NewSummaryTaskFactory creates a new SummaryTaskFactory
func NewSummaryTaskFactory(
	transcripts TranscriptProvider,
	writer SummaryWriter,
	generator SummaryGenerator,
	logger *slog.Logger,
) (*SummaryTaskFactory, error) {
	if transcripts == nil {
		return nil, ErrNilTranscripts
	}
	if writer == nil {
		return nil, ErrNilWriter
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		return nil, ErrNilLogger
	}

	return &SummaryTaskFactory{
		transcripts: transcripts,
		writer:      writer,
		generator:   generator,
		logger:      logger,
	}, nil
}

// CreateTask creates a new SummaryTask for the given video.
func (f *SummaryTaskFactory) CreateTask(videoID string) (*SummaryTask, error) {
	if !domain.IsValidVideoID(videoID) {
		return nil, domain.ErrInvalidVideoID
	}

	return &SummaryTask{
		id:          uuid.New(),
		videoID:     videoID,
		transcripts: f.transcripts,
		writer:      f.writer,
		generator:   f.generator,
		logger:      f.logger,
		status:      TaskStatusPending,
	}, nil
}

// Hydrate rebuilds a SummaryTask from its persisted record.
// Returns ErrUnknownType for records of other task types.
func (f *SummaryTaskFactory) Hydrate(record *TaskRecord) (Task, error) {
	if record.Type != TaskTypeVideoSummary {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, record.Type)
	}

	var payload summaryPayload
	if err := json.Unmarshal(record.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary payload: %w", err)
	}

	if !domain.IsValidVideoID(payload.VideoID) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVideoID, payload.VideoID)
	}

	return &SummaryTask{
		id:          record.ID,
		videoID:     payload.VideoID,
		transcripts: f.transcripts,
		writer:      f.writer,
		generator:   f.generator,
		logger:      f.logger,
		status:      record.Status,
	}, nil
}
