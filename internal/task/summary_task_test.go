package task

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youchat/youchat-api/internal/domain"
)

const testVideoID = "dQw4w9WgXcQ"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockProvider implements TranscriptProvider with a function field.
type mockProvider struct {
	getOrFetchFn func(ctx context.Context, videoID string) (*domain.Transcript, error)
}

func (m *mockProvider) GetOrFetch(ctx context.Context, videoID string) (*domain.Transcript, error) {
	if m.getOrFetchFn != nil {
		return m.getOrFetchFn(ctx, videoID)
	}
	return domain.NewTranscript(videoID, "transcript text")
}

// mockWriter implements SummaryWriter and records every update.
type mockWriter struct {
	updateFn func(ctx context.Context, videoID string, status domain.SummaryStatus, summary string) error
	updates  []domain.SummaryStatus
	summary  string
}

func (m *mockWriter) UpdateSummary(ctx context.Context, videoID string, status domain.SummaryStatus, summary string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, videoID, status, summary)
	}
	m.updates = append(m.updates, status)
	if status == domain.SummaryStatusCompleted {
		m.summary = summary
	}
	return nil
}

// mockSummarizer implements SummaryGenerator with a function field.
type mockSummarizer struct {
	generateFn func(ctx context.Context, transcript string) (string, error)
}

func (m *mockSummarizer) GenerateSummary(ctx context.Context, transcript string) (string, error) {
	if m.generateFn != nil {
		return m.generateFn(ctx, transcript)
	}
	return "a summary", nil
}

func newFactory(t *testing.T, provider *mockProvider, writer *mockWriter, gen *mockSummarizer) *SummaryTaskFactory {
	t.Helper()
	factory, err := NewSummaryTaskFactory(provider, writer, gen, testLogger())
	require.NoError(t, err)
	return factory
}

func TestNewSummaryTaskFactoryValidation(t *testing.T) {
	provider := &mockProvider{}
	writer := &mockWriter{}
	gen := &mockSummarizer{}

	testCases := []struct {
		name    string
		build   func() (*SummaryTaskFactory, error)
		wantErr error
	}{
		{"nil provider", func() (*SummaryTaskFactory, error) {
			return NewSummaryTaskFactory(nil, writer, gen, testLogger())
		}, ErrNilTranscripts},
		{"nil writer", func() (*SummaryTaskFactory, error) {
			return NewSummaryTaskFactory(provider, nil, gen, testLogger())
		}, ErrNilWriter},
		{"nil generator", func() (*SummaryTaskFactory, error) {
			return NewSummaryTaskFactory(provider, writer, nil, testLogger())
		}, ErrNilGenerator},
		{"nil logger", func() (*SummaryTaskFactory, error) {
			return NewSummaryTaskFactory(provider, writer, gen, nil)
		}, ErrNilLogger},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.build()
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestSummaryTaskExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("successful run updates status and saves summary", func(t *testing.T) {
		writer := &mockWriter{}
		gen := &mockSummarizer{
			generateFn: func(_ context.Context, transcript string) (string, error) {
				assert.Equal(t, "transcript text", transcript)
				return "the summary", nil
			},
		}

		factory := newFactory(t, &mockProvider{}, writer, gen)
		task, err := factory.CreateTask(testVideoID)
		require.NoError(t, err)

		require.NoError(t, task.Execute(ctx))

		assert.Equal(t, TaskStatusCompleted, task.Status())
		assert.Equal(t, []domain.SummaryStatus{
			domain.SummaryStatusProcessing,
			domain.SummaryStatusCompleted,
		}, writer.updates)
		assert.Equal(t, "the summary", writer.summary)
	})

	t.Run("transcript failure fails the task", func(t *testing.T) {
		fetchErr := errors.New("video unavailable")
		provider := &mockProvider{
			getOrFetchFn: func(context.Context, string) (*domain.Transcript, error) {
				return nil, fetchErr
			},
		}

		factory := newFactory(t, provider, &mockWriter{}, &mockSummarizer{})
		task, err := factory.CreateTask(testVideoID)
		require.NoError(t, err)

		err = task.Execute(ctx)
		assert.ErrorIs(t, err, fetchErr)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("generation failure marks summary failed", func(t *testing.T) {
		writer := &mockWriter{}
		genErr := errors.New("model overloaded")
		gen := &mockSummarizer{
			generateFn: func(context.Context, string) (string, error) {
				return "", genErr
			},
		}

		factory := newFactory(t, &mockProvider{}, writer, gen)
		task, err := factory.CreateTask(testVideoID)
		require.NoError(t, err)

		err = task.Execute(ctx)
		assert.ErrorIs(t, err, genErr)
		assert.Equal(t, TaskStatusFailed, task.Status())
		assert.Equal(t, []domain.SummaryStatus{
			domain.SummaryStatusProcessing,
			domain.SummaryStatusFailed,
		}, writer.updates)
	})
}

func TestCreateTask(t *testing.T) {
	factory := newFactory(t, &mockProvider{}, &mockWriter{}, &mockSummarizer{})

	t.Run("valid video ID", func(t *testing.T) {
		task, err := factory.CreateTask(testVideoID)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, task.ID())
		assert.Equal(t, TaskTypeVideoSummary, task.Type())
		assert.Equal(t, TaskStatusPending, task.Status())

		var payload summaryPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &payload))
		assert.Equal(t, testVideoID, payload.VideoID)
	})

	t.Run("invalid video ID", func(t *testing.T) {
		_, err := factory.CreateTask("bad")
		assert.ErrorIs(t, err, domain.ErrInvalidVideoID)
	})
}

func TestHydrate(t *testing.T) {
	factory := newFactory(t, &mockProvider{}, &mockWriter{}, &mockSummarizer{})

	t.Run("round trip through record", func(t *testing.T) {
		original, err := factory.CreateTask(testVideoID)
		require.NoError(t, err)

		record := &TaskRecord{
			ID:      original.ID(),
			Type:    original.Type(),
			Payload: original.Payload(),
			Status:  TaskStatusPending,
		}

		hydrated, err := factory.Hydrate(record)
		require.NoError(t, err)
		assert.Equal(t, original.ID(), hydrated.ID())
		assert.Equal(t, TaskTypeVideoSummary, hydrated.Type())

		// The hydrated task is executable.
		require.NoError(t, hydrated.Execute(context.Background()))
	})

	t.Run("unknown task type", func(t *testing.T) {
		record := &TaskRecord{
			ID:      uuid.New(),
			Type:    "something_else",
			Payload: []byte(`{}`),
		}

		_, err := factory.Hydrate(record)
		assert.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("malformed payload", func(t *testing.T) {
		record := &TaskRecord{
			ID:      uuid.New(),
			Type:    TaskTypeVideoSummary,
			Payload: []byte(`{not json`),
		}

		_, err := factory.Hydrate(record)
		assert.Error(t, err)
	})

	t.Run("payload with invalid video ID", func(t *testing.T) {
		record := &TaskRecord{
			ID:      uuid.New(),
			Type:    TaskTypeVideoSummary,
			Payload: []byte(`{"video_id":"nope"}`),
		}

		_, err := factory.Hydrate(record)
		assert.ErrorIs(t, err, domain.ErrInvalidVideoID)
	})
}
