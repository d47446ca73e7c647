package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/youchat/youchat-api/internal/domain"
	"github.com/youchat/youchat-api/internal/store"
	"github.com/youchat/youchat-api/internal/task"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockSessionStore implements store.SessionStore with function fields.
type mockSessionStore struct {
	createFn     func(ctx context.Context, session *domain.ChatSession) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.ChatSession, error)
	setVideoFn   func(ctx context.Context, id uuid.UUID, videoID string) error
	deleteFn     func(ctx context.Context, id uuid.UUID) error
}

var _ store.SessionStore = (*mockSessionStore)(nil)

func (m *mockSessionStore) Create(ctx context.Context, session *domain.ChatSession) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChatSession, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrSessionNotFound
}

func (m *mockSessionStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatSession, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockSessionStore) SetVideo(ctx context.Context, id uuid.UUID, videoID string) error {
	if m.setVideoFn != nil {
		return m.setVideoFn(ctx, id, videoID)
	}
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// mockMessageStore implements store.MessageStore with function fields.
type mockMessageStore struct {
	createFn        func(ctx context.Context, message *domain.Message) error
	listBySessionFn func(ctx context.Context, sessionID uuid.UUID) ([]*domain.Message, error)

	created []*domain.Message
}

var _ store.MessageStore = (*mockMessageStore)(nil)

func (m *mockMessageStore) Create(ctx context.Context, message *domain.Message) error {
	if m.createFn != nil {
		return m.createFn(ctx, message)
	}
	m.created = append(m.created, message)
	return nil
}

func (m *mockMessageStore) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.Message, error) {
	if m.listBySessionFn != nil {
		return m.listBySessionFn(ctx, sessionID)
	}
	return nil, nil
}

// mockTranscriptStore implements store.TranscriptStore with function fields.
type mockTranscriptStore struct {
	upsertFn        func(ctx context.Context, transcript *domain.Transcript) error
	getByVideoIDFn  func(ctx context.Context, videoID string) (*domain.Transcript, error)
	updateSummaryFn func(ctx context.Context, videoID string, status domain.SummaryStatus, summary string) error
}

var _ store.TranscriptStore = (*mockTranscriptStore)(nil)

func (m *mockTranscriptStore) Upsert(ctx context.Context, transcript *domain.Transcript) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, transcript)
	}
	return nil
}

func (m *mockTranscriptStore) GetByVideoID(ctx context.Context, videoID string) (*domain.Transcript, error) {
	if m.getByVideoIDFn != nil {
		return m.getByVideoIDFn(ctx, videoID)
	}
	return nil, store.ErrTranscriptNotFound
}

func (m *mockTranscriptStore) UpdateSummary(ctx context.Context, videoID string, status domain.SummaryStatus, summary string) error {
	if m.updateSummaryFn != nil {
		return m.updateSummaryFn(ctx, videoID, status, summary)
	}
	return nil
}

// mockFetcher implements TranscriptFetcher with a function field.
type mockFetcher struct {
	fetchFn func(ctx context.Context, videoID string) (string, error)
}

func (m *mockFetcher) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, videoID)
	}
	return "mock transcript", nil
}

// mockGenerator implements generation.Generator with function fields.
type mockGenerator struct {
	generateReplyFn   func(ctx context.Context, message, transcript string) (string, error)
	generateSummaryFn func(ctx context.Context, transcript string) (string, error)
}

func (m *mockGenerator) GenerateReply(ctx context.Context, message, transcript string) (string, error) {
	if m.generateReplyFn != nil {
		return m.generateReplyFn(ctx, message, transcript)
	}
	return "mock reply", nil
}

func (m *mockGenerator) GenerateSummary(ctx context.Context, transcript string) (string, error) {
	if m.generateSummaryFn != nil {
		return m.generateSummaryFn(ctx, transcript)
	}
	return "mock summary", nil
}

// mockSubmitter implements TaskSubmitter with a function field.
type mockSubmitter struct {
	submitFn  func(ctx context.Context, t task.Task) error
	submitted []task.Task
}

func (m *mockSubmitter) Submit(ctx context.Context, t task.Task) error {
	if m.submitFn != nil {
		return m.submitFn(ctx, t)
	}
	m.submitted = append(m.submitted, t)
	return nil
}
