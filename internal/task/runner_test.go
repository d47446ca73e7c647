package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youchat/youchat-api/internal/domain"
)

// memTaskStore is an in-memory TaskStore for runner tests.
type memTaskStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*TaskRecord
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{records: make(map[uuid.UUID]*TaskRecord)}
}

func (s *memTaskStore) SaveTask(_ context.Context, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[task.ID()] = &TaskRecord{
		ID:        task.ID(),
		Type:      task.Type(),
		Payload:   task.Payload(),
		Status:    task.Status(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	return nil
}

func (s *memTaskStore) UpdateTaskStatus(_ context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[taskID]; ok {
		record.Status = status
		record.ErrorMessage = errorMsg
		record.UpdatedAt = time.Now()
	}
	return nil
}

func (s *memTaskStore) GetPendingTasks(context.Context) ([]*TaskRecord, error) {
	return s.byStatus(TaskStatusPending), nil
}

func (s *memTaskStore) GetProcessingTasks(_ context.Context, olderThan time.Duration) ([]*TaskRecord, error) {
	records := s.byStatus(TaskStatusProcessing)
	if olderThan == 0 {
		return records, nil
	}
	var stuck []*TaskRecord
	cutoff := time.Now().Add(-olderThan)
	for _, r := range records {
		if r.UpdatedAt.Before(cutoff) {
			stuck = append(stuck, r)
		}
	}
	return stuck, nil
}

func (s *memTaskStore) byStatus(status TaskStatus) []*TaskRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*TaskRecord
	for _, record := range s.records {
		if record.Status == status {
			copied := *record
			result = append(result, &copied)
		}
	}
	return result
}

func (s *memTaskStore) status(taskID uuid.UUID) TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[taskID]; ok {
		return record.Status
	}
	return ""
}

// stubTask is a controllable Task implementation for runner tests.
type stubTask struct {
	id        uuid.UUID
	executeFn func(ctx context.Context) error
	done      chan struct{}
}

func newStubTask(executeFn func(ctx context.Context) error) *stubTask {
	return &stubTask{
		id:        uuid.New(),
		executeFn: executeFn,
		done:      make(chan struct{}),
	}
}

func (t *stubTask) ID() uuid.UUID      { return t.id }
func (t *stubTask) Type() string       { return "stub" }
func (t *stubTask) Payload() []byte    { return []byte(`{}`) }
func (t *stubTask) Status() TaskStatus { return TaskStatusPending }

func (t *stubTask) Execute(ctx context.Context) error {
	defer close(t.done)
	if t.executeFn != nil {
		return t.executeFn(ctx)
	}
	return nil
}

func (t *stubTask) waitDone(tb testing.TB) {
	tb.Helper()
	select {
	case <-t.done:
	case <-time.After(5 * time.Second):
		tb.Fatal("timed out waiting for task to execute")
	}
}

func runnerConfigForTest() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            1,
		QueueSize:              4,
		StuckTaskAge:           time.Hour,
		StuckTaskCheckInterval: time.Hour,
	}
}

func TestRunnerExecutesSubmittedTask(t *testing.T) {
	store := newMemTaskStore()
	runner := NewTaskRunner(store, runnerConfigForTest(), testLogger())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	task := newStubTask(nil)
	require.NoError(t, runner.Submit(context.Background(), task))

	task.waitDone(t)

	// Wait for the status write that follows Execute.
	assert.Eventually(t, func() bool {
		return store.status(task.ID()) == TaskStatusCompleted
	}, 5*time.Second, 10*time.Millisecond, "task should be marked completed")
}

func TestRunnerMarksFailedTask(t *testing.T) {
	store := newMemTaskStore()
	runner := NewTaskRunner(store, runnerConfigForTest(), testLogger())

	var handlerCalled bool
	var mu sync.Mutex
	runner.SetErrorHandler(func(Task, error) {
		mu.Lock()
		handlerCalled = true
		mu.Unlock()
	})

	require.NoError(t, runner.Start())
	defer runner.Stop()

	task := newStubTask(func(context.Context) error {
		return assert.AnError
	})
	require.NoError(t, runner.Submit(context.Background(), task))

	task.waitDone(t)

	assert.Eventually(t, func() bool {
		return store.status(task.ID()) == TaskStatusFailed
	}, 5*time.Second, 10*time.Millisecond, "task should be marked failed")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return handlerCalled
	}, 5*time.Second, 10*time.Millisecond, "error handler should run")
}

func TestRunnerQueueFull(t *testing.T) {
	store := newMemTaskStore()
	cfg := runnerConfigForTest()
	cfg.QueueSize = 1
	runner := NewTaskRunner(store, cfg, testLogger())
	// Not started: nothing drains the queue.

	require.NoError(t, runner.Submit(context.Background(), newStubTask(nil)))

	err := runner.Submit(context.Background(), newStubTask(nil))
	assert.ErrorContains(t, err, "queue is full")
}

func TestRunnerRecovery(t *testing.T) {
	store := newMemTaskStore()

	// Simulate records left behind by a previous run.
	provider := &mockProvider{}
	writer := &mockWriter{updateFn: func(context.Context, string, domain.SummaryStatus, string) error {
		return nil
	}}
	factory := newFactory(t, provider, writer, &mockSummarizer{})

	pendingTask, err := factory.CreateTask(testVideoID)
	require.NoError(t, err)
	require.NoError(t, store.SaveTask(context.Background(), pendingTask))

	interruptedTask, err := factory.CreateTask("a_b-C1d2E3f")
	require.NoError(t, err)
	require.NoError(t, store.SaveTask(context.Background(), interruptedTask))
	require.NoError(t, store.UpdateTaskStatus(context.Background(), interruptedTask.ID(), TaskStatusProcessing, ""))

	runner := NewTaskRunner(store, runnerConfigForTest(), testLogger())
	runner.SetHydrator(factory)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	assert.Eventually(t, func() bool {
		return store.status(pendingTask.ID()) == TaskStatusCompleted &&
			store.status(interruptedTask.ID()) == TaskStatusCompleted
	}, 5*time.Second, 10*time.Millisecond, "recovered tasks should be executed")
}

func TestRunnerRecoveryMarksUnhydratableTasksFailed(t *testing.T) {
	store := newMemTaskStore()

	badRecord := &TaskRecord{
		ID:      uuid.New(),
		Type:    "unknown_type",
		Payload: []byte(`{}`),
		Status:  TaskStatusPending,
	}
	store.records[badRecord.ID] = badRecord

	factory := newFactory(t, &mockProvider{}, &mockWriter{}, &mockSummarizer{})

	runner := NewTaskRunner(store, runnerConfigForTest(), testLogger())
	runner.SetHydrator(factory)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	assert.Eventually(t, func() bool {
		return store.status(badRecord.ID) == TaskStatusFailed
	}, 5*time.Second, 10*time.Millisecond, "unhydratable records should be marked failed")
}

func TestRunnerStop(t *testing.T) {
	store := newMemTaskStore()
	runner := NewTaskRunner(store, runnerConfigForTest(), testLogger())
	require.NoError(t, runner.Start())

	task := newStubTask(nil)
	require.NoError(t, runner.Submit(context.Background(), task))
	task.waitDone(t)

	// Stop must not deadlock or panic.
	runner.Stop()
}
