// Package task implements background task processing with persisted state
// and crash recovery.
package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task type constants
const (
	// TaskTypeVideoSummary represents the task type for generating a
	// summary of a video transcript
	TaskTypeVideoSummary = "video_summary"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// TaskRecord is the persisted form of a task as stored in the database.
// Records are turned back into executable Tasks by a Hydrator during
// recovery.
type TaskRecord struct {
	ID           uuid.UUID
	Type         string
	Payload      []byte
	Status       TaskStatus
	ErrorMessage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Hydrator rebuilds an executable Task from its persisted record.
// Implementations return an error for unknown task types or malformed
// payloads.
type Hydrator interface {
	Hydrate(record *TaskRecord) (Task, error)
}

// TaskStore defines the persistence operations needed by the task runner.
type TaskStore interface {
	// SaveTask persists a new task
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus updates the status and error message of a task
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks retrieves all tasks with "pending" status
	GetPendingTasks(ctx context.Context) ([]*TaskRecord, error)

	// GetProcessingTasks retrieves tasks with "processing" status,
	// optionally restricted to those untouched for longer than olderThan
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]*TaskRecord, error)
}
