package repository

import (
	"context"
	"time"

	"cadence/domain/entity"
)

// TaskRepository is the persistence boundary for tasks and their
// materialized occurrences. The scheduling engine itself never touches
// storage; callers load a task, run it through the engine and persist the
// returned value here. Serializing concurrent writes to one task's
// authoritative copy is this layer's job, not the engine's.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error

	// Update replaces the stored task and rewrites its occurrence rows
	Update(ctx context.Context, task *entity.Task) error

	FindByID(ctx context.Context, id string) (*entity.Task, error)

	List(ctx context.Context, filter TaskFilter) ([]*entity.Task, int64, error)

	// FindDueOccurrences returns still-scheduled occurrences due at or
	// before the given instant, earliest first
	FindDueOccurrences(ctx context.Context, by time.Time, limit int) ([]*entity.Occurrence, error)
}

// TaskFilter defines filtering options for listing tasks
type TaskFilter struct {
	Status   *entity.TaskStatus
	Priority *entity.Priority
	Category string
	Page     int
	Limit    int
}
