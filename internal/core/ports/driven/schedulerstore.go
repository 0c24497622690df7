package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// SchedulerStore persists scheduled tasks and their execution history.
type SchedulerStore interface {
	// GetTask retrieves a task by ID. Returns nil if not found.
	GetTask(ctx context.Context, id string) (*domain.ScheduledTask, error)

	// SaveTask creates or updates a task.
	SaveTask(ctx context.Context, task *domain.ScheduledTask) error

	// ListDueTasks returns enabled tasks whose NextRun has passed.
	ListDueTasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// RecordResult stores the outcome of a task execution.
	RecordResult(ctx context.Context, result *domain.TaskResult) error
}
