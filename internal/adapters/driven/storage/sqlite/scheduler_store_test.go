package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

func TestSchedulerStore_SaveAndGetTask(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	task := &domain.ScheduledTask{
		ID:       domain.AuditTaskID("site-1"),
		Name:     "Audit Shop",
		Interval: 6 * time.Hour,
		NextRun:  now.Add(6 * time.Hour),
		Enabled:  true,
	}
	require.NoError(t, store.SchedulerStore().SaveTask(ctx, task))

	got, err := store.SchedulerStore().GetTask(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Audit Shop", got.Name)
	assert.Equal(t, 6*time.Hour, got.Interval)
	assert.True(t, got.Enabled)
	assert.True(t, got.NextRun.Equal(task.NextRun))
	assert.True(t, got.LastRun.IsZero())
}

func TestSchedulerStore_GetTaskNotFound(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.SchedulerStore().GetTask(context.Background(), "audit:missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSchedulerStore_ListDueTasks(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	due := &domain.ScheduledTask{
		ID:       "audit:due",
		Name:     "Due",
		Interval: time.Hour,
		NextRun:  now.Add(-time.Minute),
		Enabled:  true,
	}
	future := &domain.ScheduledTask{
		ID:       "audit:future",
		Name:     "Future",
		Interval: time.Hour,
		NextRun:  now.Add(time.Hour),
		Enabled:  true,
	}
	disabled := &domain.ScheduledTask{
		ID:       "audit:disabled",
		Name:     "Disabled",
		Interval: time.Hour,
		NextRun:  now.Add(-time.Minute),
		Enabled:  false,
	}
	require.NoError(t, store.SchedulerStore().SaveTask(ctx, due))
	require.NoError(t, store.SchedulerStore().SaveTask(ctx, future))
	require.NoError(t, store.SchedulerStore().SaveTask(ctx, disabled))

	tasks, err := store.SchedulerStore().ListDueTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "audit:due", tasks[0].ID)
}

func TestSchedulerStore_RecordResult(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	result := &domain.TaskResult{
		TaskID:         "audit:site-1",
		StartedAt:      now.Add(-time.Minute),
		EndedAt:        now,
		Success:        true,
		ItemsProcessed: 3,
	}
	require.NoError(t, store.SchedulerStore().RecordResult(ctx, result))

	var count int
	require.NoError(t, store.db.QueryRow(
		"SELECT COUNT(*) FROM task_results WHERE task_id = ?", "audit:site-1").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSchedulerStore_SaveTaskNil(t *testing.T) {
	store := setupTestStore(t)

	err := store.SchedulerStore().SaveTask(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
