package domain

import "time"

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsProcessed is a count of items handled (e.g., pages audited).
	ItemsProcessed int
}

// TaskIDSiteAudit is the recurring audit task ID prefix.
// The full task ID is "audit:<siteID>".
const TaskIDSiteAudit = "audit"

// AuditTaskID builds the scheduler task ID for a site's recurring audit.
func AuditTaskID(siteID string) string {
	return TaskIDSiteAudit + ":" + siteID
}

// TaskConfig holds per-task scheduling configuration.
type TaskConfig struct {
	// Enabled indicates whether the task should run.
	Enabled bool

	// Interval defines how often the task should run.
	Interval time.Duration
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Enabled is the master switch for the scheduler.
	Enabled bool

	// CheckInterval is how often the scheduler looks for due tasks.
	CheckInterval time.Duration

	// TaskConfigs holds per-task configuration keyed by task ID.
	TaskConfigs map[string]TaskConfig
}

// GetTaskConfig returns the configuration for a task, falling back to
// a disabled default when the task is not configured.
func (c SchedulerConfig) GetTaskConfig(taskID string) TaskConfig {
	if cfg, ok := c.TaskConfigs[taskID]; ok {
		return cfg
	}
	return TaskConfig{Enabled: false, Interval: 24 * time.Hour}
}
