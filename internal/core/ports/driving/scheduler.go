package driving

import "context"

// SchedulerControl starts and stops the background audit scheduler.
type SchedulerControl interface {
	// Start begins the scheduler loop. Blocks until Stop or ctx cancellation.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the scheduler.
	Stop() error
}
