package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
	"github.com/allylab/allylab-cli/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.SchedulerControl = (*Scheduler)(nil)

// Scheduler runs recurring audits in the background.
// It is a pure core service with no external control API.
type Scheduler struct {
	config    domain.SchedulerConfig
	store     driven.SchedulerStore
	siteStore driven.SiteStore
	scans     driving.ScanService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	siteStore driven.SiteStore,
	scans driving.ScanService,
) *Scheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &Scheduler{
		config:    config,
		store:     store,
		siteStore: siteStore,
		scans:     scans,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	if err := s.initialiseTasks(ctx); err != nil {
		logger.Warn("Scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	// Wait for running audits to complete
	s.wg.Wait()

	return nil
}

// initialiseTasks ensures each registered site has an audit task.
func (s *Scheduler) initialiseTasks(ctx context.Context) error {
	sites, err := s.siteStore.List(ctx)
	if err != nil {
		return err
	}

	for i := range sites {
		taskID := domain.AuditTaskID(sites[i].ID)
		cfg := s.config.GetTaskConfig(taskID)
		if !cfg.Enabled {
			continue
		}
		if err := s.ensureTask(ctx, taskID, "Audit "+sites[i].Name, cfg); err != nil {
			return err
		}
	}

	return nil
}

// ensureTask creates or updates a task in the store.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
			NextRun:  time.Now().Add(cfg.Interval),
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = time.Now().Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}

	return s.store.SaveTask(ctx, task)
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context) error {
	// Check for due tasks immediately on startup
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListDueTasks(ctx)
	if err != nil {
		logger.Warn("Scheduler: failed to list due tasks: %v", err)
		return
	}

	for i := range tasks {
		s.runTask(ctx, &tasks[i])
	}
}

// runTask executes a single task in the background.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		items, err := s.runSiteAudit(ctx, task.ID)

		result.EndedAt = time.Now()
		result.ItemsProcessed = items
		if err != nil {
			result.Success = false
			result.Error = err.Error()
			task.LastError = err.Error()
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Warn("Scheduler: failed to save task %s: %v", task.ID, saveErr)
		}

		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Warn("Scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}
	}()
}

// runSiteAudit scans the site encoded in the task ID.
// Returns the number of pages audited.
func (s *Scheduler) runSiteAudit(ctx context.Context, taskID string) (int, error) {
	siteID, ok := strings.CutPrefix(taskID, domain.TaskIDSiteAudit+":")
	if !ok {
		logger.Warn("Scheduler: unknown task ID: %s", taskID)
		return 0, nil
	}

	scans, err := s.scans.Scan(ctx, siteID, domain.ScanOptions{})
	if err != nil {
		return 0, err
	}
	return len(scans), nil
}
