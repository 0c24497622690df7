package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/adapters/driven/storage/memory"
	"github.com/allylab/allylab-cli/internal/core/domain"
)

// mockScanService counts scheduled scan invocations.
type mockScanService struct {
	mu    sync.Mutex
	scans []string
	pages int
}

func (m *mockScanService) Scan(_ context.Context, siteID string, _ domain.ScanOptions) ([]domain.Scan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans = append(m.scans, siteID)
	return make([]domain.Scan, m.pages), nil
}

func (m *mockScanService) History(_ context.Context, _ string, _ int) ([]domain.Scan, error) {
	return nil, nil
}

func (m *mockScanService) scanned() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.scans))
	copy(out, m.scans)
	return out
}

// TestScheduler_RunsDueAuditTask tests that a due task triggers a scan
func TestScheduler_RunsDueAuditTask(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSchedulerStore()
	siteStore := memory.NewSiteStore()
	scans := &mockScanService{pages: 2}

	require.NoError(t, siteStore.Save(ctx, &domain.Site{ID: "site-1", Name: "Shop", URL: "https://shop.example.com"}))

	taskID := domain.AuditTaskID("site-1")
	cfg := domain.SchedulerConfig{
		Enabled:       true,
		CheckInterval: 10 * time.Millisecond,
		TaskConfigs: map[string]domain.TaskConfig{
			taskID: {Enabled: true, Interval: time.Hour},
		},
	}

	// Make the task due immediately.
	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{
		ID:       taskID,
		Name:     "Audit Shop",
		Interval: time.Hour,
		Enabled:  true,
		NextRun:  time.Now().Add(-time.Minute),
	}))

	s := NewScheduler(cfg, store, siteStore, scans)

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- s.Start(runCtx) }()

	// Give the startup check time to fire, then stop.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, s.Stop())
	cancel()
	<-done

	assert.Contains(t, scans.scanned(), "site-1")

	// Task state advanced and the result was recorded.
	task, err := store.GetTask(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.True(t, task.NextRun.After(time.Now()))
	assert.Empty(t, task.LastError)

	results := store.Results()
	require.NotEmpty(t, results)
	assert.True(t, results[0].Success)
	assert.Equal(t, 2, results[0].ItemsProcessed)
}

// TestScheduler_InitialisesTasksForSites tests task creation from config
func TestScheduler_InitialisesTasksForSites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSchedulerStore()
	siteStore := memory.NewSiteStore()

	require.NoError(t, siteStore.Save(ctx, &domain.Site{ID: "site-1", Name: "Shop", URL: "https://shop.example.com"}))

	taskID := domain.AuditTaskID("site-1")
	s := NewScheduler(domain.SchedulerConfig{
		Enabled: true,
		TaskConfigs: map[string]domain.TaskConfig{
			taskID: {Enabled: true, Interval: time.Hour},
		},
	}, store, siteStore, &mockScanService{})

	require.NoError(t, s.initialiseTasks(ctx))

	task, err := store.GetTask(ctx, taskID)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, time.Hour, task.Interval)
	assert.True(t, task.Enabled)
}

// TestScheduler_StopIdempotent tests repeated stop calls
func TestScheduler_StopIdempotent(t *testing.T) {
	s := NewScheduler(domain.SchedulerConfig{}, memory.NewSchedulerStore(), memory.NewSiteStore(), &mockScanService{})

	assert.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
}
