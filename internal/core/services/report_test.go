package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/adapters/driven/storage/memory"
	"github.com/allylab/allylab-cli/internal/core/domain"
)

// mockTracker records filed issues.
type mockTracker struct {
	filed []string
	err   error
}

func (m *mockTracker) FileIssue(_ context.Context, finding domain.Finding, _ domain.Site) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.filed = append(m.filed, finding.ID)
	return "https://github.com/acme/shop/issues/" + finding.ID, nil
}

func (m *mockTracker) Ping(_ context.Context) error { return nil }

func reportFixture(t *testing.T, tracker *mockTracker) (*ReportService, *memory.FindingStore) {
	t.Helper()
	ctx := context.Background()

	findingStore := memory.NewFindingStore()
	siteStore := memory.NewSiteStore()
	require.NoError(t, siteStore.Save(ctx, &domain.Site{ID: "site-1", Name: "Shop", URL: "https://shop.example.com"}))

	require.NoError(t, findingStore.Save(ctx, &domain.Finding{
		ID: "f-1", SiteID: "site-1", Rule: "button-name",
		Status: domain.FindingStatusOpen, LastSeen: time.Now(),
	}))
	require.NoError(t, findingStore.Save(ctx, &domain.Finding{
		ID: "f-2", SiteID: "site-1", Rule: "image-alt",
		Status: domain.FindingStatusOpen, LastSeen: time.Now(),
		IssueURL: "https://github.com/acme/shop/issues/9",
	}))

	var svc *ReportService
	if tracker == nil {
		svc = NewReportService(findingStore, siteStore, nil)
	} else {
		svc = NewReportService(findingStore, siteStore, tracker)
	}
	return svc, findingStore
}

// TestReport_FilesIssueAndRecordsURL tests the single-finding flow
func TestReport_FilesIssueAndRecordsURL(t *testing.T) {
	tracker := &mockTracker{}
	svc, findingStore := reportFixture(t, tracker)
	ctx := context.Background()

	url, err := svc.Report(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/shop/issues/f-1", url)

	got, err := findingStore.Get(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, url, got.IssueURL)
}

// TestReport_Idempotent tests that an already-reported finding is not refiled
func TestReport_Idempotent(t *testing.T) {
	tracker := &mockTracker{}
	svc, _ := reportFixture(t, tracker)

	url, err := svc.Report(context.Background(), "f-2")
	assert.ErrorIs(t, err, domain.ErrAlreadyReported)
	assert.Equal(t, "https://github.com/acme/shop/issues/9", url)
	assert.Empty(t, tracker.filed)
}

// TestReportOpen_SkipsReported tests the bulk flow
func TestReportOpen_SkipsReported(t *testing.T) {
	tracker := &mockTracker{}
	svc, _ := reportFixture(t, tracker)

	urls, err := svc.ReportOpen(context.Background(), "site-1")
	require.NoError(t, err)

	// Only f-1 was unreported.
	assert.Len(t, urls, 1)
	assert.Equal(t, []string{"f-1"}, tracker.filed)
}

// TestReport_NoTracker tests degradation without a tracker
func TestReport_NoTracker(t *testing.T) {
	svc, _ := reportFixture(t, nil)

	_, err := svc.Report(context.Background(), "f-1")
	assert.ErrorIs(t, err, domain.ErrTrackerUnavailable)

	_, err = svc.ReportOpen(context.Background(), "site-1")
	assert.ErrorIs(t, err, domain.ErrTrackerUnavailable)
}
