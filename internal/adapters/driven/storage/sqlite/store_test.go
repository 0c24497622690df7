package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

// createTestSite creates a site to satisfy foreign key constraints.
func createTestSite(t *testing.T, store *Store, siteID string) {
	t.Helper()
	err := store.SiteStore().Save(context.Background(), &domain.Site{
		ID:   siteID,
		Name: "Test Site " + siteID,
		URL:  "https://example.com",
	})
	require.NoError(t, err)
}

// testFinding builds a finding with sensible defaults.
func testFinding(id, siteID string) *domain.Finding {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Finding{
		ID:          id,
		ScanID:      "scan-1",
		SiteID:      siteID,
		Rule:        "button-name",
		Impact:      domain.ImpactCritical,
		Description: "Buttons must have discernible text",
		HelpURL:     "https://dequeuniversity.com/rules/axe/4.10/button-name",
		Selector:    "#checkout > button",
		HTML:        `<button class="icon-btn"><svg/></button>`,
		Fingerprint: domain.ComputeFingerprint("button-name", "#checkout > button", `<button class="icon-btn"><svg/></button>`),
		Status:      domain.FindingStatusOpen,
		FirstSeen:   now,
		LastSeen:    now,
	}
}

// ==================== Store Creation Tests ====================

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "allylab.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	err = store.db.Ping()
	assert.NoError(t, err)
}

func TestNewStore_ErrorHandling(t *testing.T) {
	// Invalid path should fail to create the data directory
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs migrate again against the same file
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.GreaterOrEqual(t, version, 1)
}

// ==================== Site Store Tests ====================

func TestSiteStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	site := &domain.Site{
		ID:         "site-1",
		Name:       "Shop",
		URL:        "https://shop.example.com",
		ProjectDir: "/home/dev/shop",
		Pages:      []string{"/checkout", "/account"},
	}
	require.NoError(t, store.SiteStore().Save(ctx, site))

	got, err := store.SiteStore().Get(ctx, "site-1")
	require.NoError(t, err)
	assert.Equal(t, "Shop", got.Name)
	assert.Equal(t, "https://shop.example.com", got.URL)
	assert.Equal(t, "/home/dev/shop", got.ProjectDir)
	assert.Equal(t, []string{"/checkout", "/account"}, got.Pages)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSiteStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.SiteStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSiteStore_SaveUpdates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	site := &domain.Site{ID: "site-1", Name: "Shop", URL: "https://shop.example.com"}
	require.NoError(t, store.SiteStore().Save(ctx, site))

	site.Name = "Shop (staging)"
	require.NoError(t, store.SiteStore().Save(ctx, site))

	got, err := store.SiteStore().Get(ctx, "site-1")
	require.NoError(t, err)
	assert.Equal(t, "Shop (staging)", got.Name)

	sites, err := store.SiteStore().List(ctx)
	require.NoError(t, err)
	assert.Len(t, sites, 1)
}

func TestSiteStore_DeleteCascades(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")

	require.NoError(t, store.FindingStore().Save(ctx, testFinding("f-1", "site-1")))
	require.NoError(t, store.SiteStore().Delete(ctx, "site-1"))

	_, err := store.FindingStore().Get(ctx, "f-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ==================== Scan Store Tests ====================

func TestScanStore_SaveAndLatest(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")

	older := &domain.Scan{
		ID:          "scan-1",
		SiteID:      "site-1",
		PageURL:     "https://example.com",
		Engine:      "axe-core/4.10",
		StartedAt:   time.Now().UTC().Add(-time.Hour),
		CompletedAt: time.Now().UTC().Add(-time.Hour),
		Summary:     domain.ScanSummary{Total: 3, New: 3, Score: 88},
	}
	newer := &domain.Scan{
		ID:          "scan-2",
		SiteID:      "site-1",
		PageURL:     "https://example.com",
		Engine:      "axe-core/4.10",
		StartedAt:   time.Now().UTC(),
		CompletedAt: time.Now().UTC(),
		Summary:     domain.ScanSummary{Total: 1, Recurring: 1, Resolved: 2, Score: 96},
	}
	require.NoError(t, store.ScanStore().Save(ctx, older))
	require.NoError(t, store.ScanStore().Save(ctx, newer))

	latest, err := store.ScanStore().Latest(ctx, "site-1", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "scan-2", latest.ID)
	assert.Equal(t, 96, latest.Summary.Score)
	assert.Equal(t, 2, latest.Summary.Resolved)
}

func TestScanStore_LatestNotFound(t *testing.T) {
	store := setupTestStore(t)
	createTestSite(t, store, "site-1")

	_, err := store.ScanStore().Latest(context.Background(), "site-1", "https://example.com/never")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestScanStore_ListOrderAndLimit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")

	base := time.Now().UTC().Add(-3 * time.Hour)
	for i, id := range []string{"scan-a", "scan-b", "scan-c"} {
		require.NoError(t, store.ScanStore().Save(ctx, &domain.Scan{
			ID:          id,
			SiteID:      "site-1",
			PageURL:     "https://example.com",
			StartedAt:   base.Add(time.Duration(i) * time.Hour),
			CompletedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	scans, err := store.ScanStore().List(ctx, "site-1", 2)
	require.NoError(t, err)
	require.Len(t, scans, 2)
	assert.Equal(t, "scan-c", scans[0].ID)
	assert.Equal(t, "scan-b", scans[1].ID)
}

// ==================== Finding Store Tests ====================

func TestFindingStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")

	f := testFinding("f-1", "site-1")
	f.TextContent = "Checkout"
	require.NoError(t, store.FindingStore().Save(ctx, f))

	got, err := store.FindingStore().Get(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ImpactCritical, got.Impact)
	assert.Equal(t, domain.FindingStatusOpen, got.Status)
	assert.Equal(t, "Checkout", got.TextContent)
	assert.Equal(t, f.Fingerprint, got.Fingerprint)
}

func TestFindingStore_GetByFingerprint(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")

	f := testFinding("f-1", "site-1")
	require.NoError(t, store.FindingStore().Save(ctx, f))

	got, err := store.FindingStore().GetByFingerprint(ctx, "site-1", f.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, "f-1", got.ID)

	_, err = store.FindingStore().GetByFingerprint(ctx, "site-1", "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindingStore_SaveKeepsFirstSeen(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")

	f := testFinding("f-1", "site-1")
	firstSeen := f.FirstSeen
	require.NoError(t, store.FindingStore().Save(ctx, f))

	// A later scan re-observes the same finding
	f.ScanID = "scan-2"
	f.LastSeen = firstSeen.Add(time.Hour)
	f.FirstSeen = firstSeen.Add(time.Hour) // should be ignored by the upsert
	require.NoError(t, store.FindingStore().Save(ctx, f))

	got, err := store.FindingStore().Get(ctx, "f-1")
	require.NoError(t, err)
	assert.Equal(t, firstSeen, got.FirstSeen.UTC())
	assert.Equal(t, firstSeen.Add(time.Hour), got.LastSeen.UTC())
	assert.Equal(t, "scan-2", got.ScanID)
}

func TestFindingStore_ListFilters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")
	createTestSite(t, store, "site-2")

	open := testFinding("f-1", "site-1")
	resolved := testFinding("f-2", "site-1")
	resolved.Rule = "image-alt"
	resolved.Impact = domain.ImpactSerious
	resolved.Selector = "img.hero"
	resolved.Fingerprint = domain.ComputeFingerprint("image-alt", "img.hero", "<img>")
	resolved.Status = domain.FindingStatusResolved
	other := testFinding("f-3", "site-2")

	require.NoError(t, store.FindingStore().Save(ctx, open))
	require.NoError(t, store.FindingStore().Save(ctx, resolved))
	require.NoError(t, store.FindingStore().Save(ctx, other))

	got, err := store.FindingStore().List(ctx, driven.FindingFilter{SiteID: "site-1"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.FindingStore().List(ctx, driven.FindingFilter{SiteID: "site-1", Status: domain.FindingStatusOpen})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f-1", got[0].ID)

	got, err = store.FindingStore().List(ctx, driven.FindingFilter{Impact: domain.ImpactSerious})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f-2", got[0].ID)

	got, err = store.FindingStore().List(ctx, driven.FindingFilter{Rule: "button-name"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFindingStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	createTestSite(t, store, "site-1")

	require.NoError(t, store.FindingStore().Save(ctx, testFinding("f-1", "site-1")))
	require.NoError(t, store.FindingStore().Delete(ctx, "f-1"))

	_, err := store.FindingStore().Get(ctx, "f-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
