package sites

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/messages"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/styles"
	"github.com/allylab/allylab-cli/internal/core/domain"
)

type stubSiteService struct {
	sites []domain.Site
	err   error
}

func (s *stubSiteService) Add(_ context.Context, site domain.Site) (*domain.Site, error) {
	return &site, s.err
}

func (s *stubSiteService) Get(_ context.Context, _ string) (*domain.Site, error) {
	return nil, domain.ErrNotFound
}

func (s *stubSiteService) List(_ context.Context) ([]domain.Site, error) {
	return s.sites, s.err
}

func (s *stubSiteService) Remove(_ context.Context, _ string) error {
	return s.err
}

type stubScanService struct {
	scans []domain.Scan
	err   error
}

func (s *stubScanService) Scan(_ context.Context, _ string, _ domain.ScanOptions) ([]domain.Scan, error) {
	return s.scans, s.err
}

func (s *stubScanService) History(_ context.Context, _ string, _ int) ([]domain.Scan, error) {
	return s.scans, s.err
}

func testSites() []domain.Site {
	return []domain.Site{
		{ID: "st-1", Name: "Shop", URL: "https://shop.example.com"},
		{ID: "st-2", URL: "https://docs.example.com"},
	}
}

func TestView_Init_LoadsSites(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{sites: testSites()}, &stubScanService{})

	cmd := view.Init()

	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(messages.SitesLoaded)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Sites, 2)
}

func TestView_Update_SitesLoaded(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{})
	view.loading = true

	view, _ = view.Update(messages.SitesLoaded{Sites: testSites()})

	assert.False(t, view.loading)
	assert.Len(t, view.Sites(), 2)
	assert.NoError(t, view.Err())
}

func TestView_Update_SitesLoadedError(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{})

	view, _ = view.Update(messages.SitesLoaded{Err: errors.New("store closed")})

	assert.Error(t, view.Err())
}

func TestView_Update_EnterSelectsSite(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{})
	view, _ = view.Update(messages.SitesLoaded{Sites: testSites()})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	selected, ok := cmd().(messages.SiteSelected)
	require.True(t, ok)
	assert.Equal(t, "st-1", selected.Site.ID)
}

func TestView_Update_ScanKey(t *testing.T) {
	scan := domain.Scan{Summary: domain.ScanSummary{Total: 3, New: 2}}
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{scans: []domain.Scan{scan}})
	view, _ = view.Update(messages.SitesLoaded{Sites: testSites()})

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	assert.True(t, view.scanning)
	require.NotNil(t, cmd)

	completed, ok := cmd().(messages.ScanCompleted)
	require.True(t, ok)
	require.NoError(t, completed.Err)

	view, _ = view.Update(completed)
	assert.False(t, view.scanning)
	assert.Equal(t, "Scanned 1 page(s): 3 finding(s), 2 new", view.status)
}

func TestView_Update_ScanIgnoredWhileScanning(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{})
	view, _ = view.Update(messages.SitesLoaded{Sites: testSites()})
	view.scanning = true

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})

	assert.Nil(t, cmd)
}

func TestView_Update_Navigation(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{})
	view, _ = view.Update(messages.SitesLoaded{Sites: testSites()})

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, view.SelectedIndex())

	// Down at the bottom stays put
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, view.SelectedIndex())

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 0, view.SelectedIndex())
}

func TestView_View_Empty(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{})
	view.SetDimensions(80, 24)

	out := view.View()

	assert.Contains(t, out, "No sites registered")
}

func TestView_View_RendersSites(t *testing.T) {
	view := NewView(styles.DefaultStyles(), &stubSiteService{}, &stubScanService{})
	view.SetDimensions(80, 24)
	view, _ = view.Update(messages.SitesLoaded{Sites: testSites()})

	out := view.View()

	assert.Contains(t, out, "Shop")
	// Unnamed site falls back to its URL
	assert.Contains(t, out, "https://docs.example.com")
}
