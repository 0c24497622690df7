package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/messages"
	"github.com/allylab/allylab-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	return &Ports{
		Site:    &MockSiteService{},
		Scan:    &MockScanService{},
		Finding: &MockFindingService{},
	}
}

func TestNewApp_Success(t *testing.T) {
	ports := newTestPorts()

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView()) // Starts at menu
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports := &Ports{
		Site:    nil,
		Finding: &MockFindingService{},
	}

	app, err := NewApp(ports)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	result := app.WithContext(ctx)

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	cmd := app.Init()

	// Init returns a batch command
	assert.NotNil(t, cmd)
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	msg := tea.WindowSizeMsg{Width: 80, Height: 24}
	model, cmd := app.Update(msg)

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	msg := tea.KeyMsg{Type: tea.KeyCtrlC}
	_, cmd := app.Update(msg)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Update_ViewChanged(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSites})

	assert.Equal(t, messages.ViewSites, app.CurrentView())
	// Sites view triggers a load command
	assert.NotNil(t, cmd)
}

func TestApp_Update_SiteSelected(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	site := domain.Site{ID: "st-1", Name: "Shop", URL: "https://shop.example.com"}
	_, cmd := app.Update(messages.SiteSelected{Site: site})

	assert.Equal(t, messages.ViewFindings, app.CurrentView())
	require.NotNil(t, app.SelectedSite())
	assert.Equal(t, "st-1", app.SelectedSite().ID)
	assert.NotNil(t, cmd)
}

func TestApp_Update_FindingSelected(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	finding := domain.Finding{ID: "fn-1", Rule: "image-alt", Impact: domain.ImpactSerious}
	app.Update(messages.FindingSelected{Finding: finding})

	assert.Equal(t, messages.ViewFindingDetail, app.CurrentView())
}

func TestApp_Update_EscNavigatesBack(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	// Drill into detail, then esc back up the stack
	app.Update(messages.SiteSelected{Site: domain.Site{ID: "st-1"}})
	app.Update(messages.FindingSelected{Finding: domain.Finding{ID: "fn-1"}})
	require.Equal(t, messages.ViewFindingDetail, app.CurrentView())

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	app.Update(esc)
	assert.Equal(t, messages.ViewFindings, app.CurrentView())

	app.Update(esc)
	assert.Equal(t, messages.ViewSites, app.CurrentView())

	app.Update(esc)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_Update_ErrorOccurred(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	app.Update(messages.ErrorOccurred{Err: errors.New("engine unreachable")})

	assert.EqualError(t, app.Err(), "engine unreachable")
}

func TestApp_View_NotReady(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_View_Help(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)
	app.Update(messages.ViewChanged{View: messages.ViewHelp})

	view := app.View()

	assert.Contains(t, view, "Locate source file")
	assert.Contains(t, view, "File tracker issue")
}
