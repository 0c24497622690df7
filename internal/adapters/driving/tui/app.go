package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/messages"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/styles"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/views/findingdetail"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/views/findings"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/views/menu"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/views/sites"
	"github.com/allylab/allylab-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// menuView is the main navigation menu.
	menuView *menu.View

	// sitesView is the site list view component.
	sitesView *sites.View

	// findingsView is the findings list view component.
	findingsView *findings.View

	// detailView is the finding detail view component.
	detailView *findingdetail.View

	// selectedSite tracks the currently selected site for navigation.
	selectedSite *domain.Site

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		menuView:     menu.NewView(s),
		sitesView:    sites.NewView(s, ports.Site, ports.Scan),
		findingsView: findings.NewView(s, ports.Finding),
		detailView:   findingdetail.NewView(s, ports.Finding, ports.Fix, ports.Report),
		currentView:  messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("allylab - Accessibility Audits"),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.sitesView.SetDimensions(msg.Width, msg.Height)
		a.findingsView.SetDimensions(msg.Width, msg.Height)
		a.detailView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewSites:
			// Esc from sites goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			a.sitesView, cmd = a.sitesView.Update(msg)
			return a, cmd

		case messages.ViewFindings:
			// Esc from findings goes back to sites
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewSites
				return a, nil
			}
			a.findingsView, cmd = a.findingsView.Update(msg)
			return a, cmd

		case messages.ViewFindingDetail:
			// Esc from detail goes back to findings
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewFindings
				return a, nil
			}
			a.detailView, cmd = a.detailView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewSites:
			return a, a.sitesView.Init()
		case messages.ViewFindings:
			a.findingsView.SetSite(a.selectedSite)
			return a, a.findingsView.Init()
		case messages.ViewMenu, messages.ViewHelp, messages.ViewFindingDetail:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.SiteSelected:
		// Navigate from sites to the site's findings
		a.selectedSite = &msg.Site
		a.currentView = messages.ViewFindings
		a.findingsView.SetSite(a.selectedSite)
		return a, a.findingsView.Init()

	case messages.FindingSelected:
		// Navigate to finding detail
		a.detailView.SetFinding(msg.Finding)
		a.currentView = messages.ViewFindingDetail
		return a, a.detailView.Init()

	case messages.SitesLoaded, messages.ScanCompleted:
		a.sitesView, cmd = a.sitesView.Update(msg)
		return a, cmd

	case messages.FindingsLoaded, messages.FindingResolved:
		a.findingsView, cmd = a.findingsView.Update(msg)
		return a, cmd

	case messages.SourceLocated, messages.FixSuggested, messages.IssueFiled:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSites:
		a.sitesView, cmd = a.sitesView.Update(msg)
	case messages.ViewFindings:
		a.findingsView, cmd = a.findingsView.Update(msg)
	case messages.ViewFindingDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewSites:
		return a.sitesView.View()
	case messages.ViewFindings:
		return a.findingsView.View()
	case messages.ViewFindingDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Sites:
  enter       View findings
  s           Scan selected site
  r           Reload

Findings:
  enter       Finding details
  x           Mark resolved
  r           Reload

Finding detail:
  l           Locate source file
  f           AI fix suggestion
  i           File tracker issue

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SelectedSite returns the site currently drilled into, if any.
func (a *App) SelectedSite() *domain.Site {
	return a.selectedSite
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.sitesView.SetDimensions(width, height)
	a.findingsView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
