// Package sites provides the site list view component for the TUI.
package sites

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/messages"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/styles"
	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
)

// View is the site list view.
type View struct {
	styles      *styles.Styles
	siteService driving.SiteService
	scanService driving.ScanService

	sites    []domain.Site
	selected int
	width    int
	height   int
	ready    bool
	err      error
	loading  bool
	scanning bool
	status   string
}

// NewView creates a new sites view.
func NewView(
	s *styles.Styles,
	siteService driving.SiteService,
	scanService driving.ScanService,
) *View {
	return &View{
		styles:      s,
		siteService: siteService,
		scanService: scanService,
		sites:       []domain.Site{},
	}
}

// Init initialises the view and loads sites.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadSites()
}

// loadSites returns a command that loads sites from the service.
func (v *View) loadSites() tea.Cmd {
	return func() tea.Msg {
		if v.siteService == nil {
			return messages.SitesLoaded{Err: fmt.Errorf("site service not available")}
		}

		sites, err := v.siteService.List(context.Background())
		return messages.SitesLoaded{Sites: sites, Err: err}
	}
}

// runScan returns a command that audits the site.
func (v *View) runScan(siteID string) tea.Cmd {
	return func() tea.Msg {
		if v.scanService == nil {
			return messages.ScanCompleted{SiteID: siteID, Err: fmt.Errorf("scan service not available")}
		}

		scans, err := v.scanService.Scan(context.Background(), siteID, domain.ScanOptions{})
		return messages.ScanCompleted{SiteID: siteID, Scans: scans, Err: err}
	}
}

// Update handles messages for the sites view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SitesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.sites = msg.Sites
			v.err = nil
		}
		return v, nil

	case messages.ScanCompleted:
		v.scanning = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.status = scanStatus(msg.Scans)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.sites)-1 {
			v.selected++
		}
	case "enter":
		// Navigate to findings for the site
		if len(v.sites) > 0 && v.selected < len(v.sites) {
			site := v.sites[v.selected]
			return v, func() tea.Msg {
				return messages.SiteSelected{Site: site}
			}
		}
	case "s":
		// Audit selected site
		if v.scanning {
			return v, nil
		}
		if len(v.sites) > 0 && v.selected < len(v.sites) {
			v.scanning = true
			v.status = ""
			return v, v.runScan(v.sites[v.selected].ID)
		}
	case "r":
		// Reload sites
		v.loading = true
		v.status = ""
		return v, v.loadSites()
	}

	return v, nil
}

// View renders the sites view.
func (v *View) View() string {
	var b strings.Builder

	// Title
	b.WriteString(v.styles.Title.Render("Sites"))
	b.WriteString("\n\n")

	// Loading state
	if v.loading {
		b.WriteString(v.styles.Muted.Render("Loading sites..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Error state
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Empty state
	if len(v.sites) == 0 {
		b.WriteString(v.styles.Muted.Render("No sites registered. Add one with 'allylab sites add <url>'."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	// Site list
	for i := range v.sites {
		line := v.renderSite(i, &v.sites[i])
		b.WriteString(line)
		b.WriteString("\n")
	}

	if v.scanning {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render("Scanning..."))
	} else if v.status != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.status))
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

// renderSite renders a single site line.
func (v *View) renderSite(index int, site *domain.Site) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	name := site.DisplayName()

	// Truncate name if needed
	maxNameLen := v.width - 12
	if maxNameLen < 10 {
		maxNameLen = 10
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	if index == v.selected {
		return v.styles.Selected.Render(indicator + name)
	}
	return v.styles.Normal.Render(indicator + name)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[enter] findings  [s] scan  [r] reload  [esc] back  [q] quit")
}

// scanStatus summarises scan outcomes for the status line.
func scanStatus(scans []domain.Scan) string {
	total, newCount := 0, 0
	for i := range scans {
		total += scans[i].Summary.Total
		newCount += scans[i].Summary.New
	}
	return fmt.Sprintf("Scanned %d page(s): %d finding(s), %d new", len(scans), total, newCount)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Sites returns the current list of sites.
func (v *View) Sites() []domain.Site {
	return v.sites
}

// SelectedIndex returns the currently selected site index.
func (v *View) SelectedIndex() int {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
