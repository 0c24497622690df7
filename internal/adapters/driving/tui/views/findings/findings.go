// Package findings provides the findings list view component for the TUI.
package findings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/components/list"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/components/status"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/messages"
	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/styles"
	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
)

// View is the findings list view. It shows the open findings of a
// site, or of all sites when no site is selected.
type View struct {
	styles         *styles.Styles
	findingService driving.FindingService

	list    *list.FindingList
	bar     *status.Bar
	site    *domain.Site
	width   int
	height  int
	ready   bool
	err     error
	loading bool
}

// NewView creates a new findings view.
func NewView(s *styles.Styles, findingService driving.FindingService) *View {
	bar := status.NewBar(s, nil)
	bar.SetState(status.StateFindings)

	return &View{
		styles:         s,
		findingService: findingService,
		list:           list.NewFindingList(s),
		bar:            bar,
	}
}

// Init initialises the view and loads findings.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadFindings()
}

// SetSite scopes the view to one site. Nil shows all sites.
func (v *View) SetSite(site *domain.Site) {
	v.site = site
}

// loadFindings returns a command that loads findings from the service.
func (v *View) loadFindings() tea.Cmd {
	return func() tea.Msg {
		if v.findingService == nil {
			return messages.FindingsLoaded{Err: fmt.Errorf("finding service not available")}
		}

		filter := driven.FindingFilter{Status: domain.FindingStatusOpen}
		siteID := ""
		if v.site != nil {
			filter.SiteID = v.site.ID
			siteID = v.site.ID
		}

		findings, err := v.findingService.List(context.Background(), filter)
		return messages.FindingsLoaded{SiteID: siteID, Findings: findings, Err: err}
	}
}

// resolveFinding returns a command that marks the finding resolved.
func (v *View) resolveFinding(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.findingService.Resolve(context.Background(), id)
		return messages.FindingResolved{ID: id, Err: err}
	}
}

// Update handles messages for the findings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.list.SetDimensions(msg.Width, msg.Height-6)
		v.bar.SetWidth(msg.Width)
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.FindingsLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			v.bar.SetState(status.StateError)
			v.bar.SetMessage(msg.Err.Error())
		} else {
			v.list.SetFindings(msg.Findings)
			v.err = nil
			v.bar.SetState(status.StateFindings)
			v.bar.SetMessage("")
			v.bar.SetFindingCount(len(msg.Findings))
		}
		return v, nil

	case messages.FindingResolved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		// Reload after resolution
		v.loading = true
		return v, v.loadFindings()
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "down", "j":
		v.list, _ = v.list.Update(msg)
	case "enter":
		if finding := v.list.SelectedFinding(); finding != nil {
			selected := *finding
			return v, func() tea.Msg {
				return messages.FindingSelected{Finding: selected}
			}
		}
	case "x":
		if finding := v.list.SelectedFinding(); finding != nil {
			return v, v.resolveFinding(finding.ID)
		}
	case "r":
		v.loading = true
		return v, v.loadFindings()
	}

	return v, nil
}

// View renders the findings view.
func (v *View) View() string {
	var b strings.Builder

	title := "Findings"
	if v.site != nil {
		title = fmt.Sprintf("Findings - %s", v.site.Name)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading findings..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
	default:
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.bar.View())

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.list.SetDimensions(width, height-6)
	v.bar.SetWidth(width)
	v.ready = true
}

// Findings returns the currently listed findings.
func (v *View) Findings() []domain.Finding {
	return v.list.Findings()
}

// SelectedIndex returns the currently selected finding index.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
