// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/allylab/allylab-cli/internal/adapters/driving/tui/styles"
	"github.com/allylab/allylab-cli/internal/core/domain"
)

// FindingList displays findings in a navigable list.
type FindingList struct {
	findings []domain.Finding
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewFindingList creates a new finding list component.
func NewFindingList(s *styles.Styles) *FindingList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &FindingList{
		findings: nil,
		selected: 0,
		styles:   s,
		width:    80,
		height:   10,
	}
}

// Init initialises the finding list.
func (l *FindingList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *FindingList) Update(msg tea.Msg) (*FindingList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
			// Handle other keys
		}
		switch msg.String() {
		case "k":
			l.MoveUp()
		case "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the finding list.
func (l *FindingList) View() string {
	if len(l.findings) == 0 {
		return l.styles.Muted.Render("No findings")
	}

	lines := make([]string, 0, len(l.findings)*2+2)

	// Header
	header := l.styles.Subtitle.Render(fmt.Sprintf("Findings (%d)", len(l.findings)))
	lines = append(lines, header, "")

	// Each finding takes 2 lines (rule line + selector line)
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.findings) {
		end = len(l.findings)
	}

	for i := start; i < end; i++ {
		line := l.renderFinding(i, &l.findings[i])
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderFinding formats a single finding with its selector.
func (l *FindingList) renderFinding(index int, finding *domain.Finding) string {
	// Indicator for selected item
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	impact := fmt.Sprintf("[%-8s]", finding.Impact)
	rule := finding.Rule

	// Truncate rule if too long
	maxRuleLen := l.width - 24
	if maxRuleLen < 10 {
		maxRuleLen = 10
	}
	if len(rule) > maxRuleLen {
		rule = rule[:maxRuleLen-3] + "..."
	}

	var ruleLine string
	if index == l.selected {
		ruleLine = l.styles.Selected.Render(fmt.Sprintf("%s%s %s", indicator, impact, rule))
	} else {
		ruleLine = l.styles.Normal.Render(indicator) +
			l.styles.Impact(finding.Impact).Render(impact) +
			l.styles.Normal.Render(" "+rule)
	}

	// Selector line
	selector := finding.Selector
	maxSelectorLen := l.width - 6
	if maxSelectorLen < 20 {
		maxSelectorLen = 20
	}
	if len(selector) > maxSelectorLen {
		selector = selector[:maxSelectorLen-3] + "..."
	}

	selectorLine := l.styles.Muted.Render("    " + selector)

	return ruleLine + "\n" + selectorLine
}

// SetFindings updates the finding list.
func (l *FindingList) SetFindings(findings []domain.Finding) {
	l.findings = findings
	l.selected = 0
}

// Findings returns the current findings.
func (l *FindingList) Findings() []domain.Finding {
	return l.findings
}

// Selected returns the index of the selected finding.
func (l *FindingList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *FindingList) SetSelected(index int) {
	if index >= 0 && index < len(l.findings) {
		l.selected = index
	}
}

// SelectedFinding returns the currently selected finding, or nil if none.
func (l *FindingList) SelectedFinding() *domain.Finding {
	if len(l.findings) == 0 || l.selected < 0 || l.selected >= len(l.findings) {
		return nil
	}
	return &l.findings[l.selected]
}

// MoveUp moves selection up.
func (l *FindingList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *FindingList) MoveDown() {
	if l.selected < len(l.findings)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *FindingList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of findings.
func (l *FindingList) Count() int {
	return len(l.findings)
}

// IsEmpty returns whether the list is empty.
func (l *FindingList) IsEmpty() bool {
	return len(l.findings) == 0
}
