// Package findingdetail provides the finding detail view for the TUI.
// It shows one finding in full, with its ranked source candidates, an
// AI fix suggestion and the tracker issue once filed.
package findingdetail

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

// View is the finding detail view.
type View struct {
	styles         *styles.Styles
	findingService driving.FindingService
	fixService     driving.FixService
	reportService  driving.ReportService

	finding    *domain.Finding
	ranked     []domain.RankedFile
	suggestion *domain.FixSuggestion
	issueURL   string

	width   int
	height  int
	ready   bool
	err     error
	working string // label of the in-flight action, empty when idle
}

// NewView creates a new finding detail view.
func NewView(
	s *styles.Styles,
	findingService driving.FindingService,
	fixService driving.FixService,
	reportService driving.ReportService,
) *View {
	return &View{
		styles:         s,
		findingService: findingService,
		fixService:     fixService,
		reportService:  reportService,
	}
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetFinding sets the finding to display and clears derived state.
func (v *View) SetFinding(finding domain.Finding) {
	v.finding = &finding
	v.ranked = nil
	v.suggestion = nil
	v.issueURL = finding.IssueURL
	v.err = nil
	v.working = ""
}

// locateSource returns a command that ranks source candidates.
func (v *View) locateSource(findingID string) tea.Cmd {
	return func() tea.Msg {
		ranked, err := v.findingService.Locate(context.Background(), findingID)
		return messages.SourceLocated{FindingID: findingID, Ranked: ranked, Err: err}
	}
}

// suggestFix returns a command that requests an AI fix.
func (v *View) suggestFix(findingID string) tea.Cmd {
	return func() tea.Msg {
		if v.fixService == nil {
			return messages.FixSuggested{FindingID: findingID, Err: fmt.Errorf("fix service not available")}
		}
		suggestion, err := v.fixService.SuggestFix(context.Background(), findingID)
		return messages.FixSuggested{FindingID: findingID, Suggestion: suggestion, Err: err}
	}
}

// fileIssue returns a command that files a tracker issue.
func (v *View) fileIssue(findingID string) tea.Cmd {
	return func() tea.Msg {
		if v.reportService == nil {
			return messages.IssueFiled{FindingID: findingID, Err: fmt.Errorf("report service not available")}
		}
		url, err := v.reportService.Report(context.Background(), findingID)
		return messages.IssueFiled{FindingID: findingID, URL: url, Err: err}
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SourceLocated:
		v.working = ""
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.ranked = msg.Ranked
			v.err = nil
		}
		return v, nil

	case messages.FixSuggested:
		v.working = ""
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.suggestion = msg.Suggestion
			v.err = nil
		}
		return v, nil

	case messages.IssueFiled:
		v.working = ""
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.issueURL = msg.URL
			v.err = nil
		}
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.finding == nil || v.working != "" {
		return v, nil
	}

	switch msg.String() {
	case "l":
		v.working = "Locating source"
		return v, v.locateSource(v.finding.ID)
	case "f":
		v.working = "Requesting fix suggestion"
		return v, v.suggestFix(v.finding.ID)
	case "i":
		if v.issueURL != "" {
			return v, nil
		}
		v.working = "Filing issue"
		return v, v.fileIssue(v.finding.ID)
	}

	return v, nil
}

// View renders the finding detail.
//
//nolint:gocognit // linear section rendering
func (v *View) View() string {
	if v.finding == nil {
		return v.styles.Muted.Render("No finding selected")
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.finding.Rule))
	b.WriteString("  ")
	b.WriteString(v.styles.Impact(v.finding.Impact).Render(fmt.Sprintf("[%s]", v.finding.Impact)))
	b.WriteString("\n\n")

	if v.finding.Description != "" {
		b.WriteString(v.styles.Normal.Render(v.finding.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(v.styles.Subtitle.Render("Selector"))
	b.WriteString("\n")
	b.WriteString(v.styles.Normal.Render("  " + v.finding.Selector))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Subtitle.Render("HTML"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("  " + truncate(v.finding.HTML, v.width-4)))
	b.WriteString("\n\n")

	if v.issueURL != "" {
		b.WriteString(v.styles.Subtitle.Render("Issue"))
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render("  " + v.issueURL))
		b.WriteString("\n\n")
	}

	if len(v.ranked) > 0 {
		b.WriteString(v.styles.Subtitle.Render("Source candidates"))
		b.WriteString("\n")
		for i := range v.ranked {
			b.WriteString(v.renderRankedFile(&v.ranked[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if v.suggestion != nil {
		b.WriteString(v.styles.Subtitle.Render("Suggested fix"))
		b.WriteString("\n")
		if v.suggestion.FilePath != "" {
			b.WriteString(v.styles.Muted.Render("  " + v.suggestion.FilePath))
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Normal.Render("  " + truncate(v.suggestion.Patch, v.width-4)))
		b.WriteString("\n\n")
	}

	if v.working != "" {
		b.WriteString(v.styles.Muted.Render(v.working + "..."))
		b.WriteString("\n\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHelp())

	return b.String()
}

// renderRankedFile renders one ranked source candidate.
func (v *View) renderRankedFile(file *domain.RankedFile) string {
	marker := "  "
	if file.IsBestMatch {
		marker = "* "
	}

	line := fmt.Sprintf("%s%-6s %.2f  %s", marker, file.Confidence.Level, file.Confidence.Score, file.Path)
	if file.IsBestMatch {
		return v.styles.Success.Render(line)
	}
	return v.styles.Normal.Render(line)
}

// renderHelp renders the help footer.
func (v *View) renderHelp() string {
	return v.styles.Help.Render("[l] locate source  [f] suggest fix  [i] file issue  [esc] back  [q] quit")
}

// truncate shortens s to fit max columns.
func truncate(s string, max int) string {
	if max < 10 {
		max = 10
	}
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Finding returns the displayed finding.
func (v *View) Finding() *domain.Finding {
	return v.finding
}

// Ranked returns the ranked source candidates, if located.
func (v *View) Ranked() []domain.RankedFile {
	return v.ranked
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
