// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/allylab/allylab-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSites is the site list view.
	ViewSites
	// ViewFindings lists findings for a site.
	ViewFindings
	// ViewFindingDetail shows one finding with its source candidates.
	ViewFindingDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSites:
		return "sites"
	case ViewFindings:
		return "findings"
	case ViewFindingDetail:
		return "finding_detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// SitesLoaded carries the list of sites from the service.
type SitesLoaded struct {
	Sites []domain.Site
	Err   error
}

// SiteSelected signals a site was selected for the findings view.
type SiteSelected struct {
	Site domain.Site
}

// ScanCompleted carries per-page scan results back to the model.
type ScanCompleted struct {
	SiteID string
	Scans  []domain.Scan
	Err    error
}

// FindingsLoaded carries the findings of a site.
type FindingsLoaded struct {
	SiteID   string
	Findings []domain.Finding
	Err      error
}

// FindingSelected signals a finding was selected for the detail view.
type FindingSelected struct {
	Finding domain.Finding
}

// FindingResolved signals a finding was marked resolved.
type FindingResolved struct {
	ID  string
	Err error
}

// SourceLocated carries the ranked source candidates for a finding.
type SourceLocated struct {
	FindingID string
	Ranked    []domain.RankedFile
	Err       error
}

// FixSuggested carries an AI fix suggestion for a finding.
type FixSuggested struct {
	FindingID  string
	Suggestion *domain.FixSuggestion
	Err        error
}

// IssueFiled carries the URL of a freshly filed tracker issue.
type IssueFiled struct {
	FindingID string
	URL       string
	Err       error
}
