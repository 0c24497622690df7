package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Impact is the severity bucket axe-core assigns to a violation.
type Impact string

// Impact levels, as reported by the audit engine.
const (
	ImpactMinor    Impact = "minor"
	ImpactModerate Impact = "moderate"
	ImpactSerious  Impact = "serious"
	ImpactCritical Impact = "critical"
)

// IsValid returns true if the impact is recognised.
func (i Impact) IsValid() bool {
	switch i {
	case ImpactMinor, ImpactModerate, ImpactSerious, ImpactCritical:
		return true
	default:
		return false
	}
}

// Weight returns the score penalty weight for this impact.
// Used when computing a page's accessibility score.
func (i Impact) Weight() int {
	switch i {
	case ImpactMinor:
		return 1
	case ImpactModerate:
		return 2
	case ImpactSerious:
		return 4
	case ImpactCritical:
		return 8
	default:
		return 1
	}
}

// String returns the string representation.
func (i Impact) String() string {
	return string(i)
}

// FindingStatus tracks a finding's lifecycle across scans.
type FindingStatus string

// Finding statuses.
const (
	// FindingStatusOpen means the finding was present in the latest scan.
	FindingStatusOpen FindingStatus = "open"

	// FindingStatusResolved means the finding no longer appears.
	FindingStatusResolved FindingStatus = "resolved"
)

// Finding represents a single accessibility issue detected on a page.
// Findings are correlated across scans by Fingerprint, so the same
// issue keeps one identity over time.
type Finding struct {
	// ID is the unique identifier for the finding.
	ID string

	// ScanID links to the Scan that most recently observed this finding.
	ScanID string

	// SiteID links to the monitored Site.
	SiteID string

	// Rule is the axe-core rule identifier (e.g., "button-name").
	Rule string

	// Impact is the severity reported by the audit engine.
	Impact Impact

	// Description is the human-readable rule description.
	Description string

	// HelpURL points at remediation documentation for the rule.
	HelpURL string

	// Selector is the CSS selector of the offending element.
	Selector string

	// HTML is the exact offending fragment reported by the engine.
	HTML string

	// TextContent is the extracted visible text of the element.
	// Empty when the element has no visible text.
	TextContent string

	// Fingerprint is the stable identity of this issue across scans.
	Fingerprint string

	// Status is the lifecycle state.
	Status FindingStatus

	// IssueURL is the tracker issue filed for this finding, if any.
	IssueURL string

	// FirstSeen is when the finding was first observed.
	FirstSeen time.Time

	// LastSeen is when the finding was most recently observed.
	LastSeen time.Time
}

// ComputeFingerprint derives the stable identity of a finding from the
// rule, selector and offending HTML. Page URL is excluded so moving a
// page does not reset finding history.
func ComputeFingerprint(rule, selector, html string) string {
	h := sha256.New()
	h.Write([]byte(rule))
	h.Write([]byte{0})
	h.Write([]byte(selector))
	h.Write([]byte{0})
	h.Write([]byte(html))
	return hex.EncodeToString(h.Sum(nil))[:32]
}
