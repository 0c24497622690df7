package domain

import "time"

// Scan represents one audit run against a page.
type Scan struct {
	// ID is the unique identifier for the scan.
	ID string

	// SiteID links to the Site that was scanned.
	SiteID string

	// PageURL is the page that was audited.
	PageURL string

	// Engine identifies the audit engine and version (e.g., "axe-core/4.10").
	Engine string

	// StartedAt is when the audit began.
	StartedAt time.Time

	// CompletedAt is when the audit finished.
	CompletedAt time.Time

	// Summary aggregates finding counts for this scan.
	Summary ScanSummary
}

// ScanSummary aggregates the outcome of a scan relative to the site's
// finding history.
type ScanSummary struct {
	// Total is the number of findings present in this scan.
	Total int

	// New is the number of findings not seen in the previous scan.
	New int

	// Recurring is the number of findings carried over from the previous scan.
	Recurring int

	// Resolved is the number of previously open findings absent from the
	// scan run. Resolution spans the whole site, so the count is recorded
	// on the run's first scan.
	Resolved int

	// Score is the impact-weighted accessibility score, 0-100.
	// 100 means no findings.
	Score int

	// CountsByImpact breaks Total down per impact level.
	CountsByImpact map[Impact]int
}

// AuditResult is the raw outcome delivered by the audit engine before
// findings are correlated with scan history.
type AuditResult struct {
	// PageURL is the audited page.
	PageURL string

	// Engine identifies the engine and version.
	Engine string

	// Violations are the raw rule violations.
	Violations []Violation
}

// Violation is one raw rule violation from the audit engine.
// A violation may flag several DOM nodes.
type Violation struct {
	// Rule is the rule identifier.
	Rule string

	// Impact is the severity.
	Impact Impact

	// Description is the rule description.
	Description string

	// HelpURL points at remediation documentation.
	HelpURL string

	// Nodes are the offending DOM nodes.
	Nodes []ViolationNode
}

// ViolationNode is one offending DOM node within a violation.
type ViolationNode struct {
	// Selector is the CSS selector of the node.
	Selector string

	// HTML is the outer HTML fragment of the node.
	HTML string
}

// ScanOptions configures a scan run.
type ScanOptions struct {
	// PageURLs limits the scan to specific pages.
	// Empty means scan the site's configured root URL.
	PageURLs []string

	// Concurrency bounds parallel page audits. Zero means the default.
	Concurrency int
}
