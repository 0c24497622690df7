package driving

import "context"

// ReportService files tracker issues for findings.
type ReportService interface {
	// Report files an issue for the finding and records its URL.
	// Findings that already carry an issue URL are skipped with
	// domain.ErrAlreadyReported.
	Report(ctx context.Context, findingID string) (string, error)

	// ReportOpen files issues for every unreported open finding of a
	// site and returns the created issue URLs.
	ReportOpen(ctx context.Context, siteID string) ([]string, error)
}
