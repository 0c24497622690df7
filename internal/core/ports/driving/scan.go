package driving

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// ScanService runs accessibility audits and tracks findings over time.
type ScanService interface {
	// Scan audits a site's pages, correlates violations with finding
	// history, and persists the results. Returns one scan per page.
	Scan(ctx context.Context, siteID string, opts domain.ScanOptions) ([]domain.Scan, error)

	// History returns recent scans for a site, most recent first.
	History(ctx context.Context, siteID string, limit int) ([]domain.Scan, error)
}
