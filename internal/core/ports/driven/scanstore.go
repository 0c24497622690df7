package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// ScanStore persists scan runs.
// Backed by SQLite.
type ScanStore interface {
	// Save stores a completed scan.
	Save(ctx context.Context, scan *domain.Scan) error

	// Get retrieves a scan by ID.
	Get(ctx context.Context, id string) (*domain.Scan, error)

	// Latest returns the most recent scan for a site page,
	// or domain.ErrNotFound when the page has never been scanned.
	Latest(ctx context.Context, siteID, pageURL string) (*domain.Scan, error)

	// List returns scans for a site, most recent first.
	List(ctx context.Context, siteID string, limit int) ([]domain.Scan, error)
}
