package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// SiteStore persists monitored sites.
// Backed by SQLite.
type SiteStore interface {
	// Save stores or updates a site.
	Save(ctx context.Context, site *domain.Site) error

	// Get retrieves a site by ID.
	Get(ctx context.Context, id string) (*domain.Site, error)

	// List returns all registered sites.
	List(ctx context.Context) ([]domain.Site, error)

	// Delete removes a site.
	Delete(ctx context.Context, id string) error
}
