package driving

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// SiteService manages monitored sites.
type SiteService interface {
	// Add registers a new site and returns it with an assigned ID.
	Add(ctx context.Context, site domain.Site) (*domain.Site, error)

	// Get retrieves a site by ID.
	Get(ctx context.Context, id string) (*domain.Site, error)

	// List returns all registered sites.
	List(ctx context.Context) ([]domain.Site, error)

	// Remove deletes a site.
	Remove(ctx context.Context, id string) error
}
