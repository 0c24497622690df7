package driving

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// FindingService manages detected findings and locates their source.
type FindingService interface {
	// List returns findings matching the filter.
	List(ctx context.Context, filter driven.FindingFilter) ([]domain.Finding, error)

	// Get retrieves a finding by ID.
	Get(ctx context.Context, id string) (*domain.Finding, error)

	// Locate searches the site's source checkout for the file behind
	// the finding and returns candidates ranked by confidence.
	Locate(ctx context.Context, findingID string) ([]domain.RankedFile, error)

	// Resolve marks a finding as resolved.
	Resolve(ctx context.Context, id string) error
}
