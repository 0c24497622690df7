package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// FindingFilter narrows finding queries.
type FindingFilter struct {
	// SiteID filters to one site. Empty matches all sites.
	SiteID string

	// Status filters by lifecycle state. Empty matches all statuses.
	Status domain.FindingStatus

	// Impact filters by severity. Empty matches all impacts.
	Impact domain.Impact

	// Rule filters by rule identifier. Empty matches all rules.
	Rule string
}

// FindingStore persists findings and their history across scans.
// Backed by SQLite.
type FindingStore interface {
	// Save stores or updates a finding.
	Save(ctx context.Context, f *domain.Finding) error

	// Get retrieves a finding by ID.
	Get(ctx context.Context, id string) (*domain.Finding, error)

	// GetByFingerprint retrieves a site's finding by fingerprint.
	GetByFingerprint(ctx context.Context, siteID, fingerprint string) (*domain.Finding, error)

	// List returns findings matching the filter, most recent first.
	List(ctx context.Context, filter FindingFilter) ([]domain.Finding, error)

	// Delete removes a finding.
	Delete(ctx context.Context, id string) error
}
