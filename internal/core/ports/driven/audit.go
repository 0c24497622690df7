package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// AuditEngine runs an accessibility audit against a live page.
// Backed by an external axe-core runner; the DOM scanning engine
// itself is not part of AllyLab.
type AuditEngine interface {
	// Audit loads the page and returns the raw rule violations.
	Audit(ctx context.Context, pageURL string) (*domain.AuditResult, error)

	// Ping validates the engine is reachable.
	Ping(ctx context.Context) error
}
