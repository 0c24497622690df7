package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// IssueTracker files issues for findings with an external tracker.
// Backed by GitHub; the tracker API client is not part of AllyLab.
type IssueTracker interface {
	// FileIssue creates an issue for the finding and returns its URL.
	FileIssue(ctx context.Context, finding domain.Finding, site domain.Site) (string, error)

	// Ping validates the tracker is reachable and credentials work.
	Ping(ctx context.Context) error
}
