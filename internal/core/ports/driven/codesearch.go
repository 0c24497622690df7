package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// CodeSearcher finds candidate source files for an HTML fragment
// within a project directory. Hits are unranked; the match service
// scores and orders them.
type CodeSearcher interface {
	// Search returns candidate files whose content relates to the
	// fragment. limit bounds the number of hits.
	Search(ctx context.Context, projectDir, fragment string, limit int) ([]domain.SearchHit, error)

	// Close releases resources.
	Close() error
}
