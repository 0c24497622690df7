package driving

import "github.com/allylab/allylab-cli/internal/core/domain"

// MatchService ranks candidate source files by how likely they are to
// contain a flagged HTML fragment.
type MatchService interface {
	// RankSearchResults scores each hit against the original HTML and
	// its extracted text content, and returns the candidates ordered
	// by descending confidence. At most one result is marked as the
	// best match, and only when its confidence is above the lowest
	// tier. The output always has the same length as the input.
	RankSearchResults(hits []domain.SearchHit, originalHTML, textContent string) ([]domain.RankedFile, error)
}
