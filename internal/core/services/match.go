package services

import (
	"fmt"
	"sort"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
	"github.com/allylab/allylab-cli/internal/logger"
)

// Ensure MatchService implements the interface.
var _ driving.MatchService = (*MatchService)(nil)

// MatchService ranks candidate source files against a flagged HTML
// fragment. The scoring strategy is injected so alternatives can be
// substituted without touching the ranking logic.
type MatchService struct {
	scorer driven.ConfidenceScorer
}

// NewMatchService creates a match service with the given scorer.
func NewMatchService(scorer driven.ConfidenceScorer) *MatchService {
	return &MatchService{scorer: scorer}
}

// RankSearchResults scores every hit and returns the candidates in
// descending score order. Ties keep the relative order the hits
// arrived in. Exactly one result is marked as the best match, and
// only when the top-ranked confidence is above ConfidenceNone.
//
// Hits carrying neither content nor preview are scored against the
// empty string, which yields the lowest confidence; they are never
// dropped, so the output length always equals the input length.
// A scorer failure aborts the ranking and is propagated wrapped.
func (s *MatchService) RankSearchResults(
	hits []domain.SearchHit, originalHTML, textContent string,
) ([]domain.RankedFile, error) {
	if s.scorer == nil {
		return nil, domain.ErrInvalidInput
	}

	logger.Section("Match Ranking")
	logger.Debug("Candidates: %d, fragment: %d bytes", len(hits), len(originalHTML))

	ranked := make([]domain.RankedFile, len(hits))
	for i, hit := range hits {
		confidence, err := s.scorer.Score(hit.ScoreText(), originalHTML, textContent)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", hit.Path, err)
		}

		ranked[i] = domain.RankedFile{
			Path:       hit.Path,
			Preview:    hit.Preview,
			Confidence: confidence,
		}
	}

	// Stable sort keeps arrival order for equal scores.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Confidence.Score > ranked[j].Confidence.Score
	})

	if len(ranked) > 0 && ranked[0].Confidence.Level > domain.ConfidenceNone {
		ranked[0].IsBestMatch = true
		logger.Info("Best match: %s (%s, %.2f)",
			ranked[0].Path, ranked[0].Confidence.Level, ranked[0].Confidence.Score)
	} else {
		logger.Debug("No candidate above the lowest confidence tier")
	}

	return ranked, nil
}
