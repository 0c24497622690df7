package driven

import "github.com/allylab/allylab-cli/internal/core/domain"

// ConfidenceScorer computes how likely a candidate source text is to
// contain the HTML fragment flagged by a finding.
//
// Implementations must be pure and deterministic: identical inputs
// yield identical confidence. Higher Score means higher similarity.
// textContent is the extracted visible text of the flagged element and
// may be empty; scorers use it as a secondary similarity signal.
//
// The default strategy is heuristic (substring containment plus token
// overlap); alternatives can be substituted without touching the ranker.
type ConfidenceScorer interface {
	// Score evaluates one candidate against the flagged fragment.
	// An empty candidate is scoreable and yields the lowest confidence.
	Score(candidate, originalHTML, textContent string) (domain.MatchConfidence, error)
}
