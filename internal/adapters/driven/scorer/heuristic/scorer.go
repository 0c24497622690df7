// Package heuristic provides the default confidence scoring strategy.
// It combines exact substring containment with token overlap, using
// the element's visible text as a secondary signal. The strategy is
// deliberately replaceable: the ranker only sees the
// driven.ConfidenceScorer contract.
package heuristic

import (
	"regexp"
	"strings"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// Ensure Scorer implements the interface.
var _ driven.ConfidenceScorer = (*Scorer)(nil)

// Level thresholds for mapping a score to a confidence bucket.
const (
	// HighThreshold is the minimum score for ConfidenceHigh.
	HighThreshold = 0.75

	// MediumThreshold is the minimum score for ConfidenceMedium.
	MediumThreshold = 0.45

	// LowThreshold is the score that must be exceeded for ConfidenceLow.
	LowThreshold = 0.15
)

// Weights of the two similarity signals.
const (
	markupWeight = 0.7
	textWeight   = 0.3
)

var tokenSplit = regexp.MustCompile(`[^a-z0-9-]+`)

// Scorer computes match confidence between a candidate source text
// and a flagged HTML fragment. It is pure and deterministic.
type Scorer struct{}

// New creates the default heuristic scorer.
func New() *Scorer {
	return &Scorer{}
}

// Score evaluates how likely the candidate text is to contain the
// source of the flagged fragment.
//
// An exact (whitespace-insensitive) occurrence of the fragment scores
// 1.0. Otherwise the score is the weighted sum of fragment token
// overlap and visible-text containment. Empty candidates score 0 with
// the lowest confidence; they are scoreable, not an error.
func (s *Scorer) Score(candidate, originalHTML, textContent string) (domain.MatchConfidence, error) {
	cand := normalise(candidate)
	frag := normalise(originalHTML)

	if cand == "" || frag == "" {
		return domain.MatchConfidence{Score: 0, Level: domain.ConfidenceNone}, nil
	}

	if strings.Contains(cand, frag) {
		return domain.MatchConfidence{Score: 1.0, Level: domain.ConfidenceHigh}, nil
	}

	score := markupWeight * tokenOverlap(frag, cand)
	score += textWeight * textSignal(textContent, cand)

	if score > 1.0 {
		score = 1.0
	}

	return domain.MatchConfidence{Score: score, Level: levelFor(score)}, nil
}

// levelFor maps a numeric score to its qualitative bucket.
func levelFor(score float64) domain.ConfidenceLevel {
	switch {
	case score >= HighThreshold:
		return domain.ConfidenceHigh
	case score >= MediumThreshold:
		return domain.ConfidenceMedium
	case score > LowThreshold:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceNone
	}
}

// tokenOverlap returns the fraction of fragment tokens present in the
// candidate. The candidate is typically a whole file, so overlap is
// measured against the fragment, not symmetrically.
func tokenOverlap(frag, cand string) float64 {
	fragTokens := tokenise(frag)
	if len(fragTokens) == 0 {
		return 0
	}

	candSet := make(map[string]bool)
	for _, tok := range tokenise(cand) {
		candSet[tok] = true
	}

	matched := 0
	for _, tok := range fragTokens {
		if candSet[tok] {
			matched++
		}
	}

	return float64(matched) / float64(len(fragTokens))
}

// textSignal measures how strongly the element's visible text appears
// in the candidate. Containment of the whole text is a full signal;
// partial word overlap degrades proportionally.
func textSignal(textContent, cand string) float64 {
	text := normalise(textContent)
	if text == "" {
		return 0
	}

	if strings.Contains(cand, text) {
		return 1.0
	}

	return tokenOverlap(text, cand)
}

// normalise lowercases and collapses whitespace so formatting
// differences between rendered HTML and source do not mask a match.
func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenise splits normalised text into comparable tokens.
func tokenise(s string) []string {
	parts := tokenSplit.Split(s, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
