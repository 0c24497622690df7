package domain

// SearchHit is a raw candidate produced by a code searcher when looking
// for the source file behind a flagged HTML fragment.
// Hits are immutable once received.
type SearchHit struct {
	// Path identifies the candidate file.
	Path string

	// Preview is a short excerpt around the match, if available.
	Preview string

	// Content is the full text body of the file, if available.
	Content string
}

// ScoreText returns the text a confidence scorer should evaluate for
// this hit. Full content is preferred over the preview; hits carrying
// neither are scored against the empty string.
func (h SearchHit) ScoreText() string {
	if h.Content != "" {
		return h.Content
	}
	return h.Preview
}

// ConfidenceLevel is an ordered qualitative bucket summarising a
// numeric match score.
type ConfidenceLevel int

// Confidence levels, ordered from weakest to strongest.
const (
	ConfidenceNone ConfidenceLevel = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

// String returns the level name.
func (l ConfidenceLevel) String() string {
	switch l {
	case ConfidenceNone:
		return "none"
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "unknown"
	}
}

// AtLeast returns true if the level is equal to or stronger than other.
func (l ConfidenceLevel) AtLeast(other ConfidenceLevel) bool {
	return l >= other
}

// MatchConfidence pairs a numeric similarity score with its
// qualitative level. Computed fresh per (hit, html, text) triple.
type MatchConfidence struct {
	// Score is the numeric similarity measure. Higher means more similar.
	Score float64

	// Level is the qualitative bucket for Score.
	Level ConfidenceLevel
}

// RankedFile is one candidate source file after confidence ranking.
// It is constructed once per ranking call and never mutated afterwards.
type RankedFile struct {
	// Path identifies the candidate file.
	Path string

	// Preview is carried over from the originating SearchHit.
	Preview string

	// Confidence is the computed match confidence.
	Confidence MatchConfidence

	// IsBestMatch marks the single top-ranked candidate, and only when
	// its confidence level is above ConfidenceNone.
	IsBestMatch bool
}
