package driving

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// FixService generates AI-assisted remediations for findings.
type FixService interface {
	// SuggestFix locates the source behind the finding and asks the
	// configured LLM for a patch. Returns domain.ErrLLMUnavailable
	// when no LLM is configured.
	SuggestFix(ctx context.Context, findingID string) (*domain.FixSuggestion, error)
}
