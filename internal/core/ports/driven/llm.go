package driven

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// FixRequest carries everything an LLM needs to propose a remediation.
type FixRequest struct {
	// Finding is the accessibility issue to fix.
	Finding domain.Finding

	// FilePath is the located source file.
	FilePath string

	// SourceContext is the relevant slice of the source file.
	SourceContext string
}

// LLMService provides language model operations for fix generation.
// This is an optional service - when nil, fix suggestions are disabled
// and other features keep working.
//
// Implementations may include:
//   - OpenAI (GPT-4o)
//   - Anthropic (Claude)
type LLMService interface {
	// SuggestFix produces a remediation patch and explanation.
	SuggestFix(ctx context.Context, req FixRequest) (*domain.FixSuggestion, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
