package domain

import "time"

// FixSuggestion is an AI-generated remediation for a finding.
type FixSuggestion struct {
	// FindingID links to the finding being fixed.
	FindingID string

	// FilePath is the source file the fix applies to.
	FilePath string

	// Patch is the suggested replacement code or unified diff.
	Patch string

	// Explanation describes why the change resolves the finding.
	Explanation string

	// Model is the LLM model that produced the suggestion.
	Model string

	// CreatedAt is when the suggestion was generated.
	CreatedAt time.Time
}
