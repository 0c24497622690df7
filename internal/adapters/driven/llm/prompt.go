// Package llm holds prompt construction and response parsing shared by
// the LLM provider adapters.
package llm

import (
	"fmt"
	"strings"

	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// FixSystemPrompt frames the model as an accessibility remediation
// assistant and pins the expected response shape.
const FixSystemPrompt = `You are an accessibility remediation assistant.
Given an axe-core violation and the source code behind it, propose the smallest
code change that resolves the violation.

Respond with exactly one fenced code block containing the corrected code,
followed by a short explanation of why the change resolves the issue.
Do not restate the problem.`

// BuildFixPrompt renders the user prompt for a fix request.
func BuildFixPrompt(req driven.FixRequest) string {
	var b strings.Builder

	f := req.Finding
	fmt.Fprintf(&b, "Rule: %s (%s impact)\n", f.Rule, f.Impact)
	fmt.Fprintf(&b, "Description: %s\n", f.Description)
	if f.HelpURL != "" {
		fmt.Fprintf(&b, "Reference: %s\n", f.HelpURL)
	}
	fmt.Fprintf(&b, "Selector: %s\n", f.Selector)
	fmt.Fprintf(&b, "\nOffending HTML:\n%s\n", f.HTML)

	if req.FilePath != "" {
		fmt.Fprintf(&b, "\nSource file: %s\n", req.FilePath)
	}
	if req.SourceContext != "" {
		fmt.Fprintf(&b, "\nSource context:\n```\n%s\n```\n", req.SourceContext)
	}

	return b.String()
}

// ParseFixResponse splits a model response into the patch (the first
// fenced code block) and the explanation (everything outside it).
// Responses without a fenced block are treated as explanation only.
func ParseFixResponse(response string) (patch, explanation string) {
	start := strings.Index(response, "```")
	if start < 0 {
		return "", strings.TrimSpace(response)
	}

	// Skip the opening fence and any language tag on the same line.
	bodyStart := start + 3
	if nl := strings.Index(response[bodyStart:], "\n"); nl >= 0 {
		bodyStart += nl + 1
	}

	end := strings.Index(response[bodyStart:], "```")
	if end < 0 {
		return "", strings.TrimSpace(response)
	}

	patch = strings.TrimSpace(response[bodyStart : bodyStart+end])
	explanation = strings.TrimSpace(response[:start] + response[bodyStart+end+3:])
	return patch, explanation
}
