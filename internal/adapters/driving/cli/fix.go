package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

var fixCmd = &cobra.Command{
	Use:   "fix <finding-id>",
	Short: "Suggest an AI-generated fix for a finding",
	Long: `Ask the configured LLM provider for a remediation patch.

When the site has a project directory, the best-matching source file is
located first and its content is included in the prompt, so the patch
targets the real code rather than the rendered HTML.`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	rootCmd.AddCommand(fixCmd)
}

func runFix(cmd *cobra.Command, args []string) error {
	if fixService == nil {
		return errors.New("fix service not configured")
	}

	suggestion, err := fixService.SuggestFix(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return fmt.Errorf("no LLM provider configured; run 'allylab settings llm': %w", err)
		}
		return fmt.Errorf("failed to suggest fix: %w", err)
	}

	if suggestion.FilePath != "" {
		cmd.Printf("File: %s\n\n", suggestion.FilePath)
	}
	if suggestion.Patch != "" {
		cmd.Println("Suggested change:")
		cmd.Println(suggestion.Patch)
		cmd.Println()
	}
	if suggestion.Explanation != "" {
		cmd.Println(suggestion.Explanation)
	}
	cmd.Printf("\n(model: %s)\n", suggestion.Model)
	return nil
}
