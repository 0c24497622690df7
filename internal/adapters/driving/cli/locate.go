package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

var locateJSON bool

var locateCmd = &cobra.Command{
	Use:   "locate <finding-id>",
	Short: "Locate the source file behind a finding",
	Long: `Search the site's project directory for the source file most likely
to contain the flagged HTML fragment.

Candidates are ranked by match confidence; at most one is marked as the
best match.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().BoolVar(&locateJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(locateCmd)
}

func runLocate(cmd *cobra.Command, args []string) error {
	if findingService == nil {
		return errors.New("finding service not configured")
	}

	ranked, err := findingService.Locate(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNoProjectDir) {
			return fmt.Errorf("site has no project directory; set one with 'allylab sites add': %w", err)
		}
		return fmt.Errorf("failed to locate source: %w", err)
	}

	if locateJSON {
		return printJSON(cmd, ranked)
	}

	if len(ranked) == 0 {
		cmd.Println("No candidate files found.")
		return nil
	}

	for i := range ranked {
		file := &ranked[i]
		marker := "  "
		if file.IsBestMatch {
			marker = "* "
		}
		cmd.Printf("%s%-6s %.2f  %s\n", marker, file.Confidence.Level, file.Confidence.Score, file.Path)
	}
	cmd.Printf("\n%d candidate(s); * marks the best match\n", len(ranked))
	return nil
}
