package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

var reportSite string

var reportCmd = &cobra.Command{
	Use:   "report [finding-id]",
	Short: "File tracker issues for findings",
	Long: `File a GitHub issue for a finding, or for every unreported open
finding of a site:

  allylab report fn-123
  allylab report --site st-123`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportSite, "site", "", "report all unreported open findings of this site")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportService == nil {
		return errors.New("report service not configured")
	}

	if reportSite != "" {
		urls, err := reportService.ReportOpen(cmd.Context(), reportSite)
		if err != nil {
			return reportError(err)
		}
		if len(urls) == 0 {
			cmd.Println("Nothing to report: no unreported open findings.")
			return nil
		}
		for _, u := range urls {
			cmd.Println(u)
		}
		cmd.Printf("Filed %d issue(s)\n", len(urls))
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("%w: a finding ID or --site is required", domain.ErrInvalidInput)
	}

	url, err := reportService.Report(cmd.Context(), args[0])
	if err != nil {
		return reportError(err)
	}

	cmd.Printf("Filed issue: %s\n", url)
	return nil
}

func reportError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTrackerUnavailable):
		return fmt.Errorf("no issue tracker configured; run 'allylab settings github': %w", err)
	case errors.Is(err, domain.ErrAlreadyReported):
		return fmt.Errorf("an issue already exists for this finding: %w", err)
	case errors.Is(err, domain.ErrRateLimited):
		return fmt.Errorf("GitHub rate limit reached, try again later: %w", err)
	default:
		return fmt.Errorf("failed to file issue: %w", err)
	}
}
