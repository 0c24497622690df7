package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

var (
	scanPages       []string
	scanConcurrency int
	historyLimit    int
)

var scanCmd = &cobra.Command{
	Use:   "scan <site-id>",
	Short: "Audit a site for accessibility issues",
	Long: `Run an accessibility audit against a site's pages.

Each page is audited through the configured axe-core runner. Findings
are correlated with previous scans, so the summary shows what is new,
what recurs and what has been resolved.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

var historyCmd = &cobra.Command{
	Use:   "history <site-id>",
	Short: "Show recent scans for a site",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	scanCmd.Flags().StringArrayVar(&scanPages, "page", nil, "limit the scan to specific page URLs (repeatable)")
	scanCmd.Flags().IntVar(&scanConcurrency, "concurrency", 0, "parallel page audits (0 = default)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum scans to show")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	scans, err := scanService.Scan(cmd.Context(), args[0], domain.ScanOptions{
		PageURLs:    scanPages,
		Concurrency: scanConcurrency,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAuditUnavailable) {
			return fmt.Errorf("audit engine unreachable; check 'allylab settings audit': %w", err)
		}
		return fmt.Errorf("scan failed: %w", err)
	}

	for i := range scans {
		printScanSummary(cmd, &scans[i])
	}
	cmd.Printf("Audited %d page(s)\n", len(scans))
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	if scanService == nil {
		return errors.New("scan service not configured")
	}

	scans, err := scanService.History(cmd.Context(), args[0], historyLimit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(scans) == 0 {
		cmd.Println("No scans recorded for this site.")
		return nil
	}

	for i := range scans {
		scan := &scans[i]
		cmd.Printf("%s  %s  score %d  %d finding(s) (%d new, %d resolved)\n",
			scan.StartedAt.Format("2006-01-02 15:04"),
			scan.PageURL,
			scan.Summary.Score,
			scan.Summary.Total,
			scan.Summary.New,
			scan.Summary.Resolved)
	}
	return nil
}

// printScanSummary renders one page's audit outcome.
func printScanSummary(cmd *cobra.Command, scan *domain.Scan) {
	cmd.Printf("%s\n", scan.PageURL)
	cmd.Printf("  Score: %d/100 (%s)\n", scan.Summary.Score, scan.Engine)
	cmd.Printf("  Findings: %d total, %d new, %d recurring, %d resolved\n",
		scan.Summary.Total, scan.Summary.New, scan.Summary.Recurring, scan.Summary.Resolved)

	if scan.Summary.Total > 0 {
		cmd.Print("  By impact:")
		for _, impact := range []domain.Impact{
			domain.ImpactCritical, domain.ImpactSerious, domain.ImpactModerate, domain.ImpactMinor,
		} {
			if n := scan.Summary.CountsByImpact[impact]; n > 0 {
				cmd.Printf(" %d %s", n, impact)
			}
		}
		cmd.Println()
	}
	cmd.Println()
}
