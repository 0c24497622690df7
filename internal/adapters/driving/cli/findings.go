package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

var (
	findingsSite   string
	findingsStatus string
	findingsImpact string
	findingsRule   string
	findingsJSON   bool
)

var findingsCmd = &cobra.Command{
	Use:   "findings",
	Short: "Inspect and manage detected findings",
	RunE:  runFindingsList,
}

var findingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List findings",
	Long: `List findings, optionally filtered:

  allylab findings list --site st-123 --status open --impact critical`,
	RunE: runFindingsList,
}

var findingsShowCmd = &cobra.Command{
	Use:   "show <finding-id>",
	Short: "Show full finding details",
	Args:  cobra.ExactArgs(1),
	RunE:  runFindingsShow,
}

var findingsResolveCmd = &cobra.Command{
	Use:   "resolve <finding-id>",
	Short: "Mark a finding as resolved",
	Args:  cobra.ExactArgs(1),
	RunE:  runFindingsResolve,
}

func init() {
	for _, c := range []*cobra.Command{findingsCmd, findingsListCmd} {
		c.Flags().StringVar(&findingsSite, "site", "", "filter by site ID")
		c.Flags().StringVar(&findingsStatus, "status", "", "filter by status (open, resolved)")
		c.Flags().StringVar(&findingsImpact, "impact", "", "filter by impact (minor, moderate, serious, critical)")
		c.Flags().StringVar(&findingsRule, "rule", "", "filter by rule identifier")
		c.Flags().BoolVar(&findingsJSON, "json", false, "output as JSON")
	}

	findingsCmd.AddCommand(findingsListCmd)
	findingsCmd.AddCommand(findingsShowCmd)
	findingsCmd.AddCommand(findingsResolveCmd)
	rootCmd.AddCommand(findingsCmd)
}

func runFindingsList(cmd *cobra.Command, _ []string) error {
	if findingService == nil {
		return errors.New("finding service not configured")
	}

	filter := driven.FindingFilter{
		SiteID: findingsSite,
		Rule:   findingsRule,
	}
	if findingsStatus != "" {
		filter.Status = domain.FindingStatus(findingsStatus)
	}
	if findingsImpact != "" {
		impact := domain.Impact(findingsImpact)
		if !impact.IsValid() {
			return fmt.Errorf("%w: unknown impact %q", domain.ErrInvalidInput, findingsImpact)
		}
		filter.Impact = impact
	}

	findings, err := findingService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list findings: %w", err)
	}

	if findingsJSON {
		return printJSON(cmd, findings)
	}

	if len(findings) == 0 {
		cmd.Println("No findings match the filter.")
		return nil
	}

	for i := range findings {
		f := &findings[i]
		cmd.Printf("%s  [%s] %s  %s  (%s)\n", f.ID, f.Impact, f.Rule, f.Selector, f.Status)
	}
	cmd.Printf("\n%d finding(s)\n", len(findings))
	return nil
}

func runFindingsShow(cmd *cobra.Command, args []string) error {
	if findingService == nil {
		return errors.New("finding service not configured")
	}

	finding, err := findingService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get finding: %w", err)
	}

	if findingsJSON {
		return printJSON(cmd, finding)
	}

	cmd.Printf("Finding %s (%s)\n", finding.ID, finding.Status)
	cmd.Printf("  Rule:        %s (%s impact)\n", finding.Rule, finding.Impact)
	if finding.Description != "" {
		cmd.Printf("  Description: %s\n", finding.Description)
	}
	cmd.Printf("  Selector:    %s\n", finding.Selector)
	cmd.Printf("  HTML:        %s\n", finding.HTML)
	if finding.TextContent != "" {
		cmd.Printf("  Text:        %s\n", finding.TextContent)
	}
	if finding.HelpURL != "" {
		cmd.Printf("  Help:        %s\n", finding.HelpURL)
	}
	if finding.IssueURL != "" {
		cmd.Printf("  Issue:       %s\n", finding.IssueURL)
	}
	cmd.Printf("  First seen:  %s\n", finding.FirstSeen.Format("2006-01-02 15:04"))
	cmd.Printf("  Last seen:   %s\n", finding.LastSeen.Format("2006-01-02 15:04"))
	cmd.Printf("  Fingerprint: %s\n", finding.Fingerprint)
	return nil
}

func runFindingsResolve(cmd *cobra.Command, args []string) error {
	if findingService == nil {
		return errors.New("finding service not configured")
	}

	if err := findingService.Resolve(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to resolve finding: %w", err)
	}

	cmd.Printf("Resolved finding %s\n", args[0])
	return nil
}

// printJSON writes v as indented JSON to the command's output.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
