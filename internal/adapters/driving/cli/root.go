// Package cli provides the cobra command tree for the AllyLab CLI.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
	"github.com/allylab/allylab-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected by the composition root before Execute.
var (
	scanService    driving.ScanService
	findingService driving.FindingService
	fixService     driving.FixService
	reportService  driving.ReportService
	siteService    driving.SiteService
	scheduler      driving.SchedulerControl

	configStore     driven.ConfigStore
	schedulerConfig domain.SchedulerConfig
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "allylab",
	Short: "Accessibility auditing for web projects",
	Long: `AllyLab audits web pages for accessibility issues, tracks findings
over time, locates the source code behind each issue, and helps fix them.

Scans run through an external axe-core runner; findings keep a stable
identity across scans so you can see what is new, recurring or resolved.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}

// Services bundles everything the command tree needs.
type Services struct {
	Scan      driving.ScanService
	Finding   driving.FindingService
	Fix       driving.FixService
	Report    driving.ReportService
	Site      driving.SiteService
	Scheduler driving.SchedulerControl

	Config          driven.ConfigStore
	SchedulerConfig domain.SchedulerConfig
}

// SetServices wires the service layer into the command tree.
func SetServices(s Services) {
	scanService = s.Scan
	findingService = s.Finding
	fixService = s.Fix
	reportService = s.Report
	siteService = s.Site
	scheduler = s.Scheduler
	configStore = s.Config
	schedulerConfig = s.SchedulerConfig
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
