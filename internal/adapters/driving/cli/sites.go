package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

var (
	siteAddName       string
	siteAddProjectDir string
	siteAddPages      []string
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Manage monitored sites",
	Long: `Register, list and remove the sites AllyLab audits.

Each site pairs a live URL with an optional local source checkout used
to locate the code behind detected findings.`,
	RunE: runSitesList,
}

var sitesAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Register a site",
	Long: `Register a new site for auditing.

Additional pages are audited alongside the root URL:

  allylab sites add https://shop.example.com --name Shop \
    --page /checkout --page /cart --project-dir ~/src/shop`,
	Args: cobra.ExactArgs(1),
	RunE: runSitesAdd,
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sites",
	RunE:  runSitesList,
}

var sitesRemoveCmd = &cobra.Command{
	Use:   "remove <site-id>",
	Short: "Remove a site and its scan history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSitesRemove,
}

func init() {
	sitesAddCmd.Flags().StringVar(&siteAddName, "name", "", "human-readable site name (defaults to the URL)")
	sitesAddCmd.Flags().StringVar(&siteAddProjectDir, "project-dir", "", "local source checkout for locating findings")
	sitesAddCmd.Flags().StringArrayVar(&siteAddPages, "page", nil, "additional page path to audit (repeatable)")

	sitesCmd.AddCommand(sitesAddCmd)
	sitesCmd.AddCommand(sitesListCmd)
	sitesCmd.AddCommand(sitesRemoveCmd)
	rootCmd.AddCommand(sitesCmd)
}

func runSitesAdd(cmd *cobra.Command, args []string) error {
	if siteService == nil {
		return errors.New("site service not configured")
	}

	name := siteAddName
	if name == "" {
		name = args[0]
	}

	site, err := siteService.Add(cmd.Context(), domain.Site{
		Name:       name,
		URL:        args[0],
		ProjectDir: siteAddProjectDir,
		Pages:      siteAddPages,
	})
	if err != nil {
		return fmt.Errorf("failed to add site: %w", err)
	}

	cmd.Printf("Added site %s (%s)\n", site.ID, site.DisplayName())
	if site.ProjectDir == "" {
		cmd.Println("No project directory set; source location is disabled for this site.")
	}
	return nil
}

func runSitesList(cmd *cobra.Command, _ []string) error {
	if siteService == nil {
		return errors.New("site service not configured")
	}

	sites, err := siteService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	if len(sites) == 0 {
		cmd.Println("No sites registered. Add one with 'allylab sites add <url>'.")
		return nil
	}

	for i := range sites {
		site := &sites[i]
		cmd.Printf("%s  %s\n", site.ID, site.DisplayName())
		if len(site.Pages) > 0 {
			cmd.Printf("    pages: %d (+root)\n", len(site.Pages))
		}
		if site.ProjectDir != "" {
			cmd.Printf("    source: %s\n", site.ProjectDir)
		}
	}
	cmd.Printf("\n%d site(s)\n", len(sites))
	return nil
}

func runSitesRemove(cmd *cobra.Command, args []string) error {
	if siteService == nil {
		return errors.New("site service not configured")
	}

	if err := siteService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove site: %w", err)
	}

	cmd.Printf("Removed site %s\n", args[0])
	return nil
}
