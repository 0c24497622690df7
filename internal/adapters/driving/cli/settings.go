package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the audit engine, AI provider, issue tracker and
scheduler.

Use subcommands to configure specific areas interactively.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Configure the audit engine endpoint",
	Long:  `Configure the HTTP endpoint of the axe-core runner scans go through.`,
	RunE:  runSettingsAudit,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure the AI provider for fix suggestions",
	RunE:  runSettingsLLM,
}

var settingsGitHubCmd = &cobra.Command{
	Use:   "github",
	Short: "Configure the GitHub issue tracker",
	RunE:  runSettingsGitHub,
}

var settingsSchedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Configure recurring audits",
	RunE:  runSettingsScheduler,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAuditCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsGitHubCmd)
	settingsCmd.AddCommand(settingsSchedulerCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Audit Engine]")
	endpoint := configStore.GetString(domain.SettingAuditEndpoint)
	if endpoint == "" {
		cmd.Println("  Endpoint: (not set, using default)")
	} else {
		cmd.Printf("  Endpoint: %s\n", endpoint)
	}
	if timeout := configStore.GetInt(domain.SettingAuditTimeout); timeout > 0 {
		cmd.Printf("  Timeout: %ds\n", timeout)
	}
	cmd.Println()

	cmd.Println("[AI Provider]")
	provider := configStore.GetString(domain.SettingLLMProvider)
	if provider == "" {
		cmd.Println("  Provider: (not set, fix suggestions disabled)")
	} else {
		cmd.Printf("  Provider: %s\n", provider)
		if model := configStore.GetString(domain.SettingLLMModel); model != "" {
			cmd.Printf("  Model: %s\n", model)
		}
		if key := configStore.GetString(domain.SettingLLMAPIKey); key != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(key))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[GitHub]")
	repo := configStore.GetString(domain.SettingGitHubRepo)
	if repo == "" {
		cmd.Println("  Repo: (not set, issue filing disabled)")
	} else {
		cmd.Printf("  Repo: %s\n", repo)
		if token := configStore.GetString(domain.SettingGitHubToken); token != "" {
			cmd.Printf("  Token: %s\n", maskAPIKey(token))
		} else {
			cmd.Printf("  Token: (not set)\n")
		}
	}
	cmd.Println()

	cmd.Println("[Scheduler]")
	if configStore.GetBool(domain.SettingSchedulerEnabled) {
		cmd.Printf("  Enabled: yes\n")
		interval := configStore.GetInt(domain.SettingSchedulerInterval)
		if interval <= 0 {
			interval = 24
		}
		cmd.Printf("  Interval: every %dh\n", interval)
	} else {
		cmd.Printf("  Enabled: no\n")
	}

	return nil
}

func runSettingsAudit(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Configure Audit Engine")
	cmd.Println("----------------------")
	cmd.Print("Runner endpoint [http://localhost:9001]: ")
	endpoint := readLine(reader)
	if endpoint == "" {
		endpoint = "http://localhost:9001"
	}
	if err := configStore.Set(domain.SettingAuditEndpoint, endpoint); err != nil {
		return fmt.Errorf("failed to save endpoint: %w", err)
	}

	cmd.Print("Request timeout in seconds [90]: ")
	timeout := 90
	if input := readLine(reader); input != "" {
		val, err := strconv.Atoi(input)
		if err != nil || val <= 0 {
			return fmt.Errorf("%w: timeout must be a positive integer", domain.ErrInvalidInput)
		}
		timeout = val
	}
	if err := configStore.Set(domain.SettingAuditTimeout, timeout); err != nil {
		return fmt.Errorf("failed to save timeout: %w", err)
	}

	cmd.Printf("Audit engine configured: %s (timeout %ds)\n", endpoint, timeout)
	cmd.Println("Restart any running TUI or MCP server to pick up the change.")
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	providers := []domain.AIProvider{domain.AIProviderOpenAI, domain.AIProviderAnthropic}

	cmd.Println("Configure AI Provider")
	cmd.Println("---------------------")
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p)
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	provider := providers[idx-1]

	cmd.Print("Model (empty for provider default): ")
	model := readLine(reader)

	cmd.Print("API key: ")
	apiKey := readPassword()
	cmd.Println()
	if apiKey == "" {
		return fmt.Errorf("%w: API key is required", domain.ErrInvalidInput)
	}

	if err := configStore.Set(domain.SettingLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("failed to save provider: %w", err)
	}
	if err := configStore.Set(domain.SettingLLMModel, model); err != nil {
		return fmt.Errorf("failed to save model: %w", err)
	}
	if err := configStore.Set(domain.SettingLLMAPIKey, apiKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	cmd.Printf("AI provider configured: %s\n", provider)
	return nil
}

func runSettingsGitHub(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Configure GitHub Issue Tracker")
	cmd.Println("------------------------------")
	cmd.Print("Repository (owner/name): ")
	repo := readLine(reader)
	if owner, name, ok := strings.Cut(repo, "/"); !ok || owner == "" || name == "" {
		return fmt.Errorf("%w: repository must be in owner/name form", domain.ErrInvalidInput)
	}

	cmd.Print("Personal access token: ")
	token := readPassword()
	cmd.Println()
	if token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	if err := configStore.Set(domain.SettingGitHubRepo, repo); err != nil {
		return fmt.Errorf("failed to save repo: %w", err)
	}
	if err := configStore.Set(domain.SettingGitHubToken, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	cmd.Printf("Issue tracker configured: %s\n", repo)
	return nil
}

func runSettingsScheduler(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Configure Recurring Audits")
	cmd.Println("--------------------------")
	cmd.Print("Enable recurring audits? (y/n) [n]: ")
	enabled := strings.EqualFold(readLine(reader), "y")

	if err := configStore.Set(domain.SettingSchedulerEnabled, enabled); err != nil {
		return fmt.Errorf("failed to save scheduler switch: %w", err)
	}

	if !enabled {
		cmd.Println("Recurring audits disabled.")
		return nil
	}

	cmd.Print("Audit interval in hours [24]: ")
	interval := 24
	if input := readLine(reader); input != "" {
		val, err := strconv.Atoi(input)
		if err != nil || val <= 0 {
			return fmt.Errorf("%w: interval must be a positive integer", domain.ErrInvalidInput)
		}
		interval = val
	}
	if err := configStore.Set(domain.SettingSchedulerInterval, interval); err != nil {
		return fmt.Errorf("failed to save interval: %w", err)
	}

	cmd.Printf("Recurring audits enabled, every %dh.\n", interval)
	cmd.Println("The scheduler runs while the TUI is open ('allylab tui').")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
