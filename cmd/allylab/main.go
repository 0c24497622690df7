// Package main is the entry point for the allylab CLI.
// It wires the driven adapters and core services together and hands
// the result to the cobra command tree.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/allylab/allylab-cli/internal/adapters/driven/config/file"
	"github.com/allylab/allylab-cli/internal/adapters/driven/llm/anthropic"
	"github.com/allylab/allylab-cli/internal/adapters/driven/llm/openai"
	"github.com/allylab/allylab-cli/internal/adapters/driven/scanner/axe"
	"github.com/allylab/allylab-cli/internal/adapters/driven/scorer/heuristic"
	"github.com/allylab/allylab-cli/internal/adapters/driven/search/filesystem"
	"github.com/allylab/allylab-cli/internal/adapters/driven/storage/sqlite"
	"github.com/allylab/allylab-cli/internal/adapters/driven/tracker/github"
	"github.com/allylab/allylab-cli/internal/adapters/driving/cli"
	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/services"
	"github.com/allylab/allylab-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	searcher, err := filesystem.NewSearcher()
	if err != nil {
		return fmt.Errorf("creating code searcher: %w", err)
	}
	defer searcher.Close()

	engine := buildEngine(cfg)
	matchService := services.NewMatchService(heuristic.New())
	siteService := services.NewSiteService(store.SiteStore())
	scanService := services.NewScanService(engine, store.SiteStore(), store.ScanStore(), store.FindingStore())
	findingService := services.NewFindingService(store.FindingStore(), store.SiteStore(), searcher, matchService)
	fixService := services.NewFixService(store.FindingStore(), store.SiteStore(), findingService, buildLLM(cfg))
	reportService := services.NewReportService(store.FindingStore(), store.SiteStore(), buildTracker(ctx, cfg))

	schedulerConfig := buildSchedulerConfig(ctx, cfg, store.SiteStore())
	scheduler := services.NewScheduler(schedulerConfig, store.SchedulerStore(), store.SiteStore(), scanService)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Scan:      scanService,
		Finding:   findingService,
		Fix:       fixService,
		Report:    reportService,
		Site:      siteService,
		Scheduler: scheduler,

		Config:          cfg,
		SchedulerConfig: schedulerConfig,
	})

	return cli.Execute()
}

// buildEngine creates the audit engine from configuration.
// The engine carries its own defaults, so unset keys are fine.
func buildEngine(cfg driven.ConfigStore) *axe.Engine {
	return axe.NewEngine(axe.Config{
		Endpoint: cfg.GetString(domain.SettingAuditEndpoint),
		Timeout:  time.Duration(cfg.GetInt(domain.SettingAuditTimeout)) * time.Second,
	})
}

// buildLLM creates the fix-suggestion LLM from configuration.
// Returns nil when no provider is configured; the fix service reports
// domain.ErrLLMUnavailable in that case.
func buildLLM(cfg driven.ConfigStore) driven.LLMService {
	apiKey := cfg.GetString(domain.SettingLLMAPIKey)
	if apiKey == "" {
		return nil
	}

	provider := domain.AIProvider(cfg.GetString(domain.SettingLLMProvider))
	model := cfg.GetString(domain.SettingLLMModel)

	switch provider {
	case domain.AIProviderOpenAI:
		svc, err := openai.NewLLMService(openai.Config{APIKey: apiKey, Model: model})
		if err != nil {
			logger.Warn("OpenAI service unavailable: %v", err)
			return nil
		}
		return svc
	case domain.AIProviderAnthropic:
		svc, err := anthropic.NewLLMService(anthropic.Config{APIKey: apiKey, Model: model})
		if err != nil {
			logger.Warn("Anthropic service unavailable: %v", err)
			return nil
		}
		return svc
	default:
		logger.Warn("Unknown AI provider %q, fix suggestions disabled", provider)
		return nil
	}
}

// buildTracker creates the GitHub issue tracker from configuration.
// Returns nil when the token or repository is missing; the report
// service reports domain.ErrTrackerUnavailable in that case.
func buildTracker(ctx context.Context, cfg driven.ConfigStore) driven.IssueTracker {
	token := cfg.GetString(domain.SettingGitHubToken)
	repo := cfg.GetString(domain.SettingGitHubRepo)
	if token == "" || repo == "" {
		return nil
	}

	tracker, err := github.NewTracker(ctx, github.Config{Token: token, Repo: repo})
	if err != nil {
		logger.Warn("GitHub tracker unavailable: %v", err)
		return nil
	}
	return tracker
}

// buildSchedulerConfig assembles the scheduler configuration from the
// settings and the registered sites. Every site gets an audit task at
// the configured interval.
func buildSchedulerConfig(ctx context.Context, cfg driven.ConfigStore, sites driven.SiteStore) domain.SchedulerConfig {
	config := domain.SchedulerConfig{
		Enabled:     cfg.GetBool(domain.SettingSchedulerEnabled),
		TaskConfigs: make(map[string]domain.TaskConfig),
	}
	if !config.Enabled {
		return config
	}

	hours := cfg.GetInt(domain.SettingSchedulerInterval)
	if hours <= 0 {
		hours = 24
	}
	interval := time.Duration(hours) * time.Hour

	registered, err := sites.List(ctx)
	if err != nil {
		logger.Warn("Scheduler: failed to list sites: %v", err)
		return config
	}
	for i := range registered {
		config.TaskConfigs[domain.AuditTaskID(registered[i].ID)] = domain.TaskConfig{
			Enabled:  true,
			Interval: interval,
		}
	}

	return config
}
