package services

import (
	"context"
	"fmt"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
	"github.com/allylab/allylab-cli/internal/logger"
)

// Ensure FindingService implements the interface.
var _ driving.FindingService = (*FindingService)(nil)

// DefaultSearchLimit bounds how many candidate files the code searcher
// returns for one finding.
const DefaultSearchLimit = 10

// FindingService manages findings and locates the source behind them.
type FindingService struct {
	findingStore driven.FindingStore
	siteStore    driven.SiteStore
	searcher     driven.CodeSearcher
	matcher      driving.MatchService
}

// NewFindingService creates a finding service.
// The searcher parameter is optional (can be nil); Locate degrades to
// an error while listing keeps working.
func NewFindingService(
	findingStore driven.FindingStore,
	siteStore driven.SiteStore,
	searcher driven.CodeSearcher,
	matcher driving.MatchService,
) *FindingService {
	return &FindingService{
		findingStore: findingStore,
		siteStore:    siteStore,
		searcher:     searcher,
		matcher:      matcher,
	}
}

// List returns findings matching the filter.
func (s *FindingService) List(ctx context.Context, filter driven.FindingFilter) ([]domain.Finding, error) {
	findings, err := s.findingStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list findings: %w", err)
	}
	return findings, nil
}

// Get retrieves a finding by ID.
func (s *FindingService) Get(ctx context.Context, id string) (*domain.Finding, error) {
	finding, err := s.findingStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get finding %s: %w", id, err)
	}
	return finding, nil
}

// Locate searches the site's source checkout for the finding's HTML
// fragment and ranks the candidates by confidence.
func (s *FindingService) Locate(ctx context.Context, findingID string) ([]domain.RankedFile, error) {
	if s.searcher == nil {
		return nil, domain.ErrSearcherUnavailable
	}

	finding, err := s.findingStore.Get(ctx, findingID)
	if err != nil {
		return nil, fmt.Errorf("get finding %s: %w", findingID, err)
	}

	site, err := s.siteStore.Get(ctx, finding.SiteID)
	if err != nil {
		return nil, fmt.Errorf("get site %s: %w", finding.SiteID, err)
	}
	if site.ProjectDir == "" {
		return nil, domain.ErrNoProjectDir
	}

	logger.Section("Source Location")
	logger.Debug("Finding %s (%s), project dir: %s", finding.ID, finding.Rule, site.ProjectDir)

	hits, err := s.searcher.Search(ctx, site.ProjectDir, finding.HTML, DefaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("code search: %w", err)
	}

	logger.Debug("Raw hits: %d", len(hits))

	ranked, err := s.matcher.RankSearchResults(hits, finding.HTML, finding.TextContent)
	if err != nil {
		return nil, fmt.Errorf("rank results: %w", err)
	}

	return ranked, nil
}

// Resolve marks a finding as resolved.
func (s *FindingService) Resolve(ctx context.Context, id string) error {
	finding, err := s.findingStore.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get finding %s: %w", id, err)
	}

	if finding.Status == domain.FindingStatusResolved {
		return nil // Already resolved.
	}

	finding.Status = domain.FindingStatusResolved
	if err := s.findingStore.Save(ctx, finding); err != nil {
		return fmt.Errorf("save finding: %w", err)
	}

	return nil
}
