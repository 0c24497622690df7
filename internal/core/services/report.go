package services

import (
	"context"
	"fmt"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
	"github.com/allylab/allylab-cli/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService files tracker issues for findings.
type ReportService struct {
	findingStore driven.FindingStore
	siteStore    driven.SiteStore
	tracker      driven.IssueTracker
}

// NewReportService creates a report service.
// The tracker parameter is optional (can be nil); reporting returns
// domain.ErrTrackerUnavailable until one is configured.
func NewReportService(
	findingStore driven.FindingStore,
	siteStore driven.SiteStore,
	tracker driven.IssueTracker,
) *ReportService {
	return &ReportService{
		findingStore: findingStore,
		siteStore:    siteStore,
		tracker:      tracker,
	}
}

// Report files an issue for the finding and records the issue URL.
// Filing is idempotent per finding: a finding that already carries an
// issue URL is not filed twice.
func (s *ReportService) Report(ctx context.Context, findingID string) (string, error) {
	if s.tracker == nil {
		return "", domain.ErrTrackerUnavailable
	}

	finding, err := s.findingStore.Get(ctx, findingID)
	if err != nil {
		return "", fmt.Errorf("get finding %s: %w", findingID, err)
	}

	if finding.IssueURL != "" {
		return finding.IssueURL, domain.ErrAlreadyReported
	}

	site, err := s.siteStore.Get(ctx, finding.SiteID)
	if err != nil {
		return "", fmt.Errorf("get site %s: %w", finding.SiteID, err)
	}

	url, err := s.tracker.FileIssue(ctx, *finding, *site)
	if err != nil {
		return "", fmt.Errorf("file issue: %w", err)
	}

	finding.IssueURL = url
	if err := s.findingStore.Save(ctx, finding); err != nil {
		return "", fmt.Errorf("save finding: %w", err)
	}

	logger.Info("Filed issue for %s: %s", finding.Rule, url)

	return url, nil
}

// ReportOpen files issues for every unreported open finding of a site.
// Already-reported findings are skipped; individual failures stop the
// run so rate limits are respected.
func (s *ReportService) ReportOpen(ctx context.Context, siteID string) ([]string, error) {
	if s.tracker == nil {
		return nil, domain.ErrTrackerUnavailable
	}

	findings, err := s.findingStore.List(ctx, driven.FindingFilter{
		SiteID: siteID,
		Status: domain.FindingStatusOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("list findings: %w", err)
	}

	var urls []string
	for i := range findings {
		if findings[i].IssueURL != "" {
			continue
		}
		url, err := s.Report(ctx, findings[i].ID)
		if err != nil {
			return urls, err
		}
		urls = append(urls, url)
	}

	logger.Info("Filed %d issues for site %s", len(urls), siteID)

	return urls, nil
}
