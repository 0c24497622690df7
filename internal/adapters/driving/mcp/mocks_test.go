package mcp

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// mockFindingService is a mock implementation of driving.FindingService.
type mockFindingService struct {
	findings []domain.Finding
	finding  *domain.Finding
	ranked   []domain.RankedFile
	err      error
}

func (m *mockFindingService) List(_ context.Context, _ driven.FindingFilter) ([]domain.Finding, error) {
	return m.findings, m.err
}

func (m *mockFindingService) Get(_ context.Context, _ string) (*domain.Finding, error) {
	return m.finding, m.err
}

func (m *mockFindingService) Locate(_ context.Context, _ string) ([]domain.RankedFile, error) {
	return m.ranked, m.err
}

func (m *mockFindingService) Resolve(_ context.Context, _ string) error {
	return m.err
}

// mockScanService is a mock implementation of driving.ScanService.
type mockScanService struct {
	scans []domain.Scan
	err   error
}

func (m *mockScanService) Scan(_ context.Context, _ string, _ domain.ScanOptions) ([]domain.Scan, error) {
	return m.scans, m.err
}

func (m *mockScanService) History(_ context.Context, _ string, _ int) ([]domain.Scan, error) {
	return m.scans, m.err
}

// mockFixService is a mock implementation of driving.FixService.
type mockFixService struct {
	suggestion *domain.FixSuggestion
	err        error
}

func (m *mockFixService) SuggestFix(_ context.Context, _ string) (*domain.FixSuggestion, error) {
	return m.suggestion, m.err
}

// mockSiteService is a mock implementation of driving.SiteService.
type mockSiteService struct {
	sites []domain.Site
	site  *domain.Site
	err   error
}

func (m *mockSiteService) Add(_ context.Context, site domain.Site) (*domain.Site, error) {
	return &site, m.err
}

func (m *mockSiteService) Get(_ context.Context, _ string) (*domain.Site, error) {
	return m.site, m.err
}

func (m *mockSiteService) List(_ context.Context) ([]domain.Site, error) {
	return m.sites, m.err
}

func (m *mockSiteService) Remove(_ context.Context, _ string) error {
	return m.err
}
