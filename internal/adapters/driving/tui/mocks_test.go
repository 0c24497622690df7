package tui

import (
	"context"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// MockSiteService is a mock implementation of driving.SiteService.
type MockSiteService struct {
	Sites []domain.Site
	Err   error
}

func (m *MockSiteService) Add(_ context.Context, site domain.Site) (*domain.Site, error) {
	return &site, m.Err
}

func (m *MockSiteService) Get(_ context.Context, _ string) (*domain.Site, error) {
	if len(m.Sites) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.Sites[0], m.Err
}

func (m *MockSiteService) List(_ context.Context) ([]domain.Site, error) {
	return m.Sites, m.Err
}

func (m *MockSiteService) Remove(_ context.Context, _ string) error {
	return m.Err
}

// MockScanService is a mock implementation of driving.ScanService.
type MockScanService struct {
	Scans []domain.Scan
	Err   error
}

func (m *MockScanService) Scan(_ context.Context, _ string, _ domain.ScanOptions) ([]domain.Scan, error) {
	return m.Scans, m.Err
}

func (m *MockScanService) History(_ context.Context, _ string, _ int) ([]domain.Scan, error) {
	return m.Scans, m.Err
}

// MockFindingService is a mock implementation of driving.FindingService.
type MockFindingService struct {
	FindingsList []domain.Finding
	Ranked       []domain.RankedFile
	Err          error
}

func (m *MockFindingService) List(_ context.Context, _ driven.FindingFilter) ([]domain.Finding, error) {
	return m.FindingsList, m.Err
}

func (m *MockFindingService) Get(_ context.Context, _ string) (*domain.Finding, error) {
	if len(m.FindingsList) == 0 {
		return nil, domain.ErrNotFound
	}
	return &m.FindingsList[0], m.Err
}

func (m *MockFindingService) Locate(_ context.Context, _ string) ([]domain.RankedFile, error) {
	return m.Ranked, m.Err
}

func (m *MockFindingService) Resolve(_ context.Context, _ string) error {
	return m.Err
}

// MockFixService is a mock implementation of driving.FixService.
type MockFixService struct {
	Suggestion *domain.FixSuggestion
	Err        error
}

func (m *MockFixService) SuggestFix(_ context.Context, _ string) (*domain.FixSuggestion, error) {
	return m.Suggestion, m.Err
}

// MockReportService is a mock implementation of driving.ReportService.
type MockReportService struct {
	URL  string
	URLs []string
	Err  error
}

func (m *MockReportService) Report(_ context.Context, _ string) (string, error) {
	return m.URL, m.Err
}

func (m *MockReportService) ReportOpen(_ context.Context, _ string) ([]string, error) {
	return m.URLs, m.Err
}
