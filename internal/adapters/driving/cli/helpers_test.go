package cli

import (
	"context"
	"errors"
	"time"

	"github.com/allylab/allylab-cli/internal/adapters/driven/storage/memory"
	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// setupTestServices installs mock services and returns a cleanup that
// restores the previous ones.
func setupTestServices() func() {
	oldScan := scanService
	oldFinding := findingService
	oldFix := fixService
	oldReport := reportService
	oldSite := siteService
	oldConfig := configStore

	scanService = &mockScanService{}
	findingService = &mockFindingService{}
	fixService = &mockFixService{}
	reportService = &mockReportService{}
	siteService = &mockSiteService{}
	configStore = memory.NewConfigStore()

	return func() {
		scanService = oldScan
		findingService = oldFinding
		fixService = oldFix
		reportService = oldReport
		siteService = oldSite
		configStore = oldConfig
	}
}

var testFinding = domain.Finding{
	ID:          "fn-1",
	SiteID:      "st-1",
	Rule:        "button-name",
	Impact:      domain.ImpactCritical,
	Description: "Buttons must have discernible text",
	Selector:    "#checkout > button",
	HTML:        `<button class="icon-btn"><svg/></button>`,
	Fingerprint: "abc123",
	Status:      domain.FindingStatusOpen,
	FirstSeen:   time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	LastSeen:    time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
}

type mockScanService struct{}

func (m *mockScanService) Scan(_ context.Context, siteID string, _ domain.ScanOptions) ([]domain.Scan, error) {
	return []domain.Scan{{
		ID:      "sc-1",
		SiteID:  siteID,
		PageURL: "https://shop.example.com",
		Engine:  "axe-core/4.10.2",
		Summary: domain.ScanSummary{
			Total: 2, New: 1, Recurring: 1, Score: 88,
			CountsByImpact: map[domain.Impact]int{domain.ImpactCritical: 1, domain.ImpactMinor: 1},
		},
	}}, nil
}

func (m *mockScanService) History(_ context.Context, siteID string, _ int) ([]domain.Scan, error) {
	return []domain.Scan{{ID: "sc-1", SiteID: siteID, PageURL: "https://shop.example.com",
		Summary: domain.ScanSummary{Total: 2, Score: 88}}}, nil
}

type mockFindingService struct{}

func (m *mockFindingService) List(_ context.Context, _ driven.FindingFilter) ([]domain.Finding, error) {
	return []domain.Finding{testFinding}, nil
}

func (m *mockFindingService) Get(_ context.Context, id string) (*domain.Finding, error) {
	if id != testFinding.ID {
		return nil, domain.ErrNotFound
	}
	f := testFinding
	return &f, nil
}

func (m *mockFindingService) Locate(_ context.Context, _ string) ([]domain.RankedFile, error) {
	return []domain.RankedFile{
		{
			Path:        "src/components/Checkout.tsx",
			Confidence:  domain.MatchConfidence{Score: 0.91, Level: domain.ConfidenceHigh},
			IsBestMatch: true,
		},
		{
			Path:       "src/components/Cart.tsx",
			Confidence: domain.MatchConfidence{Score: 0.32, Level: domain.ConfidenceLow},
		},
	}, nil
}

func (m *mockFindingService) Resolve(_ context.Context, _ string) error {
	return nil
}

type mockFixService struct{}

func (m *mockFixService) SuggestFix(_ context.Context, findingID string) (*domain.FixSuggestion, error) {
	return &domain.FixSuggestion{
		FindingID:   findingID,
		FilePath:    "src/components/Checkout.tsx",
		Patch:       `<button aria-label="Checkout"><svg/></button>`,
		Explanation: "An accessible name makes the control announceable.",
		Model:       "gpt-4o-mini",
	}, nil
}

type mockReportService struct{}

func (m *mockReportService) Report(_ context.Context, _ string) (string, error) {
	return "https://github.com/acme/shop/issues/42", nil
}

func (m *mockReportService) ReportOpen(_ context.Context, _ string) ([]string, error) {
	return []string{"https://github.com/acme/shop/issues/42"}, nil
}

type mockSiteService struct{}

func (m *mockSiteService) Add(_ context.Context, site domain.Site) (*domain.Site, error) {
	site.ID = "st-1"
	return &site, nil
}

func (m *mockSiteService) Get(_ context.Context, id string) (*domain.Site, error) {
	return &domain.Site{ID: id, Name: "Shop", URL: "https://shop.example.com"}, nil
}

func (m *mockSiteService) List(_ context.Context) ([]domain.Site, error) {
	return []domain.Site{{ID: "st-1", Name: "Shop", URL: "https://shop.example.com", ProjectDir: "/src/shop"}}, nil
}

func (m *mockSiteService) Remove(_ context.Context, _ string) error {
	return nil
}

// errScanService fails every call, for error-path tests.
type errScanService struct{}

func (e *errScanService) Scan(_ context.Context, _ string, _ domain.ScanOptions) ([]domain.Scan, error) {
	return nil, errors.New("engine exploded")
}

func (e *errScanService) History(_ context.Context, _ string, _ int) ([]domain.Scan, error) {
	return nil, errors.New("engine exploded")
}
