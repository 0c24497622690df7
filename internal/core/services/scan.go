package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
	"github.com/allylab/allylab-cli/internal/htmltext"
	"github.com/allylab/allylab-cli/internal/logger"
)

// Ensure ScanService implements the interface.
var _ driving.ScanService = (*ScanService)(nil)

// DefaultScanConcurrency bounds parallel page audits per scan.
const DefaultScanConcurrency = 4

// ScanService runs audits and correlates violations with finding
// history so the same issue keeps one identity across scans.
type ScanService struct {
	engine       driven.AuditEngine
	siteStore    driven.SiteStore
	scanStore    driven.ScanStore
	findingStore driven.FindingStore

	mu       sync.Mutex
	scanning map[string]bool // siteID -> scan in flight
}

// NewScanService creates a scan service.
func NewScanService(
	engine driven.AuditEngine,
	siteStore driven.SiteStore,
	scanStore driven.ScanStore,
	findingStore driven.FindingStore,
) *ScanService {
	return &ScanService{
		engine:       engine,
		siteStore:    siteStore,
		scanStore:    scanStore,
		findingStore: findingStore,
		scanning:     make(map[string]bool),
	}
}

// Scan audits the site's pages and persists one scan per page.
// Audits fan out concurrently; findings are reconciled sequentially in
// page order so pages never contend over shared finding history.
func (s *ScanService) Scan(
	ctx context.Context, siteID string, opts domain.ScanOptions,
) ([]domain.Scan, error) {
	if s.engine == nil {
		return nil, domain.ErrAuditUnavailable
	}

	site, err := s.siteStore.Get(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("get site %s: %w", siteID, err)
	}

	if !s.acquire(siteID) {
		return nil, domain.ErrScanInProgress
	}
	defer s.release(siteID)

	pages := opts.PageURLs
	fullSite := len(pages) == 0
	if fullSite {
		pages = site.PageURLs()
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultScanConcurrency
	}

	logger.Section("Scan Execution")
	logger.Info("Site: %s, pages: %d, concurrency: %d", site.DisplayName(), len(pages), concurrency)

	results := make([]*domain.AuditResult, len(pages))
	starts := make([]time.Time, len(pages))
	errs := make([]error, len(pages))
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for i, page := range pages {
		wg.Add(1)
		go func(i int, page string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			starts[i] = time.Now()
			result, err := s.engine.Audit(ctx, page)
			if err != nil {
				errs[i] = fmt.Errorf("scan %s: audit: %w", page, err)
				return
			}
			results[i] = result
		}(i, page)
	}
	wg.Wait()

	// Fingerprints observed on any page feed one shared set so the
	// resolution pass below sees the whole run, not a single page.
	seen := make(map[string]bool)
	scans := make([]domain.Scan, 0, len(pages))
	var firstErr error

	for i, page := range pages {
		if errs[i] == nil {
			scan, err := s.reconcilePage(ctx, site, page, starts[i], results[i], seen)
			if err == nil {
				scans = append(scans, *scan)
				continue
			}
			errs[i] = fmt.Errorf("scan %s: %w", page, err)
		}
		logger.Warn("Page scan failed: %v", errs[i])
		if firstErr == nil {
			firstErr = errs[i]
		}
	}

	// All pages failing is an error; partial failure degrades gracefully.
	if len(scans) == 0 && firstErr != nil {
		return nil, firstErr
	}

	// Open findings absent from this run are resolved, but only when
	// the whole site was audited and every page came back. A partial
	// run cannot tell a fixed issue from a page it never looked at.
	if fullSite && firstErr == nil {
		resolved, err := s.resolveAbsent(ctx, site.ID, seen)
		if err != nil {
			return nil, fmt.Errorf("resolve findings: %w", err)
		}
		scans[0].Summary.Resolved = resolved
	}

	for i := range scans {
		if err := s.scanStore.Save(ctx, &scans[i]); err != nil {
			return nil, fmt.Errorf("save scan %s: %w", scans[i].PageURL, err)
		}
	}

	return scans, nil
}

// History returns recent scans for a site, most recent first.
func (s *ScanService) History(ctx context.Context, siteID string, limit int) ([]domain.Scan, error) {
	if limit <= 0 {
		limit = 20
	}
	scans, err := s.scanStore.List(ctx, siteID, limit)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	return scans, nil
}

// reconcilePage turns one page's raw violations into findings, carrying
// identity over from previous scans by fingerprint. Every fingerprint
// observed on the page is added to runSeen for the run-level resolution
// pass. The returned scan is not yet persisted.
func (s *ScanService) reconcilePage(
	ctx context.Context, site *domain.Site, pageURL string,
	startedAt time.Time, result *domain.AuditResult, runSeen map[string]bool,
) (*domain.Scan, error) {
	logger.Debug("Page %s: %d violations", pageURL, len(result.Violations))

	scan := &domain.Scan{
		ID:        uuid.New().String(),
		SiteID:    site.ID,
		PageURL:   pageURL,
		Engine:    result.Engine,
		StartedAt: startedAt,
	}

	summary := domain.ScanSummary{
		CountsByImpact: make(map[domain.Impact]int),
	}

	pageSeen := make(map[string]bool)
	weighted := 0

	for _, v := range result.Violations {
		for _, node := range v.Nodes {
			fingerprint := domain.ComputeFingerprint(v.Rule, node.Selector, node.HTML)
			if pageSeen[fingerprint] {
				continue // Engine reported the same node twice.
			}
			pageSeen[fingerprint] = true
			runSeen[fingerprint] = true

			summary.Total++
			summary.CountsByImpact[v.Impact]++
			weighted += v.Impact.Weight()

			existing, err := s.findingStore.GetByFingerprint(ctx, site.ID, fingerprint)
			if err != nil && !isNotFound(err) {
				return nil, err
			}

			now := time.Now()
			if existing != nil {
				existing.ScanID = scan.ID
				existing.LastSeen = now
				if existing.Status == domain.FindingStatusResolved {
					// Regression: the issue came back.
					existing.Status = domain.FindingStatusOpen
					summary.New++
				} else {
					summary.Recurring++
				}
				if err := s.findingStore.Save(ctx, existing); err != nil {
					return nil, err
				}
				continue
			}

			summary.New++
			finding := &domain.Finding{
				ID:          uuid.New().String(),
				ScanID:      scan.ID,
				SiteID:      site.ID,
				Rule:        v.Rule,
				Impact:      v.Impact,
				Description: v.Description,
				HelpURL:     v.HelpURL,
				Selector:    node.Selector,
				HTML:        node.HTML,
				TextContent: htmltext.Extract(node.HTML),
				Fingerprint: fingerprint,
				Status:      domain.FindingStatusOpen,
				FirstSeen:   now,
				LastSeen:    now,
			}
			if err := s.findingStore.Save(ctx, finding); err != nil {
				return nil, err
			}
		}
	}

	summary.Score = pageScore(weighted)
	scan.CompletedAt = time.Now()
	scan.Summary = summary

	logger.Info("Page %s: score %d (%d new, %d recurring)",
		pageURL, summary.Score, summary.New, summary.Recurring)

	return scan, nil
}

// resolveAbsent marks open findings whose fingerprints were not
// observed anywhere in this run as resolved. Returns how many changed.
func (s *ScanService) resolveAbsent(ctx context.Context, siteID string, seen map[string]bool) (int, error) {
	open, err := s.findingStore.List(ctx, driven.FindingFilter{
		SiteID: siteID,
		Status: domain.FindingStatusOpen,
	})
	if err != nil {
		return 0, err
	}

	resolved := 0
	for i := range open {
		if seen[open[i].Fingerprint] {
			continue
		}
		open[i].Status = domain.FindingStatusResolved
		if err := s.findingStore.Save(ctx, &open[i]); err != nil {
			return resolved, err
		}
		resolved++
	}

	if resolved > 0 {
		logger.Info("Resolved %d finding(s) absent from this run", resolved)
	}

	return resolved, nil
}

// pageScore maps the impact-weighted violation total to a 0-100 score.
// Each weight point costs 2 points off a perfect score.
func pageScore(weighted int) int {
	score := 100 - weighted*2
	if score < 0 {
		return 0
	}
	return score
}

func (s *ScanService) acquire(siteID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scanning[siteID] {
		return false
	}
	s.scanning[siteID] = true
	return true
}

func (s *ScanService) release(siteID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scanning, siteID)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
