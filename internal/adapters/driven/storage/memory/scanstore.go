package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// Ensure ScanStore implements the interface.
var _ driven.ScanStore = (*ScanStore)(nil)

// ScanStore is an in-memory implementation of driven.ScanStore.
type ScanStore struct {
	mu    sync.RWMutex
	scans map[string]domain.Scan
}

// NewScanStore creates a new in-memory scan store.
func NewScanStore() *ScanStore {
	return &ScanStore{
		scans: make(map[string]domain.Scan),
	}
}

// Save stores a completed scan.
func (s *ScanStore) Save(_ context.Context, scan *domain.Scan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans[scan.ID] = *scan
	return nil
}

// Get retrieves a scan by ID.
func (s *ScanStore) Get(_ context.Context, id string) (*domain.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scan, ok := s.scans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &scan, nil
}

// Latest returns the most recent scan for a site page.
func (s *ScanStore) Latest(_ context.Context, siteID, pageURL string) (*domain.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.Scan
	for _, scan := range s.scans {
		if scan.SiteID != siteID || scan.PageURL != pageURL {
			continue
		}
		if latest == nil || scan.StartedAt.After(latest.StartedAt) {
			found := scan
			latest = &found
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

// List returns scans for a site, most recent first.
func (s *ScanStore) List(_ context.Context, siteID string, limit int) ([]domain.Scan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Scan, 0)
	for _, scan := range s.scans {
		if scan.SiteID == siteID {
			result = append(result, scan)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartedAt.After(result[j].StartedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}

	return result, nil
}
