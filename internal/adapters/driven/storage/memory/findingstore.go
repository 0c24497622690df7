package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// Ensure FindingStore implements the interface.
var _ driven.FindingStore = (*FindingStore)(nil)

// FindingStore is an in-memory implementation of driven.FindingStore.
type FindingStore struct {
	mu       sync.RWMutex
	findings map[string]domain.Finding
}

// NewFindingStore creates a new in-memory finding store.
func NewFindingStore() *FindingStore {
	return &FindingStore{
		findings: make(map[string]domain.Finding),
	}
}

// Save stores or updates a finding.
func (s *FindingStore) Save(_ context.Context, f *domain.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findings[f.ID] = *f
	return nil
}

// Get retrieves a finding by ID.
func (s *FindingStore) Get(_ context.Context, id string) (*domain.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.findings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

// GetByFingerprint retrieves a site's finding by fingerprint.
func (s *FindingStore) GetByFingerprint(_ context.Context, siteID, fingerprint string) (*domain.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.findings {
		if f.SiteID == siteID && f.Fingerprint == fingerprint {
			found := f
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns findings matching the filter, most recently seen first.
func (s *FindingStore) List(_ context.Context, filter driven.FindingFilter) ([]domain.Finding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Finding, 0)
	for _, f := range s.findings {
		if filter.SiteID != "" && f.SiteID != filter.SiteID {
			continue
		}
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		if filter.Impact != "" && f.Impact != filter.Impact {
			continue
		}
		if filter.Rule != "" && f.Rule != filter.Rule {
			continue
		}
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].LastSeen.After(result[j].LastSeen)
	})

	return result, nil
}

// Delete removes a finding.
func (s *FindingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.findings, id)
	return nil
}
