// Package memory provides in-memory store implementations.
// Used by tests and as a fallback when SQLite is unavailable.
package memory

import (
	"context"
	"sync"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// Ensure SiteStore implements the interface.
var _ driven.SiteStore = (*SiteStore)(nil)

// SiteStore is an in-memory implementation of driven.SiteStore.
type SiteStore struct {
	mu    sync.RWMutex
	sites map[string]domain.Site
}

// NewSiteStore creates a new in-memory site store.
func NewSiteStore() *SiteStore {
	return &SiteStore{
		sites: make(map[string]domain.Site),
	}
}

// Save stores or updates a site.
func (s *SiteStore) Save(_ context.Context, site *domain.Site) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[site.ID] = *site
	return nil
}

// Get retrieves a site by ID.
func (s *SiteStore) Get(_ context.Context, id string) (*domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	site, ok := s.sites[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &site, nil
}

// List returns all registered sites.
func (s *SiteStore) List(_ context.Context) ([]domain.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Site, 0, len(s.sites))
	for _, site := range s.sites {
		result = append(result, site)
	}
	return result, nil
}

// Delete removes a site.
func (s *SiteStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sites, id)
	return nil
}
