package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
)

// Ensure SiteService implements the interface.
var _ driving.SiteService = (*SiteService)(nil)

// SiteService manages monitored sites.
type SiteService struct {
	store driven.SiteStore
}

// NewSiteService creates a site service.
func NewSiteService(store driven.SiteStore) *SiteService {
	return &SiteService{store: store}
}

// Add registers a new site. The URL is required; the name defaults to
// the URL when empty.
func (s *SiteService) Add(ctx context.Context, site domain.Site) (*domain.Site, error) {
	site.URL = strings.TrimSpace(site.URL)
	if site.URL == "" {
		return nil, fmt.Errorf("%w: site URL is required", domain.ErrInvalidInput)
	}
	if !strings.HasPrefix(site.URL, "http://") && !strings.HasPrefix(site.URL, "https://") {
		return nil, fmt.Errorf("%w: site URL must be http(s)", domain.ErrInvalidInput)
	}

	if site.Name == "" {
		site.Name = site.URL
	}

	site.ID = uuid.New().String()
	site.CreatedAt = time.Now()
	site.UpdatedAt = site.CreatedAt

	if err := s.store.Save(ctx, &site); err != nil {
		return nil, fmt.Errorf("save site: %w", err)
	}

	return &site, nil
}

// Get retrieves a site by ID.
func (s *SiteService) Get(ctx context.Context, id string) (*domain.Site, error) {
	site, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get site %s: %w", id, err)
	}
	return site, nil
}

// List returns all registered sites.
func (s *SiteService) List(ctx context.Context) ([]domain.Site, error) {
	sites, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

// Remove deletes a site.
func (s *SiteService) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete site %s: %w", id, err)
	}
	return nil
}
