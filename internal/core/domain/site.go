package domain

import (
	"fmt"
	"strings"
	"time"
)

// Site represents a monitored web target.
// Each site pairs a live URL with the source checkout used to locate
// the code behind detected findings.
type Site struct {
	// ID is the unique identifier for the site.
	ID string

	// Name is the human-readable name for this site.
	Name string

	// URL is the root URL scans run against.
	URL string

	// ProjectDir is the local source checkout searched when locating
	// the file behind a finding. Empty disables source location.
	ProjectDir string

	// Pages are additional page paths to audit beyond the root URL.
	Pages []string

	// CreatedAt is when the site was registered.
	CreatedAt time.Time

	// UpdatedAt is when the site was last updated.
	UpdatedAt time.Time
}

// DisplayName returns the site name with its URL when the URL is not
// already part of the name. Used in CLI/TUI listings.
func (s *Site) DisplayName() string {
	if s.URL != "" && !strings.Contains(s.Name, s.URL) {
		return fmt.Sprintf("%s - %s", s.Name, s.URL)
	}
	return s.Name
}

// PageURLs returns the full set of URLs to audit: the root URL
// followed by each configured page path resolved against it.
func (s *Site) PageURLs() []string {
	urls := make([]string, 0, len(s.Pages)+1)
	urls = append(urls, s.URL)
	base := strings.TrimRight(s.URL, "/")
	for _, p := range s.Pages {
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		urls = append(urls, base+p)
	}
	return urls
}
