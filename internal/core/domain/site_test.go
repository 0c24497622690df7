package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSite_DisplayName tests name formatting
func TestSite_DisplayName(t *testing.T) {
	site := Site{Name: "Marketing", URL: "https://example.com"}
	assert.Equal(t, "Marketing - https://example.com", site.DisplayName())

	// URL already in the name is not appended again.
	site = Site{Name: "https://example.com (prod)", URL: "https://example.com"}
	assert.Equal(t, "https://example.com (prod)", site.DisplayName())
}

// TestSite_PageURLs tests page URL resolution
func TestSite_PageURLs(t *testing.T) {
	site := Site{
		URL:   "https://example.com/",
		Pages: []string{"/pricing", "docs"},
	}

	urls := site.PageURLs()
	assert.Equal(t, []string{
		"https://example.com/",
		"https://example.com/pricing",
		"https://example.com/docs",
	}, urls)
}

// TestSite_PageURLs_RootOnly tests a site without extra pages
func TestSite_PageURLs_RootOnly(t *testing.T) {
	site := Site{URL: "https://example.com"}
	assert.Equal(t, []string{"https://example.com"}, site.PageURLs())
}
