// Package htmltext extracts the visible text of an HTML fragment.
// The result feeds the confidence scorer as a secondary similarity
// signal alongside the raw fragment.
package htmltext

import (
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for fragment parsing performance.
var (
	scriptTag    = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag     = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	svgTag       = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	brTags       = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Extract returns the visible text of an HTML fragment with tags
// stripped, entities decoded and whitespace collapsed to single
// spaces. An element with no visible text yields the empty string.
func Extract(fragment string) string {
	if fragment == "" {
		return ""
	}

	// Remove content that never renders as text.
	text := scriptTag.ReplaceAllString(fragment, "")
	text = styleTag.ReplaceAllString(text, "")
	text = svgTag.ReplaceAllString(text, "")
	text = htmlComments.ReplaceAllString(text, "")

	// Line breaks become spaces in a single-element fragment.
	text = brTags.ReplaceAllString(text, " ")

	// Strip all remaining tags and decode entities.
	text = allTags.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)

	// Collapse whitespace.
	text = whitespace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}
