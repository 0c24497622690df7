// Package github provides an issue tracker adapter backed by the
// GitHub Issues API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// Ensure Tracker implements the interface.
var _ driven.IssueTracker = (*Tracker)(nil)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// defaultLabel is attached to every filed issue.
const defaultLabel = "accessibility"

// Config holds configuration for the GitHub tracker.
type Config struct {
	// Token is the access token (PAT or OAuth) used for API calls.
	Token string

	// Repo is the target repository in "owner/name" form.
	Repo string

	// Labels are extra labels attached to filed issues, in addition to
	// the accessibility label and the finding's impact.
	Labels []string

	// BaseURL overrides the API base URL, for GitHub Enterprise.
	BaseURL string
}

// Tracker files finding issues against a GitHub repository.
type Tracker struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
	owner       string
	repo        string
	labels      []string
}

// NewTracker creates a GitHub issue tracker.
func NewTracker(ctx context.Context, cfg Config) (*Tracker, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("github: token is required")
	}

	owner, repo, ok := strings.Cut(cfg.Repo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("github: repo must be in owner/name form, got %q", cfg.Repo)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.Token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	client := gh.NewClient(tc)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: invalid base URL: %w", err)
		}
		client.BaseURL = base
	}

	return &Tracker{
		gh:          client,
		rateLimiter: NewRateLimiter(),
		owner:       owner,
		repo:        repo,
		labels:      cfg.Labels,
	}, nil
}

// FileIssue creates an issue for the finding and returns its HTML URL.
func (t *Tracker) FileIssue(ctx context.Context, finding domain.Finding, site domain.Site) (string, error) {
	if err := t.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	labels := make([]string, 0, len(t.labels)+2)
	labels = append(labels, defaultLabel, string(finding.Impact))
	labels = append(labels, t.labels...)

	req := &gh.IssueRequest{
		Title:  gh.Ptr(issueTitle(finding, site)),
		Body:   gh.Ptr(issueBody(finding, site)),
		Labels: &labels,
	}

	issue, resp, err := t.gh.Issues.Create(ctx, t.owner, t.repo, req)
	if err != nil {
		return "", t.wrapError(err, "create issue")
	}

	t.updateRateLimitFromResponse(resp)

	return issue.GetHTMLURL(), nil
}

// Ping validates the repository is reachable with the configured token.
func (t *Tracker) Ping(ctx context.Context) error {
	if err := t.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	_, resp, err := t.gh.Repositories.Get(ctx, t.owner, t.repo)
	if err != nil {
		return t.wrapError(err, "get repo")
	}

	t.updateRateLimitFromResponse(resp)
	return nil
}

// RateLimiter returns the rate limiter for external access.
func (t *Tracker) RateLimiter() *RateLimiter {
	return t.rateLimiter
}

// issueTitle builds a stable, scannable issue title.
func issueTitle(finding domain.Finding, site domain.Site) string {
	return fmt.Sprintf("[a11y] %s: %s on %s", finding.Impact, finding.Rule, site.Name)
}

// issueBody renders the finding as issue markdown.
func issueBody(finding domain.Finding, site domain.Site) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Rule:** `%s` (%s impact)\n\n", finding.Rule, finding.Impact)
	if finding.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", finding.Description)
	}
	fmt.Fprintf(&b, "**Site:** %s\n", site.URL)
	fmt.Fprintf(&b, "**Selector:** `%s`\n\n", finding.Selector)
	fmt.Fprintf(&b, "**Offending HTML:**\n\n```html\n%s\n```\n\n", finding.HTML)
	if finding.HelpURL != "" {
		fmt.Fprintf(&b, "[Remediation guidance](%s)\n\n", finding.HelpURL)
	}
	fmt.Fprintf(&b, "<sub>First seen %s · fingerprint `%s`</sub>\n",
		finding.FirstSeen.Format("2006-01-02"), finding.Fingerprint)

	return b.String()
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (t *Tracker) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	t.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to domain error types.
func (t *Tracker) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &rateLimitErr) || errors.As(err, &abuseErr) {
		return fmt.Errorf("%w: resets at %s", domain.ErrRateLimited,
			t.rateLimiter.ResetTime().Format(time.RFC3339))
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == 404 {
		return fmt.Errorf("%w: %s/%s", domain.ErrNotFound, t.owner, t.repo)
	}

	return fmt.Errorf("%s: %w", operation, err)
}
