package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allylab/allylab-cli/internal/core/domain"
)

// newTestTracker points a tracker at a stub API server.
func newTestTracker(t *testing.T, handler http.Handler) *Tracker {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tracker, err := NewTracker(context.Background(), Config{
		Token:   "ghp_test",
		Repo:    "acme/shop",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return tracker
}

// TestNewTracker_Validation tests config validation
func TestNewTracker_Validation(t *testing.T) {
	_, err := NewTracker(context.Background(), Config{Repo: "acme/shop"})
	assert.Error(t, err)

	_, err = NewTracker(context.Background(), Config{Token: "ghp_x", Repo: "not-a-repo"})
	assert.Error(t, err)

	tracker, err := NewTracker(context.Background(), Config{Token: "ghp_x", Repo: "acme/shop"})
	require.NoError(t, err)
	assert.Equal(t, "acme", tracker.owner)
	assert.Equal(t, "shop", tracker.repo)
}

// TestTracker_FileIssue tests issue creation payload and URL return
func TestTracker_FileIssue(t *testing.T) {
	var gotBody map[string]any
	tracker := newTestTracker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/repos/acme/shop/issues", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"number": 42, "html_url": "https://github.com/acme/shop/issues/42"}`)) //nolint:errcheck
	}))

	finding := domain.Finding{
		ID:          "f-1",
		Rule:        "button-name",
		Impact:      domain.ImpactCritical,
		Description: "Buttons must have discernible text",
		HelpURL:     "https://dequeuniversity.com/rules/axe/4.10/button-name",
		Selector:    "#checkout > button",
		HTML:        `<button class="icon-btn"><svg/></button>`,
		Fingerprint: "abc123",
		FirstSeen:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	site := domain.Site{Name: "Shop", URL: "https://shop.example.com"}

	url, err := tracker.FileIssue(context.Background(), finding, site)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/shop/issues/42", url)

	assert.Equal(t, "[a11y] critical: button-name on Shop", gotBody["title"])

	body, _ := gotBody["body"].(string)
	assert.Contains(t, body, "button-name")
	assert.Contains(t, body, "#checkout > button")
	assert.Contains(t, body, "icon-btn")
	assert.Contains(t, body, "abc123")

	labels, _ := gotBody["labels"].([]any)
	assert.Contains(t, labels, "accessibility")
	assert.Contains(t, labels, "critical")
}

// TestTracker_FileIssueNotFound tests 404 mapping
func TestTracker_FileIssueNotFound(t *testing.T) {
	tracker := newTestTracker(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`)) //nolint:errcheck
	}))

	_, err := tracker.FileIssue(context.Background(), domain.Finding{}, domain.Site{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestTracker_Ping tests the repository reachability check
func TestTracker_Ping(t *testing.T) {
	tracker := newTestTracker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/acme/shop", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "full_name": "acme/shop"}`)) //nolint:errcheck
	}))

	assert.NoError(t, tracker.Ping(context.Background()))
}

// TestRateLimiter_UpdateFromResponse tests header parsing
func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	rl := NewRateLimiter()

	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "4200")
	resp.Header.Set(HeaderRateLimit, "5000")
	resp.Header.Set(HeaderRateReset, "1767225600")

	rl.UpdateFromResponse(resp)

	assert.Equal(t, 4200, rl.Remaining())
	assert.Equal(t, 5000, rl.Limit())
	assert.Equal(t, time.Unix(1767225600, 0), rl.ResetTime())
}

// TestRateLimiter_WaitRespectsContext tests cancellation during backoff
func TestRateLimiter_WaitRespectsContext(t *testing.T) {
	rl := NewRateLimiter()
	rl.remaining = 0
	rl.resetTime = time.Now().Add(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
