// Package axe provides an audit engine adapter backed by an external
// axe-core runner service.
package axe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.AuditEngine = (*Engine)(nil)

// Default configuration values.
const (
	DefaultEndpoint = "http://localhost:9001"
	DefaultTimeout  = 90 * time.Second
)

// Config holds configuration for the axe runner engine.
type Config struct {
	// Endpoint is the base URL of the axe runner service
	// (default: http://localhost:9001).
	Endpoint string

	// Timeout is the per-audit request timeout (default: 90s).
	// Page load plus rule evaluation can take a while on heavy pages.
	Timeout time.Duration
}

// Engine runs accessibility audits through an external axe-core runner.
// The runner loads the page in a headless browser, evaluates the axe
// rule set and returns the raw violation report.
type Engine struct {
	client   *http.Client
	endpoint string
}

// scanRequest is the runner /scan request format.
type scanRequest struct {
	URL string `json:"url"`
}

// scanResponse is the runner /scan response format, mirroring the
// axe-core results object.
type scanResponse struct {
	TestEngine struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"testEngine"`
	Violations []struct {
		ID          string `json:"id"`
		Impact      string `json:"impact"`
		Description string `json:"description"`
		HelpURL     string `json:"helpUrl"`
		Nodes       []struct {
			Target []string `json:"target"`
			HTML   string   `json:"html"`
		} `json:"nodes"`
	} `json:"violations"`
	Error string `json:"error,omitempty"`
}

// NewEngine creates a new axe runner engine.
func NewEngine(cfg Config) *Engine {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Engine{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
	}
}

// Audit loads the page through the runner and returns the raw violations.
func (e *Engine) Audit(ctx context.Context, pageURL string) (*domain.AuditResult, error) {
	if pageURL == "" {
		return nil, domain.ErrInvalidInput
	}

	jsonBody, err := json.Marshal(scanRequest{URL: pageURL})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/scan", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuditUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var scanResp scanResponse
	if err := json.Unmarshal(body, &scanResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if scanResp.Error != "" {
		return nil, fmt.Errorf("axe runner error: %s", scanResp.Error)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("axe runner error (status %d): %s", resp.StatusCode, string(body))
	}

	return e.toResult(pageURL, &scanResp), nil
}

// toResult converts the raw runner response into a domain result.
func (e *Engine) toResult(pageURL string, resp *scanResponse) *domain.AuditResult {
	engine := resp.TestEngine.Name
	if resp.TestEngine.Version != "" {
		engine += "/" + resp.TestEngine.Version
	}

	result := &domain.AuditResult{
		PageURL:    pageURL,
		Engine:     engine,
		Violations: make([]domain.Violation, 0, len(resp.Violations)),
	}

	for _, v := range resp.Violations {
		impact := domain.Impact(v.Impact)
		if !impact.IsValid() {
			// Rules without an impact rating default to minor.
			impact = domain.ImpactMinor
		}

		violation := domain.Violation{
			Rule:        v.ID,
			Impact:      impact,
			Description: v.Description,
			HelpURL:     v.HelpURL,
			Nodes:       make([]domain.ViolationNode, 0, len(v.Nodes)),
		}
		for _, n := range v.Nodes {
			violation.Nodes = append(violation.Nodes, domain.ViolationNode{
				Selector: strings.Join(n.Target, " "),
				HTML:     n.HTML,
			})
		}
		result.Violations = append(result.Violations, violation)
	}

	return result
}

// Ping validates the runner is reachable via its health endpoint.
func (e *Engine) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.endpoint+"/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("axe: failed to create ping request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuditUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("axe: runner returned status %d", resp.StatusCode)
	}
	return nil
}
