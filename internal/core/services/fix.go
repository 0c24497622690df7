package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
	"github.com/allylab/allylab-cli/internal/logger"
)

// Ensure FixService implements the interface.
var _ driving.FixService = (*FixService)(nil)

// MaxSourceContext caps how much of the located file is sent to the LLM.
const MaxSourceContext = 8 * 1024

// FixService generates AI-assisted remediations for findings.
type FixService struct {
	findingStore driven.FindingStore
	siteStore    driven.SiteStore
	findings     driving.FindingService
	llm          driven.LLMService
}

// NewFixService creates a fix service.
// The llm parameter is optional (can be nil); SuggestFix returns
// domain.ErrLLMUnavailable until one is configured.
func NewFixService(
	findingStore driven.FindingStore,
	siteStore driven.SiteStore,
	findings driving.FindingService,
	llm driven.LLMService,
) *FixService {
	return &FixService{
		findingStore: findingStore,
		siteStore:    siteStore,
		findings:     findings,
		llm:          llm,
	}
}

// SuggestFix locates the best-match source file for the finding and
// asks the LLM for a patch grounded in that file's content.
func (s *FixService) SuggestFix(ctx context.Context, findingID string) (*domain.FixSuggestion, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	finding, err := s.findingStore.Get(ctx, findingID)
	if err != nil {
		return nil, fmt.Errorf("get finding %s: %w", findingID, err)
	}

	ranked, err := s.findings.Locate(ctx, findingID)
	if err != nil {
		return nil, fmt.Errorf("locate source: %w", err)
	}

	req := driven.FixRequest{Finding: *finding}
	if len(ranked) > 0 && ranked[0].IsBestMatch {
		req.FilePath = ranked[0].Path
		req.SourceContext = s.sourceContext(ctx, finding.SiteID, ranked[0])
		logger.Info("Fix context: %s (%s confidence)", req.FilePath, ranked[0].Confidence.Level)
	} else {
		logger.Warn("No confident source match; suggesting fix from the fragment alone")
	}

	suggestion, err := s.llm.SuggestFix(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("suggest fix: %w", err)
	}

	return suggestion, nil
}

// sourceContext reads the located file, trimmed to MaxSourceContext
// around the fragment when the file is large. Falls back to the hit's
// preview when the file cannot be read.
func (s *FixService) sourceContext(ctx context.Context, siteID string, match domain.RankedFile) string {
	site, err := s.siteStore.Get(ctx, siteID)
	if err != nil || site.ProjectDir == "" {
		return match.Preview
	}

	path := match.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(site.ProjectDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Read %s failed: %v", path, err)
		return match.Preview
	}

	content := string(data)
	if len(content) <= MaxSourceContext {
		return content
	}

	// Centre the window on the preview text when we can find it.
	centre := 0
	if match.Preview != "" {
		if idx := strings.Index(content, strings.TrimSpace(match.Preview)); idx >= 0 {
			centre = idx
		}
	}

	start := centre - MaxSourceContext/2
	if start < 0 {
		start = 0
	}
	end := start + MaxSourceContext
	if end > len(content) {
		end = len(content)
	}

	return content[start:end]
}
