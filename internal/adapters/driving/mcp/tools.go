package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/allylab/allylab-cli/internal/core/domain"
	"github.com/allylab/allylab-cli/internal/core/ports/driven"
)

// RunScanInput is the input schema for the run-scan tool.
type RunScanInput struct {
	SiteID string `json:"site_id" jsonschema:"the ID of the site to audit"`
}

// RunScanOutput is the output schema for the run-scan tool.
type RunScanOutput struct {
	Pages []PageScanOutput `json:"pages"`
}

// PageScanOutput summarises one audited page.
type PageScanOutput struct {
	PageURL   string `json:"page_url"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	New       int    `json:"new"`
	Recurring int    `json:"recurring"`
	Resolved  int    `json:"resolved"`
}

// ListFindingsInput is the input schema for the list-findings tool.
type ListFindingsInput struct {
	SiteID string `json:"site_id,omitempty" jsonschema:"filter by site ID"`
	Status string `json:"status,omitempty" jsonschema:"filter by status (open, resolved)"`
	Impact string `json:"impact,omitempty" jsonschema:"filter by impact (minor, moderate, serious, critical)"`
}

// ListFindingsOutput is the output schema for the list-findings tool.
type ListFindingsOutput struct {
	Findings []FindingOutput `json:"findings"`
	Count    int             `json:"count"`
}

// FindingOutput represents a single finding.
type FindingOutput struct {
	ID          string `json:"id"`
	SiteID      string `json:"site_id"`
	Rule        string `json:"rule"`
	Impact      string `json:"impact"`
	Description string `json:"description,omitempty"`
	Selector    string `json:"selector"`
	HTML        string `json:"html"`
	Status      string `json:"status"`
	IssueURL    string `json:"issue_url,omitempty"`
}

// LocateSourceInput is the input schema for the locate-source tool.
type LocateSourceInput struct {
	FindingID string `json:"finding_id" jsonschema:"the ID of the finding to locate in source code"`
}

// LocateSourceOutput is the output schema for the locate-source tool.
type LocateSourceOutput struct {
	Candidates []RankedFileOutput `json:"candidates"`
}

// RankedFileOutput represents one ranked source candidate.
type RankedFileOutput struct {
	Path        string  `json:"path"`
	Score       float64 `json:"score"`
	Confidence  string  `json:"confidence"`
	IsBestMatch bool    `json:"is_best_match"`
}

// SuggestFixInput is the input schema for the suggest-fix tool.
type SuggestFixInput struct {
	FindingID string `json:"finding_id" jsonschema:"the ID of the finding to fix"`
}

// SuggestFixOutput is the output schema for the suggest-fix tool.
type SuggestFixOutput struct {
	FilePath    string `json:"file_path,omitempty"`
	Patch       string `json:"patch"`
	Explanation string `json:"explanation"`
	Model       string `json:"model"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run-scan",
		Description: "Run an accessibility audit against a registered site",
	}, s.handleRunScan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list-findings",
		Description: "List accessibility findings, optionally filtered by site, status or impact",
	}, s.handleListFindings)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "locate-source",
		Description: "Locate the source file behind a finding, ranked by match confidence",
	}, s.handleLocateSource)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest-fix",
		Description: "Generate an AI fix suggestion for a finding",
	}, s.handleSuggestFix)
}

// handleRunScan handles the run-scan tool invocation.
func (s *Server) handleRunScan(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunScanInput,
) (*mcp.CallToolResult, RunScanOutput, error) {
	if s.ports.Scan == nil {
		return nil, RunScanOutput{}, errors.New("scan service is not available")
	}

	scans, err := s.ports.Scan.Scan(ctx, input.SiteID, domain.ScanOptions{})
	if err != nil {
		return nil, RunScanOutput{}, err
	}

	output := RunScanOutput{Pages: make([]PageScanOutput, len(scans))}
	for i := range scans {
		output.Pages[i] = PageScanOutput{
			PageURL:   scans[i].PageURL,
			Score:     scans[i].Summary.Score,
			Total:     scans[i].Summary.Total,
			New:       scans[i].Summary.New,
			Recurring: scans[i].Summary.Recurring,
			Resolved:  scans[i].Summary.Resolved,
		}
	}

	return nil, output, nil
}

// handleListFindings handles the list-findings tool invocation.
func (s *Server) handleListFindings(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListFindingsInput,
) (*mcp.CallToolResult, ListFindingsOutput, error) {
	filter := driven.FindingFilter{
		SiteID: input.SiteID,
		Status: domain.FindingStatus(input.Status),
		Impact: domain.Impact(input.Impact),
	}

	findings, err := s.ports.Finding.List(ctx, filter)
	if err != nil {
		return nil, ListFindingsOutput{}, err
	}

	output := ListFindingsOutput{
		Findings: make([]FindingOutput, len(findings)),
		Count:    len(findings),
	}

	for i := range findings {
		output.Findings[i] = FindingOutput{
			ID:          findings[i].ID,
			SiteID:      findings[i].SiteID,
			Rule:        findings[i].Rule,
			Impact:      findings[i].Impact.String(),
			Description: findings[i].Description,
			Selector:    findings[i].Selector,
			HTML:        findings[i].HTML,
			Status:      string(findings[i].Status),
			IssueURL:    findings[i].IssueURL,
		}
	}

	return nil, output, nil
}

// handleLocateSource handles the locate-source tool invocation.
func (s *Server) handleLocateSource(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LocateSourceInput,
) (*mcp.CallToolResult, LocateSourceOutput, error) {
	ranked, err := s.ports.Finding.Locate(ctx, input.FindingID)
	if err != nil {
		return nil, LocateSourceOutput{}, err
	}

	output := LocateSourceOutput{Candidates: make([]RankedFileOutput, len(ranked))}
	for i := range ranked {
		output.Candidates[i] = RankedFileOutput{
			Path:        ranked[i].Path,
			Score:       ranked[i].Confidence.Score,
			Confidence:  ranked[i].Confidence.Level.String(),
			IsBestMatch: ranked[i].IsBestMatch,
		}
	}

	return nil, output, nil
}

// handleSuggestFix handles the suggest-fix tool invocation.
func (s *Server) handleSuggestFix(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestFixInput,
) (*mcp.CallToolResult, SuggestFixOutput, error) {
	if s.ports.Fix == nil {
		return nil, SuggestFixOutput{}, errors.New("fix service is not available")
	}

	suggestion, err := s.ports.Fix.SuggestFix(ctx, input.FindingID)
	if err != nil {
		return nil, SuggestFixOutput{}, err
	}

	return nil, SuggestFixOutput{
		FilePath:    suggestion.FilePath,
		Patch:       suggestion.Patch,
		Explanation: suggestion.Explanation,
		Model:       suggestion.Model,
	}, nil
}
