package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for AllyLab resources.
	uriScheme = "allylab://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing sites.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "sites",
		Name:        "sites",
		Description: "List of all monitored sites",
		MIMEType:    "application/json",
	}, s.handleSitesResource)

	// Template for a site's scan history.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "sites/{siteId}/scans",
		Name:        "site-scans",
		Description: "Recent accessibility scans of a specific site",
		MIMEType:    "application/json",
	}, s.handleScansResource)

	// Template for finding details.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "findings/{findingId}",
		Name:        "finding-detail",
		Description: "Full details of a specific finding",
		MIMEType:    "application/json",
	}, s.handleFindingResource)
}

// handleSitesResource returns a list of all monitored sites.
func (s *Server) handleSitesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Site == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	sites, err := s.ports.Site.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sites: %w", err)
	}

	// Build simplified site list.
	type siteInfo struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		URL        string `json:"url"`
		ProjectDir string `json:"project_dir,omitempty"`
	}

	infos := make([]siteInfo, len(sites))
	for i := range sites {
		infos[i] = siteInfo{
			ID:         sites[i].ID,
			Name:       sites[i].Name,
			URL:        sites[i].URL,
			ProjectDir: sites[i].ProjectDir,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling sites: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleScansResource returns recent scans for a specific site.
func (s *Server) handleScansResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Scan == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract siteId from URI: allylab://sites/{siteId}/scans
	siteID := extractSiteID(req.Params.URI)
	if siteID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	scans, err := s.ports.Scan.History(ctx, siteID, 20)
	if err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}

	// Build simplified scan list.
	type scanInfo struct {
		ID        string `json:"id"`
		PageURL   string `json:"page_url"`
		StartedAt string `json:"started_at"`
		Score     int    `json:"score"`
		Total     int    `json:"total"`
		New       int    `json:"new"`
		Resolved  int    `json:"resolved"`
	}

	infos := make([]scanInfo, len(scans))
	for i := range scans {
		infos[i] = scanInfo{
			ID:        scans[i].ID,
			PageURL:   scans[i].PageURL,
			StartedAt: scans[i].StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			Score:     scans[i].Summary.Score,
			Total:     scans[i].Summary.Total,
			New:       scans[i].Summary.New,
			Resolved:  scans[i].Summary.Resolved,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling scans: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleFindingResource returns the full details of a specific finding.
func (s *Server) handleFindingResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract findingId from URI: allylab://findings/{findingId}
	findingID := extractFindingID(req.Params.URI)
	if findingID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	finding, err := s.ports.Finding.Get(ctx, findingID)
	if err != nil {
		return nil, fmt.Errorf("getting finding: %w", err)
	}

	data, err := json.MarshalIndent(finding, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling finding: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSiteID extracts the site ID from a URI like allylab://sites/{siteId}/scans.
func extractSiteID(uri string) string {
	const prefix = uriScheme + "sites/"
	const suffix = "/scans"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractFindingID extracts the finding ID from a URI like allylab://findings/{findingId}.
func extractFindingID(uri string) string {
	const prefix = uriScheme + "findings/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
