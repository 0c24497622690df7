package mcp

import (
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Scan runs audits and exposes scan history.
	Scan driving.ScanService

	// Finding lists, inspects and locates findings.
	Finding driving.FindingService

	// Fix generates AI fix suggestions.
	Fix driving.FixService

	// Report files tracker issues for findings.
	Report driving.ReportService

	// Site manages monitored sites.
	Site driving.SiteService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Finding == nil {
		return ErrMissingFindingService
	}
	// Scan, Fix, Report and Site are optional; tools backed by a
	// missing port report themselves as unavailable.
	return nil
}
