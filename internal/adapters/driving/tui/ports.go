// Package tui provides an interactive terminal user interface for AllyLab.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/allylab/allylab-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
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

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	site driving.SiteService,
	scan driving.ScanService,
	finding driving.FindingService,
) *Ports {
	return &Ports{
		Site:    site,
		Scan:    scan,
		Finding: finding,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Site == nil {
		return ErrMissingSiteService
	}
	if p.Finding == nil {
		return ErrMissingFindingService
	}
	// Scan, Fix and Report are optional; actions backed by a missing
	// port surface an error in the status line instead.
	return nil
}
