// Package domain defines the core business entities for AllyLab.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Site: A monitored web target with an associated source checkout
//   - Scan: One accessibility audit run against a page
//   - Finding: A single accessibility issue detected by a scan
//   - SearchHit / RankedFile: Source-location candidates and their ranking
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
