// Package mcp provides an MCP (Model Context Protocol) server adapter for AllyLab.
// It enables AI assistants like Claude to run accessibility audits, inspect
// findings and locate the source code behind them.
package mcp

import "errors"

// ErrMissingFindingService is returned when the finding service is not provided.
var ErrMissingFindingService = errors.New("mcp: finding service is required")
