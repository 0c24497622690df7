// Package services implements the core business logic for AllyLab.
//
// Services sit between driving adapters (CLI, TUI, MCP) and driven
// adapters (storage, audit engine, code search, LLM, issue tracker).
// They depend only on domain types and port interfaces, never on
// concrete adapters.
package services
