package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScanInProgress indicates a scan is already running for the site.
	ErrScanInProgress = errors.New("scan in progress")

	// ErrAuditUnavailable indicates the audit engine is not configured.
	// Scanning is disabled without an engine endpoint.
	ErrAuditUnavailable = errors.New("audit engine unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Features requiring LLM (fix suggestions) are disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrTrackerUnavailable indicates the issue tracker is not configured.
	// Filing issues for findings is disabled.
	ErrTrackerUnavailable = errors.New("issue tracker unavailable")

	// ErrSearcherUnavailable indicates no code searcher is configured.
	// Locating the source behind a finding is disabled.
	ErrSearcherUnavailable = errors.New("code searcher unavailable")

	// ErrNoProjectDir indicates the site has no source checkout configured,
	// so findings cannot be located in code.
	ErrNoProjectDir = errors.New("site has no project directory")

	// ErrRateLimited indicates an external API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAlreadyReported indicates a tracker issue already exists for the finding.
	ErrAlreadyReported = errors.New("finding already reported")
)
