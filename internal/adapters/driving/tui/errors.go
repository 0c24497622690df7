package tui

import "errors"

// ErrMissingSiteService is returned when the site service is not provided.
var ErrMissingSiteService = errors.New("tui: site service is required")

// ErrMissingFindingService is returned when the finding service is not provided.
var ErrMissingFindingService = errors.New("tui: finding service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
