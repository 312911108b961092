package ssd1322

import "errors"

// Errors
var (
	ErrNotReady = errors.New("ssd1322: panel is not initialized")
	ErrState    = errors.New("ssd1322: invalid panel state")
	ErrCommand  = errors.New("ssd1322: invalid command")
	ErrBounds   = errors.New("ssd1322: out of display bounds")
)
