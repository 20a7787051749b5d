package site

import "errors"

// Error constants.
var (
	ErrTemplate = errors.New("site template parse failed")
	ErrRender   = errors.New("site render failed")
)
