package repository

import "errors"

// Sentinel kinds for directory errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrIntegrity = errors.New("dataset integrity violation")
	ErrDecode    = errors.New("dataset decode failed")
)
