package cli

import "errors"

// Sentinel errors reported by the roster commands.
var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrCheckFailed      = errors.New("smoke check failed")
	ErrSmokeFailed      = errors.New("smoke run failed")
)
