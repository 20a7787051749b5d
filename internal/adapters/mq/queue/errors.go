package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	ErrBackpressure = errors.New("submission queue full")
	ErrQueueClosed  = errors.New("submission queue closed")
)
