package notify

import "time"

// Option applies a configuration option to the Ring.
type Option func(*Ring)

// WithCapacity sets how many notifications are retained.
func WithCapacity(capacity int) Option {
	return func(r *Ring) {
		if capacity > 0 {
			r.capacity = capacity
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Ring) {
		if now != nil {
			r.now = now
		}
	}
}
