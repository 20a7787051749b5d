package session

import "time"

// Option applies a configuration option to the draft store.
type Option func(*inMemoryDrafts)

// WithMaxSize sets the maximum number of drafts kept in memory.
// When full, the oldest draft is evicted.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDrafts) {
		if maxSize > 0 {
			d.maxSize = maxSize
		}
	}
}

// WithTTL sets how long an untouched draft survives.
func WithTTL(ttl time.Duration) Option {
	return func(d *inMemoryDrafts) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *inMemoryDrafts) {
		if now != nil {
			d.now = now
		}
	}
}
