// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, mirrors logs into a rotated file.
	LogFile string `koanf:"log_file"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at a YAML dataset replacing the embedded one.
	DatasetPath string `koanf:"dataset_path"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of submission workers.
	WorkerCount int `koanf:"worker_count"`

	// DraftCapacity caps the team wizard drafts kept in memory.
	DraftCapacity int `koanf:"draft_capacity"`

	// DraftTTLSeconds expires abandoned wizard drafts.
	DraftTTLSeconds int `koanf:"draft_ttl_seconds"`

	// NoticeCapacity caps the toast notifications kept for display.
	NoticeCapacity int `koanf:"notice_capacity"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		QueueSize:       1024,
		WorkerCount:     runtime.NumCPU(),
		DraftCapacity:   256,
		DraftTTLSeconds: 1800,
		NoticeCapacity:  64,
	}
}

// DraftTTL returns the draft expiry as a duration.
func (c *Config) DraftTTL() time.Duration {
	return time.Duration(c.DraftTTLSeconds) * time.Second
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.DraftCapacity <= 0:
		return fmt.Errorf("%w: draft_capacity must be positive", ErrInvalidConfig)
	case c.DraftTTLSeconds <= 0:
		return fmt.Errorf("%w: draft_ttl_seconds must be positive", ErrInvalidConfig)
	case c.NoticeCapacity <= 0:
		return fmt.Errorf("%w: notice_capacity must be positive", ErrInvalidConfig)
	}
	return nil
}
