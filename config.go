package client

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config carries environment-driven settings. Variables are prefixed
// with RENTALERT, e.g. RENTALERT_BASE_URL.
type Config struct {
	BaseURL      string        `envconfig:"BASE_URL" required:"true"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
	SnapshotPath string        `envconfig:"SNAPSHOT_PATH"`
	Debounce     time.Duration `envconfig:"DEBOUNCE_WINDOW" default:"2s"`
	StaleAfter   time.Duration `envconfig:"STALE_AFTER" default:"5m"`
	Debug        bool          `envconfig:"DEBUG"`
}

// NewFromEnv constructs a Client from the environment. Explicit options
// are applied after the environment-derived ones and win on conflict.
func NewFromEnv(provider AuthProvider, opts ...Option) (*Client, error) {
	var cfg Config
	if err := envconfig.Process("rentalert", &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	envOpts := []Option{
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithDebounce(cfg.Debounce),
		WithStaleAfter(cfg.StaleAfter),
	}
	if cfg.SnapshotPath != "" {
		envOpts = append(envOpts, WithSnapshotPath(cfg.SnapshotPath))
	}
	if cfg.Debug {
		envOpts = append(envOpts, WithDebugLogging(true))
	}

	return newClient(cfg.BaseURL, provider, append(envOpts, opts...)...)
}
