package client

// Functional options applied during construction in New. Keeping them
// in a standalone file makes it easy to discover all available knobs at
// a glance.

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentalert/rentalert-go/internal/cache"
)

// Option configures a Client during construction in New. Options must
// be deterministic and side-effect free beyond the Client itself.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout.
//
// Prefer per-request context deadlines where possible; this timeout is
// a coarse safety net bounding the total time spent on a single HTTP
// request. The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request and
// response is dumped to the log when enabled is true. Do not enable in
// production; dumps include headers and bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// WithLogger attaches a logger for controller and snapshot diagnostics.
// The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = log
		return nil
	}
}

// WithSnapshotPath persists the cached profile to a sqlite file at
// path, restoring it on the next construction so the route guard can
// decide before the first fetch completes.
func WithSnapshotPath(path string) Option {
	return func(c *Client) error {
		if path == "" {
			return fmt.Errorf("snapshot path must not be empty")
		}
		if c.snapshots != nil {
			return fmt.Errorf("snapshot store already configured")
		}
		store, err := cache.OpenSnapshotStore(path)
		if err != nil {
			return err
		}
		c.snapshots = store
		c.closeStore = store.Close
		return nil
	}
}

// WithSnapshotStore attaches a custom durable store for the cached
// profile. Mutually exclusive with WithSnapshotPath.
func WithSnapshotStore(s cache.SnapshotStore) Option {
	return func(c *Client) error {
		if c.snapshots != nil {
			return fmt.Errorf("snapshot store already configured")
		}
		c.snapshots = s
		return nil
	}
}

// WithStaleAfter sets the cache age beyond which a session notification
// triggers a refetch. Default 5 minutes.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("staleness threshold must be > 0")
		}
		c.staleAfter = d
		return nil
	}
}

// WithDebounce sets the quiescence window for coalescing refresh
// triggers. Default 2 seconds.
func WithDebounce(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("debounce window must be > 0")
		}
		c.debounce = d
		return nil
	}
}
