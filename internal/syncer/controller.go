// Package syncer keeps the cached user profile in step with the auth
// session. It reacts to principal transitions and to explicit
// mutations, coalesces refresh triggers, and guarantees at most one
// in-flight profile fetch at a time.
//
// Every issued fetch is tagged with a monotonic sequence number; the
// sequence advances on principal transitions, so a result arriving
// after a sign-out (or a principal switch) no longer matches and is
// discarded instead of repopulating a cleared cache.
package syncer

import (
	"context"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/rentalert/rentalert-go/internal/authx"
	"github.com/rentalert/rentalert-go/internal/cache"
	clienterrors "github.com/rentalert/rentalert-go/internal/errors"
	"github.com/rentalert/rentalert-go/internal/session"
	"github.com/rentalert/rentalert-go/internal/types"
)

// State of the controller. Stale is never stored; it is derived from
// the cache age on read.
type State int

const (
	Unauthenticated State = iota
	Fetching
	Fresh
	Stale
	Errored
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Fetching:
		return "fetching"
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

const (
	defaultStaleAfter  = 5 * time.Minute
	defaultDebounce    = 2 * time.Second
	defaultMaxAttempts = 3
	defaultRetryBase   = 100 * time.Millisecond
)

// Option configures a Controller during construction.
type Option func(*Controller)

// WithStaleAfter sets the cache age beyond which a session notification
// triggers a refetch.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Controller) { c.staleAfter = d }
}

// WithDebounce sets the quiescence window for coalescing refresh
// triggers.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithMaxAttempts bounds the retry loop for recoverable fetch failures.
func WithMaxAttempts(n int) Option {
	return func(c *Controller) { c.maxAttempts = n }
}

// WithRetryBase sets the initial backoff interval between attempts.
func WithRetryBase(d time.Duration) Option {
	return func(c *Controller) { c.retryBase = d }
}

// Controller is the synchronization state machine. It is the only
// writer of the cache.
type Controller struct {
	cache   *cache.Cache
	backend Backend
	log     zerolog.Logger

	staleAfter  time.Duration
	debounce    time.Duration
	maxAttempts int
	retryBase   time.Duration

	mu       sync.Mutex
	state    State
	lastErr  error
	current  *authx.Principal
	seq      uint64
	inflight bool
	pending  *time.Timer
	unsub    func()
	closed   bool
}

// New builds a Controller subscribed to sess. Call Close to release the
// subscription and stop any pending refresh timer.
func New(sess *session.Store, c *cache.Cache, b Backend, opts ...Option) *Controller {
	ctrl := &Controller{
		cache:       c,
		backend:     b,
		log:         zerolog.Nop(),
		staleAfter:  defaultStaleAfter,
		debounce:    defaultDebounce,
		maxAttempts: defaultMaxAttempts,
		retryBase:   defaultRetryBase,
		state:       Unauthenticated,
	}
	for _, opt := range opts {
		opt(ctrl)
	}
	ctrl.unsub = sess.Subscribe(ctrl.onPrincipalChanged)
	if p, ready := sess.Current(); ready {
		ctrl.onPrincipalChanged(p)
	}
	return ctrl
}

// Close unsubscribes from the session store and invalidates any
// in-flight fetch. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.seq++
	c.stopPendingLocked()
	unsub := c.unsub
	c.unsub = nil
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// State reports the current machine state. A Fresh cache older than the
// staleness threshold reads as Stale.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Fresh && c.cache.IsStale(c.staleAfter) {
		return Stale
	}
	return c.state
}

// LastError returns the failure that parked the controller in Errored,
// or nil.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Refresh schedules a refetch after the quiescence window. Triggers
// arriving while one is already scheduled coalesce into it. No-op when
// signed out.
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleRefreshLocked()
}

// UpdateFilter replaces the stored filter, then refetches so the cache
// reflects server-confirmed state rather than the submitted value.
func (c *Controller) UpdateFilter(ctx context.Context, f types.Filter) error {
	p, err := c.principal()
	if err != nil {
		return err
	}
	if err := c.backend.UpdateFilter(ctx, p, f); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// DeleteAccount removes the backend record. The provider-side sign-out
// that follows clears the cache through the session observer.
func (c *Controller) DeleteAccount(ctx context.Context) error {
	p, err := c.principal()
	if err != nil {
		return err
	}
	if err := c.backend.DeleteUser(ctx, p); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// ResendVerification requests a new verification email for the current
// principal's address.
func (c *Controller) ResendVerification(ctx context.Context) error {
	p, err := c.principal()
	if err != nil {
		return err
	}
	if err := c.backend.ResendVerification(ctx, p.Email); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// Unsubscribe turns alerts off by link token. Works without a session;
// the follow-up refresh is a no-op when signed out.
func (c *Controller) Unsubscribe(ctx context.Context, token string) error {
	if err := c.backend.Unsubscribe(ctx, token); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// Resubscribe turns alerts back on for the current principal.
func (c *Controller) Resubscribe(ctx context.Context) error {
	p, err := c.principal()
	if err != nil {
		return err
	}
	if err := c.backend.Resubscribe(ctx, p); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// VerifyEmail confirms the address with a link token, then refetches so
// the verification flag lands in the cache.
func (c *Controller) VerifyEmail(ctx context.Context, token string) error {
	if err := c.backend.VerifyEmail(ctx, token); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

func (c *Controller) principal() (*authx.Principal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, types.ErrNotAuthenticated
	}
	return c.current, nil
}

// onPrincipalChanged is the session observer. Lock ordering is always
// controller then cache.
func (c *Controller) onPrincipalChanged(p *authx.Principal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if p == nil {
		c.current = nil
		c.seq++
		c.stopPendingLocked()
		c.cache.Clear()
		c.state = Unauthenticated
		c.lastErr = nil
		c.log.Debug().Msg("principal lost, cache cleared")
		return
	}

	changed := c.current == nil || c.current.UID != p.UID
	c.current = p
	if changed {
		c.seq++
		c.stopPendingLocked()
		// A restored snapshot belonging to this principal survives the
		// transition; only the staleness gate decides whether to refetch.
		if cached, _, ok := c.cache.Get(); ok && cached.ID == p.UID {
			c.state = Fresh
			c.lastErr = nil
			if c.cache.IsStale(c.staleAfter) {
				c.startFetchLocked()
			}
			c.log.Debug().Str("uid", p.UID).Msg("principal matched cached snapshot")
			return
		}
		c.cache.Clear()
		// Mark intent; if the previous principal's fetch is still in
		// flight, its completion restarts the fetch for this one.
		c.state = Fetching
		c.lastErr = nil
		c.startFetchLocked()
		return
	}

	// Same principal: the staleness-gated variant refetches only when
	// the snapshot has aged out.
	if c.cache.IsStale(c.staleAfter) {
		c.startFetchLocked()
	}
}

func (c *Controller) stopPendingLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Controller) scheduleRefreshLocked() {
	if c.closed || c.current == nil {
		return
	}
	if c.pending != nil {
		refreshCoalesced.Inc()
		return
	}
	c.pending = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.pending = nil
		if c.closed || c.current == nil {
			return
		}
		c.startFetchLocked()
	})
}

// startFetchLocked issues a tagged fetch unless one is already in
// flight; an in-flight fetch makes new triggers no-ops.
func (c *Controller) startFetchLocked() {
	if c.inflight || c.current == nil {
		return
	}
	c.inflight = true
	c.state = Fetching
	c.seq++
	go c.runFetch(c.seq, c.current)
}

func (c *Controller) runFetch(fetchSeq uint64, p *authx.Principal) {
	ctx := context.Background()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retryBase
	exp.Multiplier = 2
	exp.Reset()

	var profile *types.UserProfile
	var err error
	for attempt := 0; ; attempt++ {
		profile, err = c.backend.FetchProfile(ctx, p)
		if err == nil || clienterrors.IsIrrecoverable(err) || attempt >= c.maxAttempts-1 {
			break
		}
		if c.resultStale(fetchSeq) {
			break
		}
		time.Sleep(exp.NextBackOff())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight = false

	if c.closed || fetchSeq != c.seq || c.current == nil || c.current.UID != p.UID {
		staleResultsDiscarded.Inc()
		c.log.Debug().Str("uid", p.UID).Msg("discarding stale fetch result")
		// A principal switch may still be waiting on this slot.
		if !c.closed && c.current != nil && c.state == Fetching {
			c.startFetchLocked()
		}
		return
	}

	if err != nil {
		// Fetch failures never sign the user out; only the provider can.
		c.state = Errored
		c.lastErr = err
		profileFetches.WithLabelValues("error").Inc()
		c.log.Debug().Err(err).Str("uid", p.UID).Msg("profile fetch failed")
		return
	}

	c.cache.Set(profile)
	c.state = Fresh
	c.lastErr = nil
	profileFetches.WithLabelValues("success").Inc()
	c.log.Debug().Str("uid", p.UID).Msg("profile fetched")
}

func (c *Controller) resultStale(fetchSeq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed || fetchSeq != c.seq
}
