// Package client is the SDK surface for the rental-alert service:
// authentication through an external provider, a cached user profile
// kept in sync by a background controller, route-guard decisions for
// protected views, and the REST operations the views need.
package client

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/rentalert/rentalert-go/internal/api"
	"github.com/rentalert/rentalert-go/internal/authx"
	"github.com/rentalert/rentalert-go/internal/cache"
	"github.com/rentalert/rentalert-go/internal/guard"
	"github.com/rentalert/rentalert-go/internal/session"
	"github.com/rentalert/rentalert-go/internal/syncer"
	"github.com/rentalert/rentalert-go/internal/types"
)

// Client owns the session store, the profile cache and the
// synchronization controller. Construct one per process; the cache and
// session are single-writer by design.
type Client struct {
	baseURL  string
	http     *http.Client
	provider authx.Provider
	log      zerolog.Logger

	sess  *session.Store
	cache *cache.Cache
	ctrl  *syncer.Controller

	// pre-construction knobs consumed at the end of New
	snapshots  cache.SnapshotStore
	closeStore func() error
	staleAfter time.Duration
	debounce   time.Duration

	unsub      func()
	closedOnce uint32
}

// New constructs a Client for the backend at baseURL, observing
// provider for session transitions. Additional options can be provided
// via functional arguments; option errors panic, as misconfiguration is
// a programming error.
func New(baseURL string, provider authx.Provider, opts ...Option) *Client {
	c, err := newClient(baseURL, provider, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func newClient(baseURL string, provider authx.Provider, opts ...Option) (*Client, error) {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}
	if provider == nil {
		panic("provider cannot be nil")
	}

	c := &Client{
		baseURL:    baseURL,
		provider:   provider,
		http:       &http.Client{Timeout: 30 * time.Second},
		log:        zerolog.Nop(),
		staleAfter: 5 * time.Minute,
		debounce:   2 * time.Second,
	}

	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	var cacheOpts []cache.Option
	if c.snapshots != nil {
		cacheOpts = append(cacheOpts, cache.WithSnapshotStore(c.snapshots))
	}
	userCache, err := cache.New(cacheOpts...)
	if err != nil {
		// A broken snapshot only costs the warm start.
		c.log.Warn().Err(err).Msg("snapshot restore failed, starting cold")
	}
	c.cache = userCache

	c.sess = session.NewStore()
	c.ctrl = syncer.New(c.sess, c.cache, &restBackend{c: c},
		syncer.WithStaleAfter(c.staleAfter),
		syncer.WithDebounce(c.debounce),
		syncer.WithLogger(c.log),
	)
	c.unsub = provider.OnPrincipalChanged(c.sess.OnPrincipalChanged)
	return c, nil
}

// Close releases the provider subscription, the controller and the
// snapshot store. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.unsub != nil {
		c.unsub()
	}
	if c.ctrl != nil {
		c.ctrl.Close()
	}
	if c.closeStore != nil {
		return c.closeStore()
	}
	return nil
}

// --------------------------------------------------------------------
// Authentication - delegated to the provider
// --------------------------------------------------------------------

// Login signs in with email and password. Failures are *AuthError
// values whose UserMessage is safe to display.
func (c *Client) Login(ctx context.Context, email, password string) error {
	if _, err := c.provider.Login(ctx, email, password); err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		return err
	}
	loginsTotal.WithLabelValues("success").Inc()
	return nil
}

// LoginWithProvider signs in with a federated identity and upserts the
// backend profile, since no explicit signup step created it.
func (c *Client) LoginWithProvider(ctx context.Context, name string) error {
	p, err := c.provider.LoginWithProvider(ctx, name)
	if err != nil {
		loginsTotal.WithLabelValues("error").Inc()
		return err
	}
	loginsTotal.WithLabelValues("success").Inc()

	bearer, err := c.provider.Token(ctx, p)
	if err != nil {
		return err
	}
	if _, err := api.SyncUser(ctx, c.http, c.baseURL, bearer, types.SyncUserRequest{UID: p.UID, Email: p.Email}); err != nil {
		return err
	}
	// The principal-change fetch may have raced the upsert and missed.
	c.ctrl.Refresh()
	return nil
}

// Signup creates the provider account and registers the backend
// profile with an empty default filter.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	p, err := c.provider.Signup(ctx, email, password)
	if err != nil {
		return err
	}
	if _, err := api.CreateUser(ctx, c.http, c.baseURL, types.CreateUserRequest{UID: p.UID, Email: p.Email}); err != nil {
		return err
	}
	// The principal-change fetch may have raced the creation and missed.
	c.ctrl.Refresh()
	return nil
}

// Logout signs out. The provider's notification clears the cache
// synchronously and invalidates any in-flight fetch.
func (c *Client) Logout(ctx context.Context) error {
	return c.provider.Logout(ctx)
}

// SendPasswordResetEmail asks the provider to start a password reset.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email string) error {
	return c.provider.SendPasswordResetEmail(ctx, email)
}

// --------------------------------------------------------------------
// Cached profile and synchronization
// --------------------------------------------------------------------

// Profile returns the cached profile, its fetch time, and whether one
// is present. It never blocks on the network; use Refresh to request a
// refetch.
func (c *Client) Profile() (*UserProfile, time.Time, bool) {
	return c.cache.Get()
}

// Refresh schedules a debounced refetch of the profile. Triggers within
// the quiescence window coalesce into one request.
func (c *Client) Refresh() { c.ctrl.Refresh() }

// SyncState reports the controller state (unauthenticated, fetching,
// fresh, stale, errored).
func (c *Client) SyncState() SyncState { return c.ctrl.State() }

// LastSyncError returns the failure of the most recent fetch, or nil.
func (c *Client) LastSyncError() error { return c.ctrl.LastError() }

// --------------------------------------------------------------------
// Route guard
// --------------------------------------------------------------------

// Route evaluates the guard for a protected view against the current
// session and cache. Wait is returned until the provider has reported
// once, so callers never flash a redirect prematurely.
func (c *Client) Route() RouteDecision {
	principal, ready := c.sess.Current()
	profile, _, _ := c.cache.Get()
	return guard.Evaluate(ready, principal, profile)
}

// --------------------------------------------------------------------
// Mutations - delegated to the controller
// --------------------------------------------------------------------

// UpdateFilter validates f and replaces the stored filter. On success a
// debounced refetch pulls the server-confirmed state into the cache.
// Validation failures are *ValidationError values and never reach the
// network.
func (c *Client) UpdateFilter(ctx context.Context, f Filter) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return c.ctrl.UpdateFilter(ctx, f)
}

// DeleteAccount removes the backend record, then signs out of the
// provider so the session observer clears the cache.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.ctrl.DeleteAccount(ctx); err != nil {
		return err
	}
	return c.provider.Logout(ctx)
}

// ResendVerification requests a fresh verification email for the
// signed-in address.
func (c *Client) ResendVerification(ctx context.Context) error {
	return c.ctrl.ResendVerification(ctx)
}

// Unsubscribe turns alerts off using the token from an unsubscribe
// link. Works without a session.
func (c *Client) Unsubscribe(ctx context.Context, token string) error {
	return c.ctrl.Unsubscribe(ctx, token)
}

// Resubscribe turns alerts back on for the signed-in user.
func (c *Client) Resubscribe(ctx context.Context) error {
	return c.ctrl.Resubscribe(ctx)
}

// VerifyEmail confirms the address with a link token, then refetches so
// the verification flag lands in the cache.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.ctrl.VerifyEmail(ctx, token)
}

// --------------------------------------------------------------------
// Listings
// --------------------------------------------------------------------

// FetchListings queries listings matching the stored filter. The result
// is returned directly and does not touch the cached profile.
func (c *Client) FetchListings(ctx context.Context) ([]Listing, error) {
	p, _ := c.sess.Current()
	if p == nil {
		return nil, ErrNotAuthenticated
	}
	bearer, err := c.provider.Token(ctx, p)
	if err != nil {
		return nil, err
	}
	listings, err := api.FetchListings(ctx, c.http, c.baseURL, bearer)
	if err != nil {
		return nil, err
	}
	listingQueriesTotal.Inc()
	return listings, nil
}

// --------------------------------------------------------------------
// Backend adapter
// --------------------------------------------------------------------

// restBackend resolves bearer tokens per call and forwards to the REST
// wrappers. Tokens are short-lived and never cached.
type restBackend struct {
	c *Client
}

func (b *restBackend) token(ctx context.Context, p *authx.Principal) (string, error) {
	return b.c.provider.Token(ctx, p)
}

func (b *restBackend) FetchProfile(ctx context.Context, p *authx.Principal) (*types.UserProfile, error) {
	bearer, err := b.token(ctx, p)
	if err != nil {
		return nil, err
	}
	return api.FetchUserData(ctx, b.c.http, b.c.baseURL, bearer)
}

func (b *restBackend) UpdateFilter(ctx context.Context, p *authx.Principal, f types.Filter) error {
	bearer, err := b.token(ctx, p)
	if err != nil {
		return err
	}
	return api.UpdateFilter(ctx, b.c.http, b.c.baseURL, bearer, f)
}

func (b *restBackend) DeleteUser(ctx context.Context, p *authx.Principal) error {
	bearer, err := b.token(ctx, p)
	if err != nil {
		return err
	}
	return api.DeleteUser(ctx, b.c.http, b.c.baseURL, bearer, p.UID)
}

func (b *restBackend) Resubscribe(ctx context.Context, p *authx.Principal) error {
	bearer, err := b.token(ctx, p)
	if err != nil {
		return err
	}
	return api.Resubscribe(ctx, b.c.http, b.c.baseURL, bearer)
}

func (b *restBackend) ResendVerification(ctx context.Context, email string) error {
	return api.ResendVerification(ctx, b.c.http, b.c.baseURL, email)
}

func (b *restBackend) Unsubscribe(ctx context.Context, token string) error {
	return api.Unsubscribe(ctx, b.c.http, b.c.baseURL, token)
}

func (b *restBackend) VerifyEmail(ctx context.Context, token string) error {
	return api.VerifyEmail(ctx, b.c.http, b.c.baseURL, token)
}
