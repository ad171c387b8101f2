// Package devauth is an in-memory auth provider for local development
// and tests. It implements the same capability surface as the hosted
// identity provider: password accounts, a federated stub, short-lived
// HS256 bearer tokens, and principal-change notifications.
//
// Never use this against a production backend; the signing secret is
// whatever the caller supplies and accounts live only in memory.
package devauth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentalert/rentalert-go/internal/authx"
	"github.com/rentalert/rentalert-go/internal/errors"
)

const defaultTokenTTL = 15 * time.Minute

type account struct {
	uid  string
	hash []byte
}

// Provider implements authx.Provider in memory.
type Provider struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	current  *authx.Principal
	nextSub  int
	subs     map[int]func(*authx.Principal)

	secret   []byte
	tokenTTL time.Duration
}

// Option configures a Provider.
type Option func(*Provider)

// WithTokenTTL overrides the bearer token lifetime.
func WithTokenTTL(d time.Duration) Option {
	return func(p *Provider) { p.tokenTTL = d }
}

// New builds a Provider that signs tokens with secret.
func New(secret []byte, opts ...Option) *Provider {
	p := &Provider{
		accounts: make(map[string]*account),
		subs:     make(map[int]func(*authx.Principal)),
		secret:   secret,
		tokenTTL: defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Signup creates a password account and signs it in.
func (p *Provider) Signup(ctx context.Context, email, password string) (*authx.Principal, error) {
	if !strings.Contains(email, "@") {
		return nil, errors.NewAuthError(errors.CodeInvalidEmail)
	}
	if len(password) < 6 {
		return nil, errors.NewAuthError(errors.CodeWeakPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	if _, exists := p.accounts[email]; exists {
		p.mu.Unlock()
		return nil, errors.NewAuthError(errors.CodeEmailInUse)
	}
	acc := &account{uid: uuid.NewString(), hash: hash}
	p.accounts[email] = acc
	principal := &authx.Principal{UID: acc.uid, Email: email}
	p.setCurrentLocked(principal)
	return principal, nil
}

// Login authenticates a password account.
func (p *Provider) Login(ctx context.Context, email, password string) (*authx.Principal, error) {
	p.mu.Lock()
	acc, ok := p.accounts[email]
	if !ok {
		p.mu.Unlock()
		return nil, errors.NewAuthError(errors.CodeUserNotFound)
	}
	hash := acc.hash
	p.mu.Unlock()

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, errors.NewAuthError(errors.CodeWrongPassword)
	}

	p.mu.Lock()
	principal := &authx.Principal{UID: acc.uid, Email: email}
	p.setCurrentLocked(principal)
	return principal, nil
}

// LoginWithProvider signs in with a synthetic federated identity, one
// account per provider name, created on first use.
func (p *Provider) LoginWithProvider(ctx context.Context, name string) (*authx.Principal, error) {
	if name == "" {
		return nil, errors.NewAuthError(errors.CodeInvalidCredential)
	}
	email := "dev+" + name + "@federated.local"

	p.mu.Lock()
	acc, ok := p.accounts[email]
	if !ok {
		acc = &account{uid: uuid.NewString()}
		p.accounts[email] = acc
	}
	principal := &authx.Principal{UID: acc.uid, Email: email}
	p.setCurrentLocked(principal)
	return principal, nil
}

// Logout ends the session and notifies observers with nil.
func (p *Provider) Logout(ctx context.Context) error {
	p.mu.Lock()
	p.setCurrentLocked(nil)
	return nil
}

// SendPasswordResetEmail is a stub; it only validates the account
// exists.
func (p *Provider) SendPasswordResetEmail(ctx context.Context, email string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.accounts[email]; !ok {
		return errors.NewAuthError(errors.CodeUserNotFound)
	}
	return nil
}

// CurrentPrincipal returns the signed-in principal or nil.
func (p *Provider) CurrentPrincipal() *authx.Principal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// OnPrincipalChanged registers fn and invokes it immediately with the
// current state, mirroring hosted providers that replay the session on
// subscription.
func (p *Provider) OnPrincipalChanged(fn func(*authx.Principal)) (cancel func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Token mints a fresh short-lived HS256 bearer token for principal.
func (p *Provider) Token(ctx context.Context, principal *authx.Principal) (string, error) {
	if principal == nil {
		return "", errors.NewAuthError(errors.CodeInvalidCredential)
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   principal.UID,
		"email": principal.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(p.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}

// setCurrentLocked swaps the principal and notifies observers outside
// the lock. Callers must hold p.mu; it is released here.
func (p *Provider) setCurrentLocked(principal *authx.Principal) {
	p.current = principal
	fns := make([]func(*authx.Principal), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(principal)
	}
}
