// Package authx defines the capability surface of the external auth
// provider. The SDK only observes the provider's session lifecycle; it
// never constructs or mutates a Principal itself.
package authx

import "context"

// Principal is the authenticated identity as presented by the
// provider: an opaque identifier and the email it was registered with.
// Bearer tokens are short-lived and fetched on demand via
// Provider.Token, never stored here.
type Principal struct {
	UID   string
	Email string
}

// Provider is the external authentication service.
//
// Contract:
//   - Login, LoginWithProvider and Signup establish a session and
//     return the new principal; failures are *errors.AuthError values
//     carrying a provider code.
//   - Logout tears the session down.
//   - OnPrincipalChanged registers an observer that is invoked with
//     the current principal immediately on registration and on every
//     subsequent transition (nil on sign-out). The returned func
//     cancels the registration.
//   - Token returns a fresh short-lived bearer token for p. The
//     provider refreshes tokens internally; callers must not cache
//     them.
type Provider interface {
	Login(ctx context.Context, email, password string) (*Principal, error)
	LoginWithProvider(ctx context.Context, name string) (*Principal, error)
	Signup(ctx context.Context, email, password string) (*Principal, error)
	Logout(ctx context.Context) error
	SendPasswordResetEmail(ctx context.Context, email string) error
	CurrentPrincipal() *Principal
	OnPrincipalChanged(fn func(*Principal)) (cancel func())
	Token(ctx context.Context, p *Principal) (string, error)
}
