package syncer

import (
	"context"

	"github.com/rentalert/rentalert-go/internal/authx"
	"github.com/rentalert/rentalert-go/internal/types"
)

// Backend is the slice of the REST API the controller drives. The
// implementation resolves bearer tokens from the auth provider per
// call; the controller only decides when calls happen.
type Backend interface {
	FetchProfile(ctx context.Context, p *authx.Principal) (*types.UserProfile, error)
	UpdateFilter(ctx context.Context, p *authx.Principal, f types.Filter) error
	DeleteUser(ctx context.Context, p *authx.Principal) error
	Resubscribe(ctx context.Context, p *authx.Principal) error
	ResendVerification(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, token string) error
	VerifyEmail(ctx context.Context, token string) error
}
