package client

import (
	"github.com/rentalert/rentalert-go/internal/authx"
	"github.com/rentalert/rentalert-go/internal/guard"
	"github.com/rentalert/rentalert-go/internal/syncer"
	"github.com/rentalert/rentalert-go/internal/types"
)

// Public type aliases so SDK consumers can import only this package.
type (
	// Domain entities
	UserProfile = types.UserProfile
	Filter      = types.Filter
	Location    = types.Location
	Listing     = types.Listing

	// Auth capability surface
	Principal    = authx.Principal
	AuthProvider = authx.Provider

	// Requests
	CreateUserRequest = types.CreateUserRequest
	SyncUserRequest   = types.SyncUserRequest

	// Decisions and states
	RouteDecision = guard.Decision
	SyncState     = syncer.State
)

// Route-guard outcomes.
const (
	RouteWait                 = guard.Wait
	RouteRedirectLogin        = guard.RedirectLogin
	RouteRedirectVerifyNotice = guard.RedirectVerifyNotice
	RouteAllow                = guard.Allow
)

// Controller states.
const (
	SyncUnauthenticated = syncer.Unauthenticated
	SyncFetching        = syncer.Fetching
	SyncFresh           = syncer.Fresh
	SyncStale           = syncer.Stale
	SyncErrored         = syncer.Errored
)

// Errors re-exported in errors.go
