// Package guard decides whether a navigation target is allowed. The
// decision is a pure function of auth readiness, the current principal
// and the cached profile, so views can never flash a redirect before
// the provider has reported.
package guard

import (
	"github.com/rentalert/rentalert-go/internal/authx"
	"github.com/rentalert/rentalert-go/internal/types"
)

// Decision is the route-guard outcome for a protected view.
type Decision int

const (
	// Wait renders nothing until the provider has reported once.
	Wait Decision = iota
	// RedirectLogin sends the visitor to the login page.
	RedirectLogin
	// RedirectVerifyNotice sends an unverified user to the
	// email-verification notice.
	RedirectVerifyNotice
	// Allow lets the navigation through.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case RedirectVerifyNotice:
		return "redirect-verify-notice"
	case Allow:
		return "allow"
	default:
		return "redirect-login"
	}
}

// RedirectPath returns the navigation target for redirect decisions and
// "" otherwise.
func (d Decision) RedirectPath() string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectVerifyNotice:
		return "/verify-email-notice"
	default:
		return ""
	}
}

// Evaluate applies the decision table:
//
//	authReady  principal  verified   outcome
//	false      -          -          Wait
//	true       absent     -          RedirectLogin
//	true       present    false/nil  RedirectVerifyNotice
//	true       present    true       Allow
//
// A missing profile under a present principal counts as unverified; the
// verification notice is the most restrictive state that still lets the
// user act.
func Evaluate(authReady bool, principal *authx.Principal, profile *types.UserProfile) Decision {
	if !authReady {
		return Wait
	}
	if principal == nil {
		return RedirectLogin
	}
	if profile == nil || !profile.IsVerified {
		return RedirectVerifyNotice
	}
	return Allow
}
