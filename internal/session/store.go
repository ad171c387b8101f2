// Package session mirrors the external auth provider's session state.
// The store has exactly one writer, the provider's change callback; it
// never initiates transitions of its own.
package session

import (
	"sync"

	"github.com/rentalert/rentalert-go/internal/authx"
)

// Store holds the current principal and a readiness flag. Ready stays
// false until the provider delivers its first notification, so route
// decisions can distinguish "not signed in" from "not yet known".
type Store struct {
	mu        sync.Mutex
	principal *authx.Principal
	ready     bool
	nextSub   int
	subs      map[int]func(*authx.Principal)
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(*authx.Principal))}
}

// OnPrincipalChanged records the provider-reported principal (nil on
// sign-out), marks the store ready, and notifies subscribers.
// Subscribers run outside the lock; invocation order is not guaranteed.
func (s *Store) OnPrincipalChanged(p *authx.Principal) {
	s.mu.Lock()
	s.principal = p
	s.ready = true
	fns := make([]func(*authx.Principal), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(p)
	}
}

// Current returns the principal (nil when signed out) and whether the
// provider has reported at least once.
func (s *Store) Current() (*authx.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal, s.ready
}

// Ready reports whether the first provider notification has arrived.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Subscribe registers fn for principal transitions. The returned func
// cancels the subscription and is safe to call more than once.
func (s *Store) Subscribe(fn func(*authx.Principal)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
