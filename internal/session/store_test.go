package session

import (
	"testing"

	"github.com/rentalert/rentalert-go/internal/authx"
)

func TestStoreNotReadyUntilFirstNotification(t *testing.T) {
	t.Parallel()
	s := NewStore()
	if s.Ready() {
		t.Fatal("store should not be ready before first notification")
	}

	s.OnPrincipalChanged(nil)

	p, ready := s.Current()
	if !ready {
		t.Fatal("store should be ready after first notification")
	}
	if p != nil {
		t.Fatalf("principal = %+v, want nil", p)
	}
}

func TestStoreMirrorsPrincipal(t *testing.T) {
	t.Parallel()
	s := NewStore()
	want := &authx.Principal{UID: "u1", Email: "u1@example.com"}

	s.OnPrincipalChanged(want)
	if p, _ := s.Current(); p != want {
		t.Fatalf("principal = %+v, want %+v", p, want)
	}

	s.OnPrincipalChanged(nil)
	if p, _ := s.Current(); p != nil {
		t.Fatalf("principal = %+v, want nil after sign-out", p)
	}
}

func TestSubscribeAndCancel(t *testing.T) {
	t.Parallel()
	s := NewStore()
	var got []*authx.Principal
	cancel := s.Subscribe(func(p *authx.Principal) { got = append(got, p) })

	p := &authx.Principal{UID: "u1"}
	s.OnPrincipalChanged(p)
	s.OnPrincipalChanged(nil)
	if len(got) != 2 || got[0] != p || got[1] != nil {
		t.Fatalf("unexpected notifications: %+v", got)
	}

	cancel()
	cancel() // second cancel must be harmless
	s.OnPrincipalChanged(p)
	if len(got) != 2 {
		t.Fatalf("subscriber notified after cancel: %d calls", len(got))
	}
}
