package client

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	internalerrors "github.com/rentalert/rentalert-go/internal/errors"

	"github.com/rentalert/rentalert-go/devauth"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew(t *testing.T) {
	srv := newStubServer(t)
	c := New(srv.URL, devauth.New([]byte("test-secret")))
	if c == nil {
		t.Fatal("expected client")
	}
	defer c.Close()

	if c.SyncState() != SyncUnauthenticated {
		t.Fatalf("state = %v, want unauthenticated", c.SyncState())
	}
}

func TestNewPanicsOnMisuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty base URL")
		}
	}()
	New("", devauth.New([]byte("test-secret")))
}

func TestCloseIdempotent(t *testing.T) {
	srv := newStubServer(t)
	c := New(srv.URL, devauth.New([]byte("test-secret")))
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestIsRecoverable(t *testing.T) {
	if IsRecoverable(internalerrors.NewHTTPError(403, "", "op")) {
		t.Error("403 should not be recoverable")
	}
	if !IsRecoverable(internalerrors.NewHTTPError(503, "", "op")) {
		t.Error("503 should be recoverable")
	}
	if !IsRecoverable(errors.New("plain")) {
		t.Error("unclassified errors should read as recoverable")
	}
}
