package client

import (
	"os"
	"testing"
	"time"

	"github.com/rentalert/rentalert-go/devauth"
)

func TestNewFromEnv(t *testing.T) {
	srv := newStubServer(t)
	t.Setenv("RENTALERT_BASE_URL", srv.URL)
	t.Setenv("RENTALERT_HTTP_TIMEOUT", "7s")
	t.Setenv("RENTALERT_DEBOUNCE_WINDOW", "500ms")

	c, err := NewFromEnv(devauth.New([]byte("test-secret")))
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	defer c.Close()

	if c.http.Timeout != 7*time.Second {
		t.Errorf("timeout = %v, want 7s", c.http.Timeout)
	}
	if c.debounce != 500*time.Millisecond {
		t.Errorf("debounce = %v, want 500ms", c.debounce)
	}
	if c.staleAfter != 5*time.Minute {
		t.Errorf("staleAfter = %v, want default 5m", c.staleAfter)
	}
}

func TestNewFromEnvMissingBaseURL(t *testing.T) {
	t.Setenv("RENTALERT_BASE_URL", "placeholder") // registers cleanup
	os.Unsetenv("RENTALERT_BASE_URL")
	if _, err := NewFromEnv(devauth.New([]byte("test-secret"))); err == nil {
		t.Fatal("expected error without base URL")
	}
}

func TestNewFromEnvOverride(t *testing.T) {
	srv := newStubServer(t)
	t.Setenv("RENTALERT_BASE_URL", srv.URL)
	t.Setenv("RENTALERT_HTTP_TIMEOUT", "7s")

	c, err := NewFromEnv(devauth.New([]byte("test-secret")), WithHTTPTimeout(9*time.Second))
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	defer c.Close()
	if c.http.Timeout != 9*time.Second {
		t.Errorf("explicit option must win, timeout = %v", c.http.Timeout)
	}
}
