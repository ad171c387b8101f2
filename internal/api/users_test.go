package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	clienterrors "github.com/rentalert/rentalert-go/internal/errors"
	"github.com/rentalert/rentalert-go/internal/types"
)

func TestFetchUserData_Success(t *testing.T) {
	t.Parallel()
	want := types.UserProfile{ID: "u1", Email: "u1@example.com", IsVerified: true}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/users/me/data" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	got, err := FetchUserData(context.Background(), srv.Client(), srv.URL, "tok-1")
	if err != nil {
		t.Fatalf("FetchUserData error: %v", err)
	}
	if got.ID != want.ID || !got.IsVerified {
		t.Fatalf("profile = %+v, want %+v", got, want)
	}
}

func TestFetchUserData_NotFoundSentinel(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FetchUserData(context.Background(), srv.Client(), srv.URL, "tok-1")
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("404 must map to ErrNotFound, got %v", err)
	}
}

func TestFetchUserData_ServerErrorIsRecoverable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := FetchUserData(context.Background(), srv.Client(), srv.URL, "tok-1")
	if err == nil {
		t.Fatal("expected error for 500")
	}
	if clienterrors.IsIrrecoverable(err) {
		t.Fatalf("500 must be recoverable: %v", err)
	}
}

func TestFetchUserData_UnauthorizedIsIrrecoverable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := FetchUserData(context.Background(), srv.Client(), srv.URL, "tok-1")
	if !clienterrors.IsIrrecoverable(err) {
		t.Fatalf("401 must be irrecoverable: %v", err)
	}
}

func TestFetchUserData_MalformedBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := FetchUserData(context.Background(), srv.Client(), srv.URL, "tok-1")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if clienterrors.IsIrrecoverable(err) {
		t.Fatalf("malformed body is treated like a network failure: %v", err)
	}
}

func TestCreateUser_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/users/create" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Fatalf("create user must not send auth, got %q", got)
		}
		var req types.CreateUserRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.UserProfile{ID: req.UID, Email: req.Email})
	}))
	defer srv.Close()

	p, err := CreateUser(context.Background(), srv.Client(), srv.URL, types.CreateUserRequest{UID: "u1", Email: "u1@example.com"})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if p.ID != "u1" || p.Email != "u1@example.com" {
		t.Fatalf("profile = %+v", p)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/users/u1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := DeleteUser(context.Background(), srv.Client(), srv.URL, "tok-1", "u1"); err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}
}

func TestUnsubscribe_TokenInBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/users/unsubscribe" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req types.UnsubscribeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Token != "unsub-tok" {
			t.Fatalf("token = %q", req.Token)
		}
	}))
	defer srv.Close()

	if err := Unsubscribe(context.Background(), srv.Client(), srv.URL, "unsub-tok"); err != nil {
		t.Fatalf("Unsubscribe error: %v", err)
	}
}

func TestResubscribe_SendsBearer(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Fatalf("authorization = %q", got)
		}
	}))
	defer srv.Close()

	if err := Resubscribe(context.Background(), srv.Client(), srv.URL, "tok-1"); err != nil {
		t.Fatalf("Resubscribe error: %v", err)
	}
}

func TestFetchUserData_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FetchUserData(ctx, http.DefaultClient, "http://127.0.0.1:0", "tok"); err == nil {
		t.Fatal("expected context error")
	}
}
