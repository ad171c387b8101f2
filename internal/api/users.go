package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rentalert/rentalert-go/internal/errors"
	"github.com/rentalert/rentalert-go/internal/types"
)

// FetchUserData retrieves the profile, filter and listing summaries for
// the authenticated user. A 404 maps to types.ErrNotFound so callers
// can distinguish a missing record from other failures.
func FetchUserData(ctx context.Context, httpClient *http.Client, baseURL, bearer string) (*types.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/users/me/data", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	setAuth(httpReq, bearer)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewNetworkError("fetch user data", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, types.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewHTTPError(resp.StatusCode, drainError(resp), "fetch user data")
	}

	var profile types.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		// Malformed payloads are handled like any other network fault.
		return nil, errors.NewNetworkError("decode user data", err)
	}
	return &profile, nil
}

// CreateUser registers a backend profile after signup.
func CreateUser(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateUserRequest) (*types.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/users/create", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewNetworkError("create user", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, errors.NewHTTPError(resp.StatusCode, drainError(resp), "create user")
	}

	var profile types.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.NewNetworkError("decode created user", err)
	}
	return &profile, nil
}

// SyncUser upserts a backend profile from an external identity, used
// after federated sign-in.
func SyncUser(ctx context.Context, httpClient *http.Client, baseURL, bearer string, req types.SyncUserRequest) (*types.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/users/sync", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	setAuth(httpReq, bearer)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewNetworkError("sync user", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewHTTPError(resp.StatusCode, drainError(resp), "sync user")
	}

	var profile types.UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, errors.NewNetworkError("decode synced user", err)
	}
	return &profile, nil
}

// DeleteUser removes the account. Backend returns 204 No Content.
func DeleteUser(ctx context.Context, httpClient *http.Client, baseURL, bearer, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/users/%s", baseURL, userID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	setAuth(httpReq, bearer)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError("delete user", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		return errors.NewHTTPError(resp.StatusCode, drainError(resp), "delete user")
	}
	return nil
}

// Unsubscribe turns email alerts off using the token from an
// unsubscribe link. No bearer auth; the token is the credential.
func Unsubscribe(ctx context.Context, httpClient *http.Client, baseURL, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(types.UnsubscribeRequest{Token: token})
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/users/unsubscribe", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError("unsubscribe", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.NewHTTPError(resp.StatusCode, drainError(resp), "unsubscribe")
	}
	return nil
}

// Resubscribe turns email alerts back on for the authenticated user.
func Resubscribe(ctx context.Context, httpClient *http.Client, baseURL, bearer string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/users/resubscribe", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, nil)
	if err != nil {
		return err
	}
	setAuth(httpReq, bearer)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError("resubscribe", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.NewHTTPError(resp.StatusCode, drainError(resp), "resubscribe")
	}
	return nil
}
