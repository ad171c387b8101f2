package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rentalert/rentalert-go/internal/errors"
	"github.com/rentalert/rentalert-go/internal/types"
)

// VerifyEmail confirms an email address with the token from the
// verification link. No bearer auth; the link may be opened in a
// session-less browser.
func VerifyEmail(ctx context.Context, httpClient *http.Client, baseURL, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/auth/verify-email?token=%s", baseURL, url.QueryEscape(token))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError("verify email", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.NewHTTPError(resp.StatusCode, drainError(resp), "verify email")
	}
	return nil
}

// ResendVerification asks the backend to send a fresh verification
// email.
func ResendVerification(ctx context.Context, httpClient *http.Client, baseURL, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(types.ResendVerificationRequest{Email: email})
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/auth/resend-verification", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError("resend verification", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.NewHTTPError(resp.StatusCode, drainError(resp), "resend verification")
	}
	return nil
}
