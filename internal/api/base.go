// Package api wraps the backend REST endpoints. Each operation is a
// free function taking the HTTP client and base URL so the SDK core
// stays trivially testable against httptest servers.
//
// Non-2xx responses become classified errors; bodies are kept for
// logging only and never parsed beyond the expected JSON payload.
package api

import (
	"io"
	"net/http"
)

// Reading more than this from an error body is never useful.
const maxErrorBody = 4 << 10

// drainError snapshots up to maxErrorBody bytes of a failed response.
func drainError(resp *http.Response) string {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return string(b)
}

// setAuth adds the bearer header when a token is present. Endpoints
// with "none" auth pass an empty string.
func setAuth(req *http.Request, bearer string) {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}
