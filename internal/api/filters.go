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

// UpdateFilter replaces the stored filter with f. The server is the
// authority on the resulting state; callers refetch rather than patch
// their cache.
func UpdateFilter(ctx context.Context, httpClient *http.Client, baseURL, bearer string, f types.Filter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(f)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/filters/update", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	setAuth(httpReq, bearer)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return errors.NewNetworkError("update filter", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return errors.NewHTTPError(resp.StatusCode, drainError(resp), "update filter")
	}
	return nil
}
