package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rentalert/rentalert-go/internal/errors"
	"github.com/rentalert/rentalert-go/internal/types"
)

// FetchListings queries listings matching the stored filter. The result
// is rendered directly and does not touch the cached profile.
func FetchListings(ctx context.Context, httpClient *http.Client, baseURL, bearer string) ([]types.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/users/me/listings", baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}
	setAuth(httpReq, bearer)

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.NewNetworkError("fetch listings", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, types.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewHTTPError(resp.StatusCode, drainError(resp), "fetch listings")
	}

	var lr types.ListListingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, errors.NewNetworkError("decode listings", err)
	}
	return lr.Listings, nil
}
