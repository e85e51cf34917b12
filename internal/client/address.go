package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// AddressClient manages delivery addresses through the address service.
type AddressClient struct {
	httpClient HTTPDoer
	baseURL    string
}

// NewAddressClient creates an address service client.
func NewAddressClient(httpClient HTTPDoer, baseURL string) *AddressClient {
	return &AddressClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// FindAll fetches the saved addresses for the current session's user.
func (c *AddressClient) FindAll(ctx context.Context) ([]domain.Address, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/addresses", nil)
	if err != nil {
		return nil, fmt.Errorf("create addresses request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call address service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "address")
	}

	var addresses []domain.Address
	if err := json.NewDecoder(resp.Body).Decode(&addresses); err != nil {
		return nil, fmt.Errorf("decode addresses response: %w", err)
	}

	return addresses, nil
}

// Create saves a new delivery address.
func (c *AddressClient) Create(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	body, err := json.Marshal(address)
	if err != nil {
		return nil, fmt.Errorf("marshal address: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/addresses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create address request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call address service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "address")
	}

	var created domain.Address
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode address response: %w", err)
	}

	return &created, nil
}

// Remove deletes a saved address by its ID.
func (c *AddressClient) Remove(ctx context.Context, addressID int64) error {
	u := c.baseURL + "/addresses/" + strconv.FormatInt(addressID, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("create remove address request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call address service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return httpclient.ParseResponseError(resp, "address")
	}

	return nil
}
