package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// OrderClient submits assembled orders to the order service.
type OrderClient struct {
	httpClient HTTPDoer
	baseURL    string
}

// NewOrderClient creates an order service client.
func NewOrderClient(httpClient HTTPDoer, baseURL string) *OrderClient {
	return &OrderClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Create submits an order draft. It succeeds only when the order service
// acknowledges with 201 and a "created" status; anything else is an error and
// the caller must treat the submission as not having happened.
func (c *OrderClient) Create(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderConfirmation, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return nil, fmt.Errorf("marshal order draft: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call order service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, httpclient.ParseResponseError(resp, "order")
	}

	var confirmation domain.OrderConfirmation
	if err := json.NewDecoder(resp.Body).Decode(&confirmation); err != nil {
		return nil, fmt.Errorf("decode order confirmation: %w", err)
	}

	if confirmation.Status != domain.OrderStatusCreated {
		return nil, fmt.Errorf("order service returned status %q, want %q", confirmation.Status, domain.OrderStatusCreated)
	}

	return &confirmation, nil
}
