package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
)

// CatalogClient fetches product data from the catalog service. Cart mutations
// resolve product details through it so that stored carts always carry the
// listed price at the time the item was added.
type CatalogClient struct {
	httpClient HTTPDoer
	baseURL    string
}

// NewCatalogClient creates a catalog service client.
func NewCatalogClient(httpClient HTTPDoer, baseURL string) *CatalogClient {
	return &CatalogClient{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// FindByID fetches a single product by its ID.
func (c *CatalogClient) FindByID(ctx context.Context, productID int64) (*domain.Product, error) {
	u := c.baseURL + "/products/" + strconv.FormatInt(productID, 10)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create product request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var product domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("decode product response: %w", err)
	}

	return &product, nil
}

// FindAll fetches the full product listing.
func (c *CatalogClient) FindAll(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("create products request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	return products, nil
}

// FindByCategory fetches the products belonging to a category.
func (c *CatalogClient) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	u := c.baseURL + "/products?category=" + url.QueryEscape(category)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create category request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call catalog service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, httpclient.ParseResponseError(resp, "catalog")
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode category response: %w", err)
	}

	return products, nil
}
