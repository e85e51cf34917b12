package repository

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// CartRepository defines the interface for cart persistence operations.
type CartRepository interface {
	// Get retrieves a cart by its session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart to the store, overwriting any existing cart for
	// the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart from the store by the session ID.
	Delete(ctx context.Context, sessionID string) error
}
