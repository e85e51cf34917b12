package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ProductFinder resolves product details from the catalog. Cart mutations
// look products up by ID so stored carts carry catalog data rather than
// trusting client-supplied prices.
type ProductFinder interface {
	FindByID(ctx context.Context, productID int64) (*domain.Product, error)
}

// AddItemInput holds the parameters for adding an item to the cart.
type AddItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantityInput holds the parameters for updating an item quantity.
type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// CartService implements the business logic for cart operations.
type CartService struct {
	repo     repository.CartRepository
	catalog  ProductFinder
	producer *event.Producer
	logger   *slog.Logger
	cartTTL  time.Duration
}

// NewCartService creates a new cart service.
func NewCartService(repo repository.CartRepository, catalog ProductFinder, producer *event.Producer, logger *slog.Logger, cartTTL time.Duration) *CartService {
	return &CartService{
		repo:     repo,
		catalog:  catalog,
		producer: producer,
		logger:   logger,
		cartTTL:  cartTTL,
	}
}

// GetCart retrieves the cart for a session. If no cart exists, returns an
// empty cart without persisting it.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	return cart, nil
}

// AddItem adds a product to the session's cart. The quantity is clamped to
// the allowed range. If the product is already in the cart the quantities are
// merged, clamping again at the upper bound rather than failing.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ProductID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.catalog.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	cart, err := s.getOrCreateCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	quantity := domain.ClampQuantity(input.Quantity)

	if i := cart.FindItemIndex(product.ID); i >= 0 {
		cart.Items[i].Quantity = domain.ClampQuantity(cart.Items[i].Quantity + quantity)
		// Refresh catalog data in case it changed since the item was added.
		cart.Items[i].Product = *product
	} else {
		cart.Items = append(cart.Items, domain.CartItem{
			Product:  *product,
			Quantity: quantity,
		})
	}

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", product.ID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// UpdateQuantity sets the quantity of a cart line, clamped to the allowed
// range. Updating a product that is not in the cart is a no-op.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(productID)
	if i < 0 {
		return cart, nil
	}

	cart.Items[i].Quantity = domain.ClampQuantity(quantity)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart item quantity updated",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
		slog.Int("quantity", cart.Items[i].Quantity),
	)

	return cart, nil
}

// RemoveItem removes a product's line from the cart. Removing a product that
// is not in the cart is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if productID <= 0 {
		return nil, apperrors.InvalidInput("product id is required")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItemIndex(productID)
	if i < 0 {
		return cart, nil
	}

	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}

	s.publishCartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.Int64("product_id", productID),
	)

	return cart, nil
}

// ClearCart removes the session's cart entirely.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return nil
}

func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart) error {
	now := time.Now().UTC()
	cart.UpdatedAt = now
	cart.ExpiresAt = now.Add(s.cartTTL)

	if err := s.repo.Save(ctx, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// publishCartUpdated publishes the cart.updated event; log but do not fail
// on error.
func (s *CartService) publishCartUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("session_id", cart.SessionID),
			slog.String("error", err.Error()),
		)
	}
}

// getOrCreateCart retrieves the cart for a session, creating an empty one if
// it does not exist.
func (s *CartService) getOrCreateCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.newEmptyCart(sessionID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// newEmptyCart creates a new empty cart for the given session.
func (s *CartService) newEmptyCart(sessionID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.cartTTL),
	}
}
