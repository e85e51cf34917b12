package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/event"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/money"
)

// OrderSubmitter submits an assembled order to the order service.
type OrderSubmitter interface {
	Create(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderConfirmation, error)
}

// QuoteInput holds the shipping and payment selections to price a cart with.
type QuoteInput struct {
	ShippingMethod domain.ShippingMethod `json:"shipping_method" validate:"required"`
	PaymentMethod  domain.PaymentMethod  `json:"payment_method" validate:"required"`
}

// Quote is the priced breakdown of the session's cart under the given
// selections.
type Quote struct {
	Subtotal     money.Money `json:"subtotal"`
	ShippingCost money.Money `json:"shipping_cost"`
	Discount     money.Money `json:"discount"`
	FinalTotal   money.Money `json:"final_total"`
	FreeShipping bool        `json:"free_shipping"`
}

// FinalizeInput holds the parameters for finalizing a purchase.
type FinalizeInput struct {
	Address        *domain.Address       `json:"address"`
	ShippingMethod domain.ShippingMethod `json:"shipping_method" validate:"required"`
	PaymentMethod  domain.PaymentMethod  `json:"payment_method" validate:"required"`
}

// CheckoutService prices carts and finalizes purchases against the order
// service.
type CheckoutService struct {
	repo     repository.CartRepository
	orders   OrderSubmitter
	producer *event.Producer
	logger   *slog.Logger

	// inFlight guards against duplicate submissions for the same session
	// while a finalize call is still awaiting the order service.
	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(repo repository.CartRepository, orders OrderSubmitter, producer *event.Producer, logger *slog.Logger) *CheckoutService {
	return &CheckoutService{
		repo:     repo,
		orders:   orders,
		producer: producer,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// GetQuote prices the session's cart under the given shipping and payment
// selections. Quoting is pure: it never mutates the cart or talks to the
// order service.
func (s *CheckoutService) GetQuote(ctx context.Context, sessionID string, input QuoteInput) (*Quote, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if !input.ShippingMethod.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown shipping method %q", input.ShippingMethod))
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	cart, err := s.getCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal()
	shippingCost := domain.ShippingCost(subtotal, input.ShippingMethod)

	return &Quote{
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Discount:     domain.Discount(subtotal, input.PaymentMethod),
		FinalTotal:   domain.FinalTotal(subtotal, input.ShippingMethod, input.PaymentMethod),
		FreeShipping: shippingCost.IsZero() && input.ShippingMethod != domain.ShippingPickup,
	}, nil
}

// FinalizePurchase assembles and submits the order for the session's cart.
// Preconditions are checked before any network call: the cart must not be
// empty and a delivery address must be selected. The cart is cleared only
// after the order service acknowledges the order as created; on any failure
// the cart is preserved so the user can retry.
func (s *CheckoutService) FinalizePurchase(ctx context.Context, sessionID string, input FinalizeInput) (*domain.OrderConfirmation, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if !input.ShippingMethod.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown shipping method %q", input.ShippingMethod))
	}
	if !input.PaymentMethod.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown payment method %q", input.PaymentMethod))
	}

	if !s.acquire(sessionID) {
		return nil, apperrors.Conflict("a purchase for this session is already being processed")
	}
	defer s.release(sessionID)

	cart, err := s.getCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if cart.IsEmpty() {
		return nil, apperrors.EmptyCart()
	}
	if input.Address == nil || input.Address.Street == "" {
		return nil, apperrors.MissingAddress()
	}

	draft := domain.BuildOrderDraft(cart, *input.Address, input.ShippingMethod, input.PaymentMethod)

	confirmation, err := s.orders.Create(ctx, draft)
	if err != nil {
		s.logger.ErrorContext(ctx, "order submission failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.SubmissionFailed(err)
	}

	// The order exists now. A failure to clear the cart must not undo the
	// acknowledged purchase, so it is logged and the confirmation returned.
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after order placement",
			slog.String("session_id", sessionID),
			slog.Int64("order_id", confirmation.ID),
			slog.String("error", err.Error()),
		)
	} else if err := s.producer.PublishCartCleared(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	if err := s.producer.PublishOrderPlaced(ctx, sessionID, confirmation, draft); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.placed event",
			slog.Int64("order_id", confirmation.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "purchase finalized",
		slog.String("session_id", sessionID),
		slog.Int64("order_id", confirmation.ID),
		slog.String("total_price", draft.TotalPrice.String()),
		slog.String("payment_method", string(input.PaymentMethod)),
		slog.String("shipping_method", string(input.ShippingMethod)),
	)

	return confirmation, nil
}

// getCart loads the session's cart, mapping a missing cart to an empty one
// so the empty-cart precondition reports EMPTY_CART rather than NOT_FOUND.
func (s *CheckoutService) getCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.Cart{SessionID: sessionID, Items: []domain.CartItem{}}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

func (s *CheckoutService) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}
	s.inFlight[sessionID] = struct{}{}
	return true
}

func (s *CheckoutService) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
