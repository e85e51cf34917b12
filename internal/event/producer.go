package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/utafrali/storefront/internal/domain"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/money"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
	TopicOrderPlaced = "storefront.order.placed"
)

// Aggregate type constants.
const (
	AggregateTypeCart  = "cart"
	AggregateTypeOrder = "order"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	CartID     string      `json:"cart_id"`
	SessionID  string      `json:"session_id"`
	TotalItems int         `json:"total_items"`
	Subtotal   money.Money `json:"subtotal"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	CartID    string `json:"cart_id"`
	SessionID string `json:"session_id"`
}

// OrderPlacedData is the payload for an order.placed event.
type OrderPlacedData struct {
	OrderID        int64       `json:"order_id"`
	SessionID      string      `json:"session_id"`
	TotalPrice     money.Money `json:"total_price"`
	PaymentMethod  string      `json:"payment_method"`
	ShippingMethod string      `json:"shipping_method"`
	ItemCount      int         `json:"item_count"`
}

// Publisher sends a serialized event to a topic. Satisfied by
// pkgkafka.Producer in production and by in-memory fakes in tests.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event after any cart mutation.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	data := CartUpdatedData{
		CartID:     cart.ID,
		SessionID:  cart.SessionID,
		TotalItems: cart.TotalItems(),
		Subtotal:   cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, cart.ID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("cart_id", cart.ID),
		slog.String("session_id", cart.SessionID),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, cart *domain.Cart) error {
	data := CartClearedData{
		CartID:    cart.ID,
		SessionID: cart.SessionID,
	}

	event, err := pkgkafka.NewEvent(TopicCartCleared, cart.ID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, event); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("cart_id", cart.ID),
	)

	return nil
}

// PublishOrderPlaced publishes an order.placed event after the order service
// acknowledges a submission.
func (p *Producer) PublishOrderPlaced(ctx context.Context, sessionID string, confirmation *domain.OrderConfirmation, draft *domain.OrderDraft) error {
	data := OrderPlacedData{
		OrderID:        confirmation.ID,
		SessionID:      sessionID,
		TotalPrice:     draft.TotalPrice,
		PaymentMethod:  string(draft.PaymentMethod),
		ShippingMethod: string(draft.ShippingMethod),
		ItemCount:      len(draft.Items),
	}

	event, err := pkgkafka.NewEvent(TopicOrderPlaced, fmt.Sprintf("%d", confirmation.ID), AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicOrderPlaced, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.Int64("order_id", confirmation.ID),
		slog.String("session_id", sessionID),
	)

	return nil
}
