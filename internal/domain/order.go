package domain

import (
	"github.com/utafrali/storefront/pkg/money"
)

// Address is a delivery address owned by the address collaborator. The
// checkout treats it as an opaque selected value required to assemble an
// order. JSON keys follow the collaborator's schema.
type Address struct {
	ID         int64  `json:"id,omitempty"`
	Street     string `json:"street"`
	Complement string `json:"complement,omitempty"`
	ZipCode    string `json:"zipCode"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
}

// OrderItem is a single line of the submitted order. Price is the per-unit
// price after the payment-method discount has been applied.
type OrderItem struct {
	Price    money.Money `json:"price"`
	Quantity int         `json:"quantity"`
	Product  Product     `json:"product"`
}

// OrderDraft is the fully assembled, not-yet-submitted representation of a
// checkout attempt. It is constructed fresh at finalize time, submitted once
// per attempt, and never persisted locally.
type OrderDraft struct {
	TotalPrice     money.Money    `json:"totalPrice"`
	PaymentMethod  PaymentMethod  `json:"paymentMethod"`
	ShippingMethod ShippingMethod `json:"shippingMethod"`
	Address        Address        `json:"address"`
	Items          []OrderItem    `json:"items"`
}

// OrderConfirmation is the order collaborator's acknowledgment of a created
// order.
type OrderConfirmation struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// OrderStatusCreated is the only status the checkout accepts as success.
const OrderStatusCreated = "created"

// BuildOrderDraft assembles the submission payload from the current cart and
// the user's selections. Totals come from the pricing functions; each line's
// unit price is the listed price re-discounted at the same rate.
func BuildOrderDraft(cart *Cart, address Address, shipping ShippingMethod, payment PaymentMethod) *OrderDraft {
	subtotal := cart.Subtotal()

	draft := &OrderDraft{
		TotalPrice:     FinalTotal(subtotal, shipping, payment),
		PaymentMethod:  payment,
		ShippingMethod: shipping,
		Address:        address,
		Items:          make([]OrderItem, len(cart.Items)),
	}

	for i, item := range cart.Items {
		draft.Items[i] = OrderItem{
			Price:    DiscountedUnitPrice(item.Product.Price, payment),
			Quantity: item.Quantity,
			Product:  item.Product,
		}
	}

	return draft
}
