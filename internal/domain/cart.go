package domain

import (
	"time"

	"github.com/utafrali/storefront/pkg/money"
)

// Quantity bounds for a single cart line.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Product is a read-only reference to a catalog product. The cart holds a
// copy and never mutates it; the catalog service owns the record.
type Product struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	Price    money.Money `json:"price"`
	Category string      `json:"category,omitempty"`
	ImageURL string      `json:"image_url,omitempty"`
}

// CartItem is a single (product, quantity) line in the cart.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price * quantity rounded to two decimals for display.
func (i CartItem) LineTotal() money.Money {
	return i.Product.Price.MulInt(i.Quantity).Round2()
}

// Cart represents a shopping cart. Items preserve insertion order for
// display; at most one item exists per product id.
type Cart struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// ClampQuantity forces a quantity into the [MinQuantity, MaxQuantity] range.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// FindItemIndex returns the index of the cart item with the given product id,
// or -1 if not present.
func (c *Cart) FindItemIndex(productID int64) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Subtotal returns the sum of price * quantity over all items, rounded to two
// decimals at the point of summation so per-line rounding cannot compound.
func (c *Cart) Subtotal() money.Money {
	total := money.Zero()
	for _, item := range c.Items {
		total = total.Add(item.Product.Price.MulInt(item.Quantity))
	}
	return total.Round2()
}

// TotalItems returns the sum of quantities across all items.
func (c *Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
