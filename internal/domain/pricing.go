package domain

import (
	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/pkg/money"
)

// ShippingMethod identifies how the order is delivered.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingPickup   ShippingMethod = "pickup"
)

// PaymentMethod identifies how the order is paid.
type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "credit"
	PaymentPix    PaymentMethod = "pix"
	PaymentBoleto PaymentMethod = "boleto"
)

// FreeShippingThreshold is the subtotal at or above which shipping is free
// regardless of the chosen method.
var FreeShippingThreshold = money.MustFromString("149.00")

var (
	shippingStandardCost = money.MustFromString("10.00")
	shippingExpressCost  = money.MustFromString("25.00")

	pixDiscountRate = decimal.RequireFromString("0.05")
)

// Valid reports whether the shipping method is a known value. Unknown values
// must be rejected at the service boundary, never defaulted here.
func (m ShippingMethod) Valid() bool {
	switch m {
	case ShippingStandard, ShippingExpress, ShippingPickup:
		return true
	}
	return false
}

// BaseCost returns the method's base shipping cost before the free-shipping
// threshold is considered. Pickup is always free.
func (m ShippingMethod) BaseCost() money.Money {
	switch m {
	case ShippingStandard:
		return shippingStandardCost
	case ShippingExpress:
		return shippingExpressCost
	default:
		return money.Zero()
	}
}

// Valid reports whether the payment method is a known value.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCredit, PaymentPix, PaymentBoleto:
		return true
	}
	return false
}

// DiscountRate returns the fraction of the subtotal discounted for this
// payment method. Only pix carries a discount.
func (m PaymentMethod) DiscountRate() decimal.Decimal {
	if m == PaymentPix {
		return pixDiscountRate
	}
	return decimal.Zero
}

// ShippingCost returns the shipping cost for the given subtotal and method.
// Pickup is unconditionally free; any subtotal at or above the threshold is
// free too. The two branches are independent, not a priority chain.
func ShippingCost(subtotal money.Money, method ShippingMethod) money.Money {
	if method == ShippingPickup {
		return money.Zero()
	}
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return money.Zero()
	}
	return method.BaseCost()
}

// Discount returns the payment-method discount on the subtotal, rounded to
// two decimals.
func Discount(subtotal money.Money, method PaymentMethod) money.Money {
	rate := method.DiscountRate()
	if rate.IsZero() {
		return money.Zero()
	}
	return subtotal.Mul(rate).Round2()
}

// FinalTotal returns round2(subtotal + shipping - discount), clamped at zero.
func FinalTotal(subtotal money.Money, shipping ShippingMethod, payment PaymentMethod) money.Money {
	total := subtotal.
		Add(ShippingCost(subtotal, shipping)).
		Sub(Discount(subtotal, payment)).
		Round2()
	if total.IsNegative() {
		return money.Zero()
	}
	return total
}

// DiscountedUnitPrice returns the product's listed price adjusted by the
// payment method's discount rate, independently rounded to two decimals.
// The order schema expects per-line discounted prices rather than a single
// discount line; a backend that recomputes the total by summing lines will
// apply the pix discount a second time on top of the discounted TotalPrice.
func DiscountedUnitPrice(listPrice money.Money, payment PaymentMethod) money.Money {
	rate := payment.DiscountRate()
	if rate.IsZero() {
		return listPrice
	}
	return listPrice.Mul(decimal.NewFromInt(1).Sub(rate)).Round2()
}
