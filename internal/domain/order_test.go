package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressFixture() Address {
	return Address{
		Street:  "Rua das Flores, 120",
		ZipCode: "80010-010",
		City:    "Curitiba",
		State:   "PR",
		Country: "Brasil",
	}
}

func TestBuildOrderDraft(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Product: productFixture(1, "50.00"), Quantity: 2},
			{Product: productFixture(2, "30.00"), Quantity: 1},
		},
	}

	draft := BuildOrderDraft(cart, addressFixture(), ShippingStandard, PaymentCredit)

	require.Len(t, draft.Items, 2)
	assert.Equal(t, "140.00", draft.TotalPrice.String())
	assert.Equal(t, PaymentCredit, draft.PaymentMethod)
	assert.Equal(t, ShippingStandard, draft.ShippingMethod)
	assert.Equal(t, "Curitiba", draft.Address.City)
	assert.Equal(t, "50.00", draft.Items[0].Price.String())
	assert.Equal(t, 2, draft.Items[0].Quantity)
	assert.Equal(t, int64(1), draft.Items[0].Product.ID)
}

func TestBuildOrderDraft_FreeShippingAtThreshold(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Product: productFixture(1, "149.00"), Quantity: 1},
		},
	}

	draft := BuildOrderDraft(cart, addressFixture(), ShippingExpress, PaymentCredit)

	assert.Equal(t, "149.00", draft.TotalPrice.String())
}

// The header total discounts the subtotal once, while each line carries a
// unit price already discounted at the same rate. A consumer summing the
// lines and discounting again ends up below the header total. That mismatch
// is the established contract with the order collaborator, so it is pinned
// here rather than corrected.
func TestBuildOrderDraft_PixLineDiscountDoubleApplies(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Product: productFixture(1, "100.00"), Quantity: 2},
		},
	}

	draft := BuildOrderDraft(cart, addressFixture(), ShippingPickup, PaymentPix)

	// Header total: 200.00 minus 5% once.
	assert.Equal(t, "190.00", draft.TotalPrice.String())

	// Lines already carry the discounted unit price.
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "95.00", draft.Items[0].Price.String())

	// Re-discounting the line sum lands below the header total.
	lineSum := draft.Items[0].Price.MulInt(draft.Items[0].Quantity)
	rediscounted := lineSum.Sub(Discount(lineSum, PaymentPix))
	assert.Equal(t, "180.50", rediscounted.String())
	assert.NotEqual(t, draft.TotalPrice.String(), rediscounted.String())
}

func TestOrderDraft_MarshalsCollaboratorKeys(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{Product: productFixture(1, "10.00"), Quantity: 1},
		},
	}

	draft := BuildOrderDraft(cart, addressFixture(), ShippingPickup, PaymentCredit)

	data, err := json.Marshal(draft)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, `"totalPrice":10.00`)
	assert.Contains(t, body, `"paymentMethod":"credit"`)
	assert.Contains(t, body, `"shippingMethod":"pickup"`)
	assert.Contains(t, body, `"zipCode":"80010-010"`)
	assert.Contains(t, body, `"quantity":1`)
	assert.NotContains(t, body, `"complement"`)
}
