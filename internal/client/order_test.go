package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/money"
)

// plainDoer executes requests without retries so tests exercise the raw
// client behavior.
type plainDoer struct{}

func (plainDoer) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return http.DefaultClient.Do(req.WithContext(ctx))
}

func draftFixture() *domain.OrderDraft {
	return &domain.OrderDraft{
		TotalPrice:     money.MustFromString("110.00"),
		PaymentMethod:  domain.PaymentCredit,
		ShippingMethod: domain.ShippingStandard,
		Address: domain.Address{
			Street:  "Rua das Flores, 120",
			ZipCode: "80010-010",
			City:    "Curitiba",
			State:   "PR",
			Country: "Brasil",
		},
		Items: []domain.OrderItem{
			{
				Price:    money.MustFromString("100.00"),
				Quantity: 1,
				Product:  domain.Product{ID: 1, Name: "Leather Bracelet", Price: money.MustFromString("100.00")},
			},
		},
	}
}

func TestOrderClient_Create_Success(t *testing.T) {
	var received map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "status": "created"})
	}))
	defer srv.Close()

	c := NewOrderClient(plainDoer{}, srv.URL)

	confirmation, err := c.Create(context.Background(), draftFixture())
	require.NoError(t, err)
	assert.Equal(t, int64(42), confirmation.ID)
	assert.Equal(t, domain.OrderStatusCreated, confirmation.Status)

	assert.Equal(t, "credit", received["paymentMethod"])
	assert.Equal(t, "standard", received["shippingMethod"])
	assert.Equal(t, 110.00, received["totalPrice"])
}

func TestOrderClient_Create_NonCreatedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "status": "pending"})
	}))
	defer srv.Close()

	c := NewOrderClient(plainDoer{}, srv.URL)

	confirmation, err := c.Create(context.Background(), draftFixture())
	assert.Nil(t, confirmation)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pending"`)
}

func TestOrderClient_Create_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"code": "INVALID_INPUT", "message": "bad payload"}})
	}))
	defer srv.Close()

	c := NewOrderClient(plainDoer{}, srv.URL)

	confirmation, err := c.Create(context.Background(), draftFixture())
	assert.Nil(t, confirmation)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
