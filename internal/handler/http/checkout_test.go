package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// ============================================================================
// Mock OrderSubmitter
// ============================================================================

type mockOrderSubmitter struct {
	mock.Mock
}

func (m *mockOrderSubmitter) Create(ctx context.Context, draft *domain.OrderDraft) (*domain.OrderConfirmation, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderConfirmation), args.Error(1)
}

// ============================================================================
// Test helpers
// ============================================================================

func testCheckoutHandler(repo *mockCartRepository, orders *mockOrderSubmitter) *CheckoutHandler {
	svc := service.NewCheckoutService(repo, orders, testEventProducer(), testLogger())
	return NewCheckoutHandler(svc, testLogger())
}

func setupCheckoutRouter(handler *CheckoutHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Post("/quote", handler.GetQuote)
		r.Post("/", handler.Finalize)
	})
	return r
}

func finalizeJSON() []byte {
	body, _ := json.Marshal(FinalizeRequest{
		Address: &domain.Address{
			Street:  "Rua das Flores, 120",
			ZipCode: "80010-010",
			City:    "Curitiba",
			State:   "PR",
			Country: "Brasil",
		},
		ShippingMethod: "standard",
		PaymentMethod:  "credit",
	})
	return body
}

// ============================================================================
// POST /api/v1/checkout/quote - GetQuote
// ============================================================================

func TestQuote_Success(t *testing.T) {
	repo := new(mockCartRepository)
	handler := testCheckoutHandler(repo, new(mockOrderSubmitter))
	router := setupCheckoutRouter(handler)

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)

	body, _ := json.Marshal(QuoteRequest{ShippingMethod: "standard", PaymentMethod: "pix"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "sess-123")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data := resp.Data.(map[string]any)
	// Cart holds 2 x 49.90.
	assert.Equal(t, 99.80, data["subtotal"])
	assert.Equal(t, 10.00, data["shipping_cost"])
	assert.Equal(t, 4.99, data["discount"])
	assert.Equal(t, 104.81, data["final_total"])
}

func TestQuote_UnknownShippingMethod(t *testing.T) {
	repo := new(mockCartRepository)
	handler := testCheckoutHandler(repo, new(mockOrderSubmitter))
	router := setupCheckoutRouter(handler)

	body, _ := json.Marshal(QuoteRequest{ShippingMethod: "drone", PaymentMethod: "credit"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "sess-123")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

// ============================================================================
// POST /api/v1/checkout - Finalize
// ============================================================================

func TestFinalize_Success(t *testing.T) {
	repo := new(mockCartRepository)
	orders := new(mockOrderSubmitter)
	handler := testCheckoutHandler(repo, orders)
	router := setupCheckoutRouter(handler)

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.OrderDraft")).
		Return(&domain.OrderConfirmation{ID: 42, Status: domain.OrderStatusCreated}, nil)
	repo.On("Delete", mock.Anything, "sess-123").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/", bytes.NewReader(finalizeJSON()))
	req.Header.Set("X-Session-ID", "sess-123")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Nil(t, resp.Error)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(42), data["id"])
	assert.Equal(t, "created", data["status"])
	repo.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestFinalize_EmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	orders := new(mockOrderSubmitter)
	handler := testCheckoutHandler(repo, orders)
	router := setupCheckoutRouter(handler)

	repo.On("Get", mock.Anything, "sess-123").Return(nil, apperrors.NotFound("cart", "sess-123"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/", bytes.NewReader(finalizeJSON()))
	req.Header.Set("X-Session-ID", "sess-123")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_CART", resp.Error.Code)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFinalize_MissingAddress(t *testing.T) {
	repo := new(mockCartRepository)
	orders := new(mockOrderSubmitter)
	handler := testCheckoutHandler(repo, orders)
	router := setupCheckoutRouter(handler)

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)

	body, _ := json.Marshal(FinalizeRequest{ShippingMethod: "standard", PaymentMethod: "credit"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/", bytes.NewReader(body))
	req.Header.Set("X-Session-ID", "sess-123")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_ADDRESS", resp.Error.Code)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFinalize_SubmissionFailure(t *testing.T) {
	repo := new(mockCartRepository)
	orders := new(mockOrderSubmitter)
	handler := testCheckoutHandler(repo, orders)
	router := setupCheckoutRouter(handler)

	repo.On("Get", mock.Anything, "sess-123").Return(sampleCart(), nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.OrderDraft")).
		Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/", bytes.NewReader(finalizeJSON()))
	req.Header.Set("X-Session-ID", "sess-123")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ORDER_SUBMISSION_FAILED", resp.Error.Code)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestFinalize_MissingSessionID(t *testing.T) {
	handler := testCheckoutHandler(new(mockCartRepository), new(mockOrderSubmitter))
	router := setupCheckoutRouter(handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/", bytes.NewReader(finalizeJSON()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
