package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// QuoteRequest is the JSON request body for pricing the cart.
type QuoteRequest struct {
	ShippingMethod string `json:"shipping_method" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"required"`
}

// FinalizeRequest is the JSON request body for finalizing a purchase.
type FinalizeRequest struct {
	Address        *domain.Address `json:"address"`
	ShippingMethod string          `json:"shipping_method" validate:"required"`
	PaymentMethod  string          `json:"payment_method" validate:"required"`
}

// --- Handlers ---

// GetQuote handles POST /api/v1/checkout/quote
func (h *CheckoutHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Session-ID header is required"},
		})
		return
	}

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	quote, err := h.service.GetQuote(r.Context(), sessionID, service.QuoteInput{
		ShippingMethod: domain.ShippingMethod(req.ShippingMethod),
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}

// Finalize handles POST /api/v1/checkout
func (h *CheckoutHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "X-Session-ID header is required"},
		})
		return
	}

	var req FinalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body: " + err.Error()},
		})
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	confirmation, err := h.service.FinalizePurchase(r.Context(), sessionID, service.FinalizeInput{
		Address:        req.Address,
		ShippingMethod: domain.ShippingMethod(req.ShippingMethod),
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: confirmation})
}
