package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/client"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// AddressHandler proxies delivery address management to the address service.
type AddressHandler struct {
	client *client.AddressClient
	logger *slog.Logger
}

// NewAddressHandler creates a new address HTTP handler.
func NewAddressHandler(c *client.AddressClient, logger *slog.Logger) *AddressHandler {
	return &AddressHandler{
		client: c,
		logger: logger,
	}
}

// CreateAddressRequest is the JSON request body for saving an address.
type CreateAddressRequest struct {
	Street     string `json:"street" validate:"required"`
	Complement string `json:"complement"`
	ZipCode    string `json:"zipCode" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

// List handles GET /api/v1/addresses
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.client.FindAll(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// Create handles POST /api/v1/addresses
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAddressRequest
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

	created, err := h.client.Create(r.Context(), &domain.Address{
		Street:     req.Street,
		Complement: req.Complement,
		ZipCode:    req.ZipCode,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: created})
}

// Remove handles DELETE /api/v1/addresses/{addressId}
func (h *AddressHandler) Remove(w http.ResponseWriter, r *http.Request) {
	addressID, ok := httputil.ParseID(w, chi.URLParam(r, "addressId"))
	if !ok {
		return
	}

	if err := h.client.Remove(r.Context(), addressID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "removed"}})
}
