package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/client"
	"github.com/utafrali/storefront/pkg/httputil"
)

// ProductHandler proxies product listing to the catalog service.
type ProductHandler struct {
	client *client.CatalogClient
	logger *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(c *client.CatalogClient, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		client: c,
		logger: logger,
	}
}

// List handles GET /api/v1/products with an optional category filter.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var err error
	var products any
	if category != "" {
		products, err = h.client.FindByCategory(r.Context(), category)
	} else {
		products, err = h.client.FindAll(r.Context())
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// GetByID handles GET /api/v1/products/{productId}
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	product, err := h.client.FindByID(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}
