package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/client"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// RouterDeps holds everything the router needs to register routes.
type RouterDeps struct {
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	CatalogClient   *client.CatalogClient
	AddressClient   *client.AddressClient
	HealthHandler   *health.Handler
	Logger          *slog.Logger
	CORS            middleware.CORSConfig
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	cartHandler := NewCartHandler(deps.CartService, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutService, deps.Logger)
	productHandler := NewProductHandler(deps.CatalogClient, deps.Logger)
	addressHandler := NewAddressHandler(deps.AddressClient, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{productId}", productHandler.GetByID)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/", addressHandler.List)
			r.Post("/", addressHandler.Create)
			r.Delete("/{addressId}", addressHandler.Remove)
		})

		// Cart and checkout are keyed by the browser session.
		r.Group(func(r chi.Router) {
			r.Use(SessionIDFromHeader)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)

				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{productId}", cartHandler.UpdateQuantity)
				r.Delete("/items/{productId}", cartHandler.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/quote", checkoutHandler.GetQuote)
				r.Post("/", checkoutHandler.Finalize)
			})
		})
	})

	return r
}
