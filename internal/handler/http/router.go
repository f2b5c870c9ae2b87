package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopnest/marketplace/internal/service"
	"github.com/shopnest/marketplace/pkg/health"
	"github.com/shopnest/marketplace/pkg/middleware"
)

// RouterDeps collects everything the router wires together.
type RouterDeps struct {
	Products      *service.ProductService
	Reviews       *service.ReviewService
	Categories    *service.CategoryService
	TokenValidate middleware.TokenValidator
	Health        *health.Handler
	CORS          middleware.CORSConfig
	RateLimitRPS  int
	RateBurst     int
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all marketplace routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.PrometheusMetrics())
	if deps.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateBurst))
	}

	// Health and metrics endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	productHandler := NewProductHandler(deps.Products, deps.Logger)
	reviewHandler := NewReviewHandler(deps.Reviews, deps.Logger)
	categoryHandler := NewCategoryHandler(deps.Categories, deps.Logger)

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)

		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(deps.TokenValidate))
			r.Get("/{productId}", productHandler.GetProduct)
		})

		// Mutations require an authenticated vendor.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.TokenValidate))
			r.Use(middleware.RequireRole(middleware.RoleVendor))

			r.Post("/", productHandler.CreateProduct)
			r.Put("/{productId}", productHandler.UpdateProduct)
			r.Delete("/{productId}", productHandler.DeleteProduct)
		})

		// Reviews are posted by authenticated customers.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.TokenValidate))
			r.Use(middleware.RequireRole(middleware.RoleCustomer))

			r.Post("/{productId}/reviews", reviewHandler.CreateReview)
		})
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", categoryHandler.ListCategories)
		r.Get("/{categoryId}/products", productHandler.ListProductsByCategory)
	})

	return r
}
