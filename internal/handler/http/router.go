package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uttamdayani9925/Business-Product-Catalog-App/internal/service"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/health"
	"github.com/uttamdayani9925/Business-Product-Catalog-App/pkg/middleware"
)

// NewRouter creates a chi router with all catalog routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	ratingService *service.RatingService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	// Prometheus scrape endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Product API endpoints
	productHandler := NewProductHandler(catalogService, logger)

	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", productHandler.ListProducts)
		r.Get("/{id}", productHandler.GetProduct)
		r.Post("/", productHandler.CreateProduct)
	})

	// Rating API endpoints
	ratingHandler := NewRatingHandler(ratingService, logger)

	r.Route("/ratings", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/product/{id}", ratingHandler.ListRatings)
		r.Post("/", ratingHandler.SubmitRating)
	})

	return r
}
