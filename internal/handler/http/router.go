package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vendora/seller-service/internal/customer"
	"github.com/vendora/seller-service/internal/service"
	"github.com/vendora/seller-service/pkg/health"
	"github.com/vendora/seller-service/pkg/middleware"
)

// RouterConfig carries router-level configuration.
type RouterConfig struct {
	CORS              middleware.CORSConfig
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all seller service routes registered.
func NewRouter(
	sellerService *service.SellerService,
	resolver customer.Resolver,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing("seller"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("seller"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	// Seller storefront endpoints
	sellerHandler := NewSellerHandler(sellerService, resolver, logger)

	r.Route("/api/v1/sellers", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/", sellerHandler.ListSellers)
		// Static route must be registered before the id parameter.
		r.Get("/more", sellerHandler.MoreSellers)
		r.Get("/{sellerId}", sellerHandler.GetSellerInfo)
		r.Get("/{sellerId}/products", sellerHandler.SellerProducts)
		r.Get("/{sellerId}/featured-products", sellerHandler.FeaturedProducts)
		r.Get("/{sellerId}/recommended-products", sellerHandler.RecommendedProducts)
		r.Get("/{sellerId}/best-selling-products", sellerHandler.BestSellingProducts)
	})

	return r
}
