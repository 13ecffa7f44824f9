package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nextshop-labs/storefront-backend/api/controllers"
	webhookcontrollers "github.com/nextshop-labs/storefront-backend/api/controllers/webhooks"
	"github.com/nextshop-labs/storefront-backend/api/middleware"
	"github.com/nextshop-labs/storefront-backend/internal/cart"
	"github.com/nextshop-labs/storefront-backend/internal/catalog"
	checkoutsvc "github.com/nextshop-labs/storefront-backend/internal/checkout"
	"github.com/nextshop-labs/storefront-backend/internal/fulfillment"
	"github.com/nextshop-labs/storefront-backend/internal/reviews"
	"github.com/nextshop-labs/storefront-backend/internal/wishlist"
	"github.com/nextshop-labs/storefront-backend/pkg/config"
	"github.com/nextshop-labs/storefront-backend/pkg/logger"
	"github.com/nextshop-labs/storefront-backend/pkg/metrics"
	"github.com/nextshop-labs/storefront-backend/pkg/stripe"
)

// RouterParams collects everything the HTTP surface depends on.
type RouterParams struct {
	Config           *config.Config
	Logger           *logger.Logger
	DBPinger         controllers.Pinger
	RedisPinger      controllers.Pinger
	CatalogService   catalog.Service
	CartService      cart.Service
	ReviewService    reviews.Service
	WishlistService  wishlist.Service
	CheckoutService  checkoutsvc.Service
	StripeClient     *stripe.Client
	WebhookService   *fulfillment.Service
	WebhookGuard     *fulfillment.IdempotencyGuard
	MetricsRegistry  *prometheus.Registry
	HTTPMetrics      *metrics.HTTPMetrics
	ExtraCORSOrigins []string
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(p.ExtraCORSOrigins...),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.DBPinger, p.RedisPinger, p.Logger))
	})

	if p.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(p.CatalogService, p.Logger))
			r.Get("/search", controllers.ProductsSearch(p.CatalogService, p.Logger))
			r.Get("/{slug}", controllers.ProductDetail(p.CatalogService, p.Logger))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.CategoriesList(p.CatalogService, p.Logger))
			r.Get("/{slug}", controllers.CategoryDetail(p.CatalogService, p.Logger))
		})

		r.Route("/cart/items", func(r chi.Router) {
			r.Post("/", controllers.CartAddItem(p.CartService, p.Logger))
			r.Put("/{itemID}", controllers.CartUpdateItem(p.CartService, p.Logger))
			r.Delete("/{itemID}", controllers.CartRemoveItem(p.CartService, p.Logger))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Post("/", controllers.ReviewCreate(p.ReviewService, p.Logger))
			r.Put("/{reviewID}", controllers.ReviewUpdate(p.ReviewService, p.Logger))
			r.Delete("/{reviewID}", controllers.ReviewDelete(p.ReviewService, p.Logger))
		})

		r.Post("/wishlist", controllers.WishlistToggle(p.WishlistService, p.Logger))

		r.Post("/checkout/session", controllers.CheckoutSession(p.CheckoutService, p.Logger))

		r.Post("/webhooks/stripe", webhookcontrollers.StripeWebhook(p.WebhookService, p.StripeClient, p.WebhookGuard, p.Logger))
	})

	return r
}
