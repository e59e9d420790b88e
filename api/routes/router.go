package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blumenauautomacao/storefront-backend/api/controllers"
	"github.com/blumenauautomacao/storefront-backend/api/middleware"
	"github.com/blumenauautomacao/storefront-backend/internal/catalog"
	"github.com/blumenauautomacao/storefront-backend/internal/checkout"
	"github.com/blumenauautomacao/storefront-backend/internal/orders"
	"github.com/blumenauautomacao/storefront-backend/internal/scraper"
	"github.com/blumenauautomacao/storefront-backend/internal/shipping"
	mpwebhook "github.com/blumenauautomacao/storefront-backend/internal/webhooks/mercadopago"
	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

// Services carries everything the HTTP surface needs.
type Services struct {
	Scraper  *scraper.Service
	Catalog  *catalog.Service
	Shipping *shipping.Service
	Checkout *checkout.Service
	Orders   *orders.Service
	Webhook  *mpwebhook.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, svcs Services) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Get("/healthz", controllers.Healthz(cfg, dbP, logg))
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/check", controllers.CheckProduct(svcs.Scraper, logg))
	r.Post("/check-batch", controllers.CheckBatch(svcs.Scraper, logg))
	r.Get("/product-description", controllers.ProductDescription(svcs.Scraper, scraper.SupplierProesi, logg))
	r.Get("/lojavale-description", controllers.ProductDescription(svcs.Scraper, scraper.SupplierLojaVale, logg))

	r.Get("/products", controllers.Products(svcs.Catalog, logg))
	r.Post("/shipping", controllers.ShippingEstimate(svcs.Shipping, logg))
	r.Post("/checkout", controllers.Checkout(svcs.Checkout, logg))
	r.Post("/webhook", controllers.MercadoPagoWebhook(svcs.Webhook, cfg.MercadoPago.WebhookSecret, logg))
	r.Get("/order/{reference}", controllers.OrderLookup(svcs.Orders, logg))
	r.Get("/reports/daily-revenue", controllers.DailyRevenue(svcs.Orders, logg))

	return r
}
