package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/blumenauautomacao/storefront-backend/api/routes"
	"github.com/blumenauautomacao/storefront-backend/internal/catalog"
	"github.com/blumenauautomacao/storefront-backend/internal/checkout"
	"github.com/blumenauautomacao/storefront-backend/internal/orders"
	"github.com/blumenauautomacao/storefront-backend/internal/scraper"
	"github.com/blumenauautomacao/storefront-backend/internal/shipping"
	mpwebhook "github.com/blumenauautomacao/storefront-backend/internal/webhooks/mercadopago"
	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db"
	"github.com/blumenauautomacao/storefront-backend/pkg/freight"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
	"github.com/blumenauautomacao/storefront-backend/pkg/mercadopago"
	"github.com/blumenauautomacao/storefront-backend/pkg/metrics"
	"github.com/blumenauautomacao/storefront-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	storeMetrics := metrics.NewStorefrontMetrics(prometheus.DefaultRegisterer)

	mpClient, err := mercadopago.NewClient(cfg.MercadoPago.AccessToken)
	if err != nil {
		logg.Error(context.Background(), "failed to create mercado pago client", err)
		os.Exit(1)
	}

	var quoter shipping.Quoter
	if cfg.Freight.BaseURL != "" {
		freightClient, err := freight.NewClient(cfg.Freight.BaseURL, cfg.Freight.APIToken)
		if err != nil {
			logg.Error(context.Background(), "failed to create freight client", err)
			os.Exit(1)
		}
		quoter = freightClient
	}

	scraperSvc, err := scraper.NewService(scraper.NewRegistry(nil), scraper.NewHTTPFetcher(nil), storeMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create scraper service", err)
		os.Exit(1)
	}

	conn := dbClient.DB()
	catalogSvc := catalog.NewService(catalog.NewRepository(conn), cfg.Store)
	shippingSvc := shipping.NewService(cfg.Shipping, quoter, logg)
	ordersRepo := orders.NewRepository(conn)
	checkoutSvc := checkout.NewService(
		catalog.NewRepository(conn),
		shippingSvc,
		checkout.NewRepository(conn),
		dbClient,
		mpClient,
		cfg.MercadoPago,
		cfg.Store,
		logg,
	)
	webhookSvc := mpwebhook.NewService(mpClient, ordersRepo, mpwebhook.NewRepository(conn), storeMetrics, logg)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, routes.Services{
			Scraper:  scraperSvc,
			Catalog:  catalogSvc,
			Shipping: shippingSvc,
			Checkout: checkoutSvc,
			Orders:   orders.NewService(ordersRepo),
			Webhook:  webhookSvc,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
