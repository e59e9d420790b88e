package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db"
	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

// sqliteRevenueView mirrors the daily_revenue view from the postgres
// migration; sqlite has no ::date cast so it groups on date().
const sqliteRevenueView = `CREATE VIEW IF NOT EXISTS daily_revenue AS
SELECT date(paid_at) AS day, count(*) AS orders, sum(total) AS revenue
FROM orders
WHERE status = 'approved' AND paid_at IS NOT NULL
GROUP BY date(paid_at)`

// MaybeRunDev executes migrations automatically when the app is running in dev
// mode and the feature flag is enabled. The goose SQL targets postgres; on
// sqlite the schema is built from the gorm models instead.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if strings.EqualFold(cfg.DB.Driver, "sqlite") {
		return runDevSQLite(ctx, logg, client)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}

func runDevSQLite(ctx context.Context, logg *logger.Logger, client *db.Client) error {
	logg.Info(logg.WithField(ctx, "driver", "sqlite"), "building sqlite schema from models (dev auto-run)")

	conn := client.DB()
	err := conn.WithContext(ctx).AutoMigrate(
		&models.Product{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.WebhookLog{},
	)
	if err != nil {
		return fmt.Errorf("migrating sqlite schema: %w", err)
	}
	if err := conn.WithContext(ctx).Exec(sqliteRevenueView).Error; err != nil {
		return fmt.Errorf("creating daily_revenue view: %w", err)
	}
	return nil
}
