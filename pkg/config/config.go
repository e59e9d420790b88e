package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Store        StoreConfig
	Shipping     ShippingConfig
	MercadoPago  MercadoPagoConfig
	Freight      FreightConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONT_DB_DSN"`
	Driver string `envconfig:"STOREFRONT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"STOREFRONT_DB_HOST"`
	Port     int    `envconfig:"STOREFRONT_DB_PORT" default:"5432"`
	User     string `envconfig:"STOREFRONT_DB_USER"`
	Password string `envconfig:"STOREFRONT_DB_PASSWORD"`
	Name     string `envconfig:"STOREFRONT_DB_NAME"`
	SSLMode  string `envconfig:"STOREFRONT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONT_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"STOREFRONT_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if strings.EqualFold(d.Driver, "sqlite") {
		d.DSN = "file::memory:?cache=shared"
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either STOREFRONT_DB_DSN or host/user/name must be set")
	}
	d.DSN = fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
	return nil
}

// StoreConfig identifies the storefront in outbound feeds.
type StoreConfig struct {
	Name     string `envconfig:"STOREFRONT_STORE_NAME" default:"Blumenau Automação"`
	BaseURL  string `envconfig:"STOREFRONT_STORE_BASE_URL" default:"https://www.blumenauautomacao.com.br"`
	Currency string `envconfig:"STOREFRONT_STORE_CURRENCY" default:"BRL"`
}

type ShippingConfig struct {
	// FreeZonePrefixes are CEP prefixes eligible for zero-cost local delivery.
	FreeZonePrefixes []string `envconfig:"STOREFRONT_SHIPPING_FREE_ZONE_PREFIXES" default:"890,891"`
	// SameStatePrefix covers the fixed-rate fallback tier for Santa Catarina.
	SameStatePrefix  string        `envconfig:"STOREFRONT_SHIPPING_SAME_STATE_PREFIX" default:"88"`
	OriginCEP        string        `envconfig:"STOREFRONT_SHIPPING_ORIGIN_CEP" default:"89010000"`
	FreeZoneLeadDays int           `envconfig:"STOREFRONT_SHIPPING_FREE_ZONE_LEAD_DAYS" default:"2"`
	QuoteTimeout     time.Duration `envconfig:"STOREFRONT_SHIPPING_QUOTE_TIMEOUT" default:"0"`
}

type MercadoPagoConfig struct {
	AccessToken     string `envconfig:"MERCADOPAGO_ACCESS_TOKEN"`
	WebhookSecret   string `envconfig:"MERCADOPAGO_WEBHOOK_SECRET"`
	NotificationURL string `envconfig:"MERCADOPAGO_NOTIFICATION_URL"`
	SuccessURL      string `envconfig:"MERCADOPAGO_SUCCESS_URL"`
	FailureURL      string `envconfig:"MERCADOPAGO_FAILURE_URL"`
	PendingURL      string `envconfig:"MERCADOPAGO_PENDING_URL"`
}

type FreightConfig struct {
	BaseURL  string `envconfig:"STOREFRONT_FREIGHT_BASE_URL"`
	APIToken string `envconfig:"STOREFRONT_FREIGHT_API_TOKEN"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"STOREFRONT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"STOREFRONT_AUTO_MIGRATE" default:"false"`
}
