package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/blumenauautomacao/storefront-backend/pkg/db/types"
)

// Product is the catalog record synced from the supplier feed. It is
// read-only for the API; checkout always re-prices against this row.
type Product struct {
	ID           string             `gorm:"column:id;primaryKey"`
	SKU          string             `gorm:"column:sku;index"`
	Name         string             `gorm:"column:name;not null"`
	Slug         string             `gorm:"column:slug;index"`
	Brand        *string            `gorm:"column:brand"`
	Price        decimal.Decimal    `gorm:"column:price;type:numeric(12,2);not null"`
	Stock        *int               `gorm:"column:stock"`
	InStock      bool               `gorm:"column:in_stock;not null;default:true"`
	Description  *string            `gorm:"column:description"`
	Category     string             `gorm:"column:category;index"`
	CategoryPath dbtypes.StringList `gorm:"column:category_path;type:text"`
	WeightKg     *float64           `gorm:"column:weight_kg"`
	WidthCm      *float64           `gorm:"column:width_cm"`
	HeightCm     *float64           `gorm:"column:height_cm"`
	LengthCm     *float64           `gorm:"column:length_cm"`
	Image        *string            `gorm:"column:image"`
	Images       dbtypes.StringList `gorm:"column:images;type:text"`
	Datasheet    *string            `gorm:"column:datasheet"`
	SourceURL    string             `gorm:"column:source_url"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
