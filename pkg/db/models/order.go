package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blumenauautomacao/storefront-backend/pkg/enums"
)

// Order is created once per checkout in pending status. Only webhook
// reconciliation mutates it afterwards (status, payment fields, paid_at).
// Customer and address fields are snapshots taken at creation time.
type Order struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	ExternalReference string            `gorm:"column:external_reference;uniqueIndex;not null"`
	CustomerID        uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	CustomerName      string            `gorm:"column:customer_name;not null"`
	CustomerEmail     string            `gorm:"column:customer_email;not null"`
	CustomerPhone     string            `gorm:"column:customer_phone;not null"`
	CustomerTaxID     *string           `gorm:"column:customer_tax_id"`
	ShippingStreet    string            `gorm:"column:shipping_street"`
	ShippingNumber    string            `gorm:"column:shipping_number"`
	ShippingExtra     *string           `gorm:"column:shipping_extra"`
	ShippingDistrict  string            `gorm:"column:shipping_district"`
	ShippingCity      string            `gorm:"column:shipping_city"`
	ShippingState     string            `gorm:"column:shipping_state"`
	ShippingCEP       string            `gorm:"column:shipping_cep"`
	Subtotal          decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null"`
	ShippingCost      decimal.Decimal   `gorm:"column:shipping_cost;type:numeric(12,2);not null"`
	Discount          decimal.Decimal   `gorm:"column:discount;type:numeric(12,2);not null"`
	Total             decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Status            enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	PreferenceID      *string           `gorm:"column:preference_id"`
	PaymentID         *string           `gorm:"column:payment_id;index"`
	PaymentStatus     *string           `gorm:"column:payment_status"`
	PaymentMethod     *string           `gorm:"column:payment_method"`
	PaidAt            *time.Time        `gorm:"column:paid_at"`
	Items             []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem snapshots the product at purchase time so historical orders stay
// stable when the catalog changes.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   string          `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name;not null"`
	SKU         string          `gorm:"column:sku"`
	Image       *string         `gorm:"column:image"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	TotalPrice  decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
