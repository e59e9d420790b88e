package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
)

// OrderResponse is the public shape of one order lookup.
type OrderResponse struct {
	ExternalReference string              `json:"external_reference"`
	Status            string              `json:"status"`
	CustomerName      string              `json:"customer_name"`
	CustomerEmail     string              `json:"customer_email"`
	Subtotal          decimal.Decimal     `json:"subtotal"`
	ShippingCost      decimal.Decimal     `json:"shipping_cost"`
	Discount          decimal.Decimal     `json:"discount"`
	Total             decimal.Decimal     `json:"total"`
	PaymentStatus     *string             `json:"payment_status,omitempty"`
	PaymentMethod     *string             `json:"payment_method,omitempty"`
	PaidAt            *time.Time          `json:"paid_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	Items             []OrderItemResponse `json:"items"`
}

// OrderItemResponse is one purchased line in a lookup.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku,omitempty"`
	Image       *string         `json:"image,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

func toOrderResponse(order *models.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Image:       item.Image,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			TotalPrice:  item.TotalPrice,
		})
	}
	return &OrderResponse{
		ExternalReference: order.ExternalReference,
		Status:            order.Status.String(),
		CustomerName:      order.CustomerName,
		CustomerEmail:     order.CustomerEmail,
		Subtotal:          order.Subtotal,
		ShippingCost:      order.ShippingCost,
		Discount:          order.Discount,
		Total:             order.Total,
		PaymentStatus:     order.PaymentStatus,
		PaymentMethod:     order.PaymentMethod,
		PaidAt:            order.PaidAt,
		CreatedAt:         order.CreatedAt,
		Items:             items,
	}
}
