package checkout

import (
	"github.com/shopspring/decimal"
)

// CheckoutItem carries only the product id and quantity. Unit prices are
// always read from the catalog, never from the request.
type CheckoutItem struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// CustomerInput is the payer identity submitted at checkout.
type CustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	TaxID *string `json:"tax_id,omitempty"`
}

// ShippingInput is the delivery address plus the option the buyer picked
// from a previous estimate. The cost is recomputed server-side.
type ShippingInput struct {
	Street         string  `json:"street"`
	Number         string  `json:"number"`
	Extra          *string `json:"extra,omitempty"`
	District       string  `json:"district"`
	City           string  `json:"city"`
	State          string  `json:"state"`
	CEP            string  `json:"cep"`
	SelectedOption string  `json:"selected_option,omitempty"`
}

// CheckoutRequest is the full checkout payload.
type CheckoutRequest struct {
	Items    []CheckoutItem `json:"items"`
	Customer CustomerInput  `json:"customer"`
	Shipping ShippingInput  `json:"shipping"`
}

// CheckoutResponse points the buyer at the hosted payment page.
type CheckoutResponse struct {
	ExternalReference string          `json:"external_reference"`
	InitPoint         string          `json:"init_point"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	Total             decimal.Decimal `json:"total"`
	Status            string          `json:"status"`
}
