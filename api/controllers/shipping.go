package controllers

import (
	"net/http"

	"github.com/blumenauautomacao/storefront-backend/api/responses"
	"github.com/blumenauautomacao/storefront-backend/api/validators"
	"github.com/blumenauautomacao/storefront-backend/internal/shipping"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

type shippingRequest struct {
	CEP   string              `json:"cep" validate:"required"`
	Items []shipping.CartItem `json:"items" validate:"required,min=1,dive"`
}

// ShippingEstimate ranks shipping options for a destination CEP.
func ShippingEstimate(svc *shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req shippingRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		estimate, err := svc.Estimate(ctx, req.CEP, req.Items)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, estimate)
	}
}
