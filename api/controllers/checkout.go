package controllers

import (
	"net/http"

	"github.com/blumenauautomacao/storefront-backend/api/responses"
	"github.com/blumenauautomacao/storefront-backend/api/validators"
	"github.com/blumenauautomacao/storefront-backend/internal/checkout"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

// Checkout creates an order and returns the payment redirect. Field-level
// validation happens in the service so every problem is reported at once.
func Checkout(svc *checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req checkout.CheckoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Create(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
