package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blumenauautomacao/storefront-backend/api/responses"
	"github.com/blumenauautomacao/storefront-backend/internal/orders"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

// OrderLookup returns one order with its items by external reference.
func OrderLookup(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		order, err := svc.Get(ctx, chi.URLParam(r, "reference"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// DailyRevenue serves the approved-order revenue report.
func DailyRevenue(svc *orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		rows, err := svc.DailyRevenue(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}
