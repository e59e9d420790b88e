package controllers

import (
	"net/http"

	"github.com/blumenauautomacao/storefront-backend/api/responses"
	"github.com/blumenauautomacao/storefront-backend/api/validators"
	"github.com/blumenauautomacao/storefront-backend/internal/catalog"
	"github.com/blumenauautomacao/storefront-backend/pkg/enums"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

// Products lists the catalog as JSON, a Google Merchant feed, or a CSV
// export, depending on the format query parameter.
func Products(svc *catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		format, err := enums.ParseFeedFormat(r.URL.Query().Get("format"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid format"))
			return
		}

		inStock, err := validators.ParseQueryBool(r, "inStock")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filter := catalog.Filter{
			ID:       r.URL.Query().Get("id"),
			Category: r.URL.Query().Get("category"),
			InStock:  inStock,
		}

		switch format {
		case enums.FeedFormatGoogle:
			body, err := svc.GoogleFeed(ctx, filter)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			w.Header().Set("Content-Type", "application/xml; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
		case enums.FeedFormatCSV:
			body, err := svc.CSVFeed(ctx, filter)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
			w.WriteHeader(http.StatusOK)
			w.Write(body)
		default:
			products, err := svc.List(ctx, filter)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteSuccess(w, products)
		}
	}
}
