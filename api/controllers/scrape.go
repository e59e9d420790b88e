package controllers

import (
	"net/http"

	"github.com/blumenauautomacao/storefront-backend/api/responses"
	"github.com/blumenauautomacao/storefront-backend/api/validators"
	"github.com/blumenauautomacao/storefront-backend/internal/scraper"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

// CheckProduct probes one supplier URL for price and stock.
func CheckProduct(svc *scraper.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		url, err := validators.RequireQuery(r, "url")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.CheckURL(ctx, url)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

type checkBatchRequest struct {
	URLs []string `json:"urls" validate:"required,min=1"`
}

type checkBatchResponse struct {
	Results []scraper.CheckResult `json:"results"`
}

// CheckBatch probes up to the batch limit of supplier URLs in parallel.
func CheckBatch(svc *scraper.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req checkBatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		results, err := svc.CheckBatch(ctx, req.URLs)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkBatchResponse{Results: results})
	}
}

// ProductDescription runs the full extraction for one supplier's pages.
func ProductDescription(svc *scraper.Service, supplier string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		url, err := validators.RequireQuery(r, "url")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := svc.Describe(ctx, url, supplier)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
