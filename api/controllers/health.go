package controllers

import (
	"net/http"

	"github.com/blumenauautomacao/storefront-backend/api/responses"
	"github.com/blumenauautomacao/storefront-backend/pkg/config"
	"github.com/blumenauautomacao/storefront-backend/pkg/db"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

// Healthz reports liveness plus datasource reachability.
func Healthz(cfg *config.Config, dbP db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unreachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "ok",
			"env":    cfg.App.Env,
		})
	}
}
