package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/blumenauautomacao/storefront-backend/api/responses"
	mpwebhook "github.com/blumenauautomacao/storefront-backend/internal/webhooks/mercadopago"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
)

const webhookBodyLimit = 1 << 20

// MercadoPagoWebhook ingests payment notifications. When a webhook secret is
// configured the x-signature header is verified before anything else; the
// processor retries on non-2xx, so only retry-worthy failures return one.
func MercadoPagoWebhook(svc *mpwebhook.Service, secret string, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read webhook body"))
			return
		}

		var notif mpwebhook.Notification
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &notif); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed webhook payload"))
				return
			}
		}

		// feed-style deliveries carry everything in the query string
		query := r.URL.Query()
		if notif.Type == "" {
			notif.Type = query.Get("type")
			if notif.Type == "" {
				notif.Type = query.Get("topic")
			}
		}
		if notif.Data.ID == "" {
			notif.Data.ID = query.Get("data.id")
			if notif.Data.ID == "" {
				notif.Data.ID = query.Get("id")
			}
		}

		if secret != "" {
			signature := r.Header.Get("x-signature")
			requestID := r.Header.Get("x-request-id")
			if !mpwebhook.VerifySignature(secret, signature, requestID, notif.Data.ID) {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid webhook signature"))
				return
			}
		}

		if err := svc.HandleNotification(ctx, notif, payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"received": true})
	}
}
