package mpwebhook

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/blumenauautomacao/storefront-backend/internal/orders"
	"github.com/blumenauautomacao/storefront-backend/pkg/enums"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
	"github.com/blumenauautomacao/storefront-backend/pkg/logger"
	"github.com/blumenauautomacao/storefront-backend/pkg/mercadopago"
	"github.com/blumenauautomacao/storefront-backend/pkg/metrics"
)

const auditSource = "mercadopago"

// Notification is the envelope Mercado Pago posts. Only the payment id is
// trusted from it; everything else is fetched back from the API.
type Notification struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// statusMap translates Mercado Pago payment statuses onto the order enum.
// Anything unmapped stays pending.
var statusMap = map[string]enums.OrderStatus{
	"approved":     enums.OrderStatusApproved,
	"pending":      enums.OrderStatusPending,
	"authorized":   enums.OrderStatusInProcess,
	"in_process":   enums.OrderStatusInProcess,
	"in_mediation": enums.OrderStatusInProcess,
	"rejected":     enums.OrderStatusRejected,
	"cancelled":    enums.OrderStatusCancelled,
	"refunded":     enums.OrderStatusRefunded,
	"charged_back": enums.OrderStatusRefunded,
}

type paymentFetcher interface {
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// Service reconciles payment notifications against stored orders.
type Service struct {
	payments paymentFetcher
	orders   *orders.Repository
	audit    *Repository
	metrics  *metrics.StorefrontMetrics
	logg     *logger.Logger
}

// NewService builds the webhook reconciliation service.
func NewService(payments paymentFetcher, ordersRepo *orders.Repository, audit *Repository, m *metrics.StorefrontMetrics, logg *logger.Logger) *Service {
	return &Service{payments: payments, orders: ordersRepo, audit: audit, metrics: m, logg: logg}
}

// HandleNotification processes one notification. A nil return means the
// processor should be acked with 200; an error means a retry could help.
// Every notification is appended to the audit trail either way.
func (s *Service) HandleNotification(ctx context.Context, notif Notification, rawPayload []byte) error {
	eventType := notif.Type
	if eventType == "" {
		eventType = "unknown"
	}

	if notif.Type != "payment" {
		s.appendAudit(ctx, eventType, rawPayload, true, nil)
		s.countOutcome("ignored")
		return nil
	}
	if notif.Data.ID == "" {
		err := pkgerrors.New(pkgerrors.CodeValidation, "payment notification without data.id")
		s.appendAudit(ctx, eventType, rawPayload, false, err)
		s.countOutcome("invalid")
		return err
	}

	payment, err := s.payments.GetPayment(ctx, notif.Data.ID)
	if err != nil {
		s.appendAudit(ctx, eventType, rawPayload, false, err)
		s.countOutcome("fetch_failed")
		return err
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderReference(ctx, payment.ExternalReference)
	}

	order, err := s.orders.FindByReference(ctx, payment.ExternalReference)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			// retrying cannot fix an unknown reference, ack it
			s.appendAudit(ctx, eventType, rawPayload, false,
				fmt.Errorf("no order for external reference %q", payment.ExternalReference))
			s.countOutcome("unknown_reference")
			return nil
		}
		s.appendAudit(ctx, eventType, rawPayload, false, err)
		s.countOutcome("store_failed")
		return err
	}

	newStatus, ok := statusMap[payment.Status]
	if !ok {
		newStatus = enums.OrderStatusPending
	}

	if !transitionAllowed(order.Status, newStatus) {
		// stale or out-of-order notification; retrying cannot change this
		s.appendAudit(ctx, eventType, rawPayload, true, nil)
		s.countOutcome("stale")
		return nil
	}

	update := orders.PaymentUpdate{
		Status:        string(newStatus),
		PaymentID:     strconv.FormatInt(payment.ID, 10),
		PaymentStatus: payment.StatusDetail,
		PaymentMethod: payment.PaymentMethodID,
	}
	if newStatus == enums.OrderStatusApproved && order.Status != enums.OrderStatusApproved {
		paidAt := time.Now().UTC()
		if payment.DateApproved != nil {
			paidAt = payment.DateApproved.UTC()
		}
		update.PaidAt = &paidAt
	}

	if err := s.orders.UpdatePayment(ctx, payment.ExternalReference, update); err != nil {
		s.appendAudit(ctx, eventType, rawPayload, false, err)
		s.countOutcome("store_failed")
		return err
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "status", string(newStatus)), "payment reconciled")
	}
	s.appendAudit(ctx, eventType, rawPayload, true, nil)
	s.countOutcome("processed")
	return nil
}

// transitionAllowed enforces the one-way lifecycle: anything may follow
// pending, approved may only move to refunded, terminal states never move.
// Re-delivery of the current status is always accepted.
func transitionAllowed(current, next enums.OrderStatus) bool {
	if current == next {
		return true
	}
	if current.IsTerminal() {
		return false
	}
	if current == enums.OrderStatusApproved {
		return next == enums.OrderStatusRefunded
	}
	return true
}

// appendAudit is best-effort: a failed insert is logged but never changes
// the response to the processor.
func (s *Service) appendAudit(ctx context.Context, eventType string, rawPayload []byte, processed bool, procErr error) {
	var errText *string
	if procErr != nil {
		text := procErr.Error()
		errText = &text
	}
	if err := s.audit.Append(ctx, auditSource, eventType, string(rawPayload), processed, errText); err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "webhook audit append failed", err)
		}
	}
}

func (s *Service) countOutcome(outcome string) {
	s.metrics.IncWebhook(outcome)
}
