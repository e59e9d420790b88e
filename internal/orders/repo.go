package orders

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

// Repository persists orders and their line items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the order together with its items.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	return nil
}

// FindByReference loads an order with its items by external reference.
func (r *Repository) FindByReference(ctx context.Context, reference string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("external_reference = ?", reference).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order by reference")
	}
	return &order, nil
}

// PaymentUpdate carries the webhook reconciliation fields.
type PaymentUpdate struct {
	Status        string
	PaymentID     string
	PaymentStatus string
	PaymentMethod string
	PaidAt        *time.Time
}

// UpdatePayment applies webhook reconciliation to one order. Only the
// payment-related columns are touched.
func (r *Repository) UpdatePayment(ctx context.Context, reference string, update PaymentUpdate) error {
	values := map[string]any{
		"status":         update.Status,
		"payment_id":     update.PaymentID,
		"payment_status": update.PaymentStatus,
		"payment_method": update.PaymentMethod,
	}
	if update.PaidAt != nil {
		values["paid_at"] = *update.PaidAt
	}

	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("external_reference = ?", reference).
		Updates(values)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "update order payment")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return nil
}

// DailyRevenueRow is one day of approved-order revenue.
type DailyRevenueRow struct {
	Day     string          `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyRevenue reads the reporting view, most recent day first.
func (r *Repository) DailyRevenue(ctx context.Context) ([]DailyRevenueRow, error) {
	var rows []DailyRevenueRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT day, orders, revenue FROM daily_revenue ORDER BY day DESC`).
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "query daily revenue")
	}
	return rows, nil
}
