package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blumenauautomacao/storefront-backend/pkg/db"
	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

// Repository persists the customer and order rows created at checkout.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a checkout repository bound to the provided DB.
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

// UpsertCustomer finds the customer by e-mail (case-insensitive) and updates
// the contact fields, or creates a new record.
func (r *Repository) UpsertCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var customer models.Customer
	err := r.db.WithContext(ctx).Where("lower(email) = ?", email).First(&customer).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		customer = models.Customer{
			ID:    uuid.New(),
			Email: email,
			Name:  strings.TrimSpace(input.Name),
			Phone: strings.TrimSpace(input.Phone),
			TaxID: input.TaxID,
		}
		if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
			if db.IsUniqueViolation(err, "") {
				// lost a concurrent upsert race; update the winning row
				return r.updateExisting(ctx, email, input)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create customer")
		}
		return &customer, nil
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find customer")
	}

	return r.applyContact(ctx, &customer, input)
}

// updateExisting reloads the customer row by e-mail and applies the contact
// fields. Used when a concurrent checkout created the row first.
func (r *Repository) updateExisting(ctx context.Context, email string, input CustomerInput) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where("lower(email) = ?", email).First(&customer).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find customer")
	}
	return r.applyContact(ctx, &customer, input)
}

func (r *Repository) applyContact(ctx context.Context, customer *models.Customer, input CustomerInput) (*models.Customer, error) {
	customer.Name = strings.TrimSpace(input.Name)
	customer.Phone = strings.TrimSpace(input.Phone)
	if input.TaxID != nil {
		customer.TaxID = input.TaxID
	}
	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update customer")
	}
	return customer, nil
}

// CreateOrder inserts the order together with its items.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
	}
	return nil
}

// SetPreference stores the processor session id on the order.
func (r *Repository) SetPreference(ctx context.Context, orderID uuid.UUID, preferenceID string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("preference_id", preferenceID).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store preference id")
	}
	return nil
}
