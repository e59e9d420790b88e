package mpwebhook

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blumenauautomacao/storefront-backend/pkg/db/models"
	pkgerrors "github.com/blumenauautomacao/storefront-backend/pkg/errors"
)

// Repository writes the webhook audit trail.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a webhook audit repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Append inserts one audit row. Rows are never updated afterwards.
func (r *Repository) Append(ctx context.Context, source, eventType, payload string, processed bool, procErr *string) error {
	log := models.WebhookLog{
		ID:        uuid.New(),
		Source:    source,
		EventType: eventType,
		Payload:   payload,
		Processed: processed,
		Error:     procErr,
	}
	if err := r.db.WithContext(ctx).Create(&log).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append webhook log")
	}
	return nil
}
