package models

import (
	"time"

	"github.com/google/uuid"
)

// WebhookLog is the append-only audit trail of inbound payment notifications.
// Rows are never updated after insert.
type WebhookLog struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Source    string    `gorm:"column:source;not null"`
	EventType string    `gorm:"column:event_type;not null"`
	Payload   string    `gorm:"column:payload;not null"`
	Processed bool      `gorm:"column:processed;not null;default:false"`
	Error     *string   `gorm:"column:error"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the audit table plural like the rest of the schema.
func (WebhookLog) TableName() string {
	return "webhook_logs"
}
