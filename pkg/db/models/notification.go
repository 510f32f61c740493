package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// Notification records a dispatched lifecycle notification for audit.
type Notification struct {
	ID        uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID  uuid.UUID              `gorm:"column:client_id;type:uuid;not null"`
	OrderID   uuid.UUID              `gorm:"column:order_id;type:uuid;not null"`
	Kind      enums.NotificationKind `gorm:"column:kind;type:text;not null"`
	Recipient string                 `gorm:"column:recipient;not null"`
	SentAt    time.Time              `gorm:"column:sent_at;not null"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime"`
}
