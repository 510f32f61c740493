package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// PrivateLabelClient is a wholesale customer ordering under their own brand.
type PrivateLabelClient struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	ContactEmail string    `gorm:"column:contact_email;not null"`
	Notes        *string   `gorm:"column:notes"`

	RecurringEnabled  bool                     `gorm:"column:recurring_enabled;not null;default:false"`
	RecurringInterval enums.RecurrenceInterval `gorm:"column:recurring_interval;type:text;not null;default:'monthly'"`
	LastGeneratedAt   *time.Time               `gorm:"column:last_generated_at"`

	Orders []ClientOrder `gorm:"foreignKey:ClientID"`
	Labels []Label       `gorm:"foreignKey:ClientID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
