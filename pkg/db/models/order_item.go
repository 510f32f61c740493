package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/labelworks-backend/pkg/types"
)

// OrderItem is the priced snapshot of a single line within a client order.
// Quantity and LineTotal are denormalized from the selection at pricing time
// so the order remains stable after product pricing changes.
type OrderItem struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	ProductID *uuid.UUID `gorm:"column:product_id;type:uuid"`
	LabelID   *uuid.UUID `gorm:"column:label_id;type:uuid"`

	Name      string                  `gorm:"column:name;not null"`
	Quantity  int                     `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal         `gorm:"column:unit_price;type:numeric(12,2);not null"`
	LineTotal decimal.Decimal         `gorm:"column:line_total;type:numeric(12,2);not null"`
	Selection types.QuantitySelection `gorm:"column:selection;type:jsonb;serializer:json"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
