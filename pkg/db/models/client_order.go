package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// NotificationFlags records which lifecycle notifications have been decided
// for an order. Flags are monotonic: once set they stay set unless an
// administrator explicitly resets them.
type NotificationFlags struct {
	SevenDayReminder bool `gorm:"column:seven_day_reminder_sent;not null;default:false" json:"seven_day_reminder"`
	ReadyToShip      bool `gorm:"column:ready_to_ship_sent;not null;default:false" json:"ready_to_ship"`
	Shipped          bool `gorm:"column:shipped_sent;not null;default:false" json:"shipped"`
}

// ClientOrder is a private-label order moving through production to shipment.
type ClientOrder struct {
	ID       uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID uuid.UUID         `gorm:"column:client_id;type:uuid;not null"`
	Status   enums.OrderStatus `gorm:"column:status;type:text;not null;default:'waiting'"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	Subtotal       decimal.Decimal    `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DiscountType   enums.DiscountType `gorm:"column:discount_type;type:text;not null;default:'flat'"`
	DiscountValue  decimal.Decimal    `gorm:"column:discount_value;type:numeric(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal    `gorm:"column:discount_amount;type:numeric(12,2);not null"`
	Total          decimal.Decimal    `gorm:"column:total;type:numeric(12,2);not null"`

	DeliveryDate        *time.Time `gorm:"column:delivery_date"`
	ProductionStartDate *time.Time `gorm:"column:production_start_date"`
	ShipASAP            bool       `gorm:"column:ship_asap;not null;default:false"`

	IsRecurring   bool       `gorm:"column:is_recurring;not null;default:false"`
	ParentOrderID *uuid.UUID `gorm:"column:parent_order_id;type:uuid"`

	NotificationFlags NotificationFlags `gorm:"embedded"`

	ActualShipDate *time.Time `gorm:"column:actual_ship_date"`
	CancelledAt    *time.Time `gorm:"column:cancelled_at"`
	CancelReason   *string    `gorm:"column:cancel_reason"`
	Notes          *string    `gorm:"column:notes"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
