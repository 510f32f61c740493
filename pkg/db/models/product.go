package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/pkg/types"
)

// Product is a sellable item carrying its pricing structure snapshot.
type Product struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID    *uuid.UUID             `gorm:"column:client_id;type:uuid"`
	Name        string                 `gorm:"column:name;not null"`
	ProductType string                 `gorm:"column:product_type;not null"`
	Pricing     types.PricingStructure `gorm:"column:pricing;type:jsonb;serializer:json"`
	Active      bool                   `gorm:"column:active;not null;default:true"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
