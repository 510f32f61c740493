package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// Label is a single flavor/product-type artwork design moving through the
// approval pipeline. Labels progress independently of orders; many order
// items may reference the same approved label.
type Label struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ClientID     uuid.UUID        `gorm:"column:client_id;type:uuid;not null"`
	FlavorName   string           `gorm:"column:flavor_name;not null"`
	ProductType  string           `gorm:"column:product_type;not null"`
	CurrentStage enums.LabelStage `gorm:"column:current_stage;type:text;not null;default:'design_in_progress'"`
	ImageURLs    pq.StringArray   `gorm:"column:image_urls;type:text[];default:ARRAY[]::text[]"`

	StageEvents []LabelStageEvent `gorm:"foreignKey:LabelID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
