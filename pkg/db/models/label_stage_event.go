package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// LabelStageEvent is one entry in a label's append-only stage history.
// Rows are only ever inserted; nothing in the codebase updates or deletes them.
type LabelStageEvent struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	LabelID       uuid.UUID        `gorm:"column:label_id;type:uuid;not null"`
	Stage         enums.LabelStage `gorm:"column:stage;type:text;not null"`
	ChangedBy     string           `gorm:"column:changed_by;not null"`
	ChangedAt     time.Time        `gorm:"column:changed_at;not null"`
	Notes         *string          `gorm:"column:notes"`
	NonSequential bool             `gorm:"column:non_sequential;not null;default:false"`
}
