package labels

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// Repository defines persistence for labels and their stage history.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, label *models.Label) (*models.Label, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Label, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage enums.LabelStage) error
	AppendStageEvent(ctx context.Context, event *models.LabelStageEvent) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a labels repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, label *models.Label) (*models.Label, error) {
	if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
		return nil, err
	}
	return label, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Label, error) {
	var label models.Label
	err := r.db.WithContext(ctx).
		Preload("StageEvents", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC")
		}).
		Where("id = ?", id).
		First(&label).Error
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *repository) UpdateStage(ctx context.Context, id uuid.UUID, stage enums.LabelStage) error {
	return r.db.WithContext(ctx).
		Model(&models.Label{}).
		Where("id = ?", id).
		Update("current_stage", stage).Error
}

// AppendStageEvent inserts a history row. History is append-only: no update
// or delete path exists anywhere in the repository.
func (r *repository) AppendStageEvent(ctx context.Context, event *models.LabelStageEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
