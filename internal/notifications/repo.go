package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
)

// Repository persists dispatched notifications and resolves recipients.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	RecordSent(ctx context.Context, notification *models.Notification) error
	FindClient(ctx context.Context, id uuid.UUID) (*models.PrivateLabelClient, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a notifications repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) RecordSent(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repository) FindClient(ctx context.Context, id uuid.UUID) (*models.PrivateLabelClient, error) {
	var client models.PrivateLabelClient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}
