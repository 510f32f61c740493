package recurring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// Repository defines persistence for the recurring order sweep.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListEnabledClients(ctx context.Context) ([]models.PrivateLabelClient, error)
	LatestShippedOrder(ctx context.Context, clientID uuid.UUID) (*models.ClientOrder, error)
	ExistsRecurringDraftSince(ctx context.Context, clientID uuid.UUID, since time.Time) (bool, error)
	CreateDraft(ctx context.Context, order *models.ClientOrder) error
	SetLastGeneratedAt(ctx context.Context, clientID uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a recurring repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListEnabledClients(ctx context.Context) ([]models.PrivateLabelClient, error) {
	var clients []models.PrivateLabelClient
	err := r.db.WithContext(ctx).
		Where("recurring_enabled = ?", true).
		Order("created_at ASC").
		Find(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

// LatestShippedOrder returns the client's most recently shipped order with
// its items, or nil when the client has never shipped.
func (r *repository) LatestShippedOrder(ctx context.Context, clientID uuid.UUID) (*models.ClientOrder, error) {
	var order models.ClientOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("client_id = ? AND status = ?", clientID, enums.OrderStatusShipped).
		Order("actual_ship_date DESC").
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ExistsRecurringDraftSince reports whether a recurring draft was already
// created for the client in the window starting at since. This backs the
// duplicated-sweep guard when the watermark write raced or failed.
func (r *repository) ExistsRecurringDraftSince(ctx context.Context, clientID uuid.UUID, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClientOrder{}).
		Where("client_id = ? AND is_recurring = ?", clientID, true).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateDraft(ctx context.Context, order *models.ClientOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) SetLastGeneratedAt(ctx context.Context, clientID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.PrivateLabelClient{}).
		Where("id = ?", clientID).
		Update("last_generated_at", at).Error
}
