package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// Repository defines persistence for client orders and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.ClientOrder) (*models.ClientOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.ClientOrder, error)
	Save(ctx context.Context, order *models.ClientOrder) error
	ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error
	FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	LabelStages(ctx context.Context, labelIDs []uuid.UUID) (map[uuid.UUID]enums.LabelStage, error)
	ListDueForReminder(ctx context.Context, cutoff time.Time) ([]models.ClientOrder, error)
	ClaimReminderFlag(ctx context.Context, orderID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.ClientOrder) (*models.ClientOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ClientOrder, error) {
	var order models.ClientOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) Save(ctx context.Context, order *models.ClientOrder) error {
	return r.db.WithContext(ctx).
		Omit("Items").
		Save(order).Error
}

// ReplaceItems swaps the full item set of a draft order. Items are only
// mutable while the order is waiting, so the swap never races production.
func (r *repository) ReplaceItems(ctx context.Context, orderID uuid.UUID, items []models.OrderItem) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].OrderID = orderID
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) LabelStages(ctx context.Context, labelIDs []uuid.UUID) (map[uuid.UUID]enums.LabelStage, error) {
	stages := make(map[uuid.UUID]enums.LabelStage, len(labelIDs))
	if len(labelIDs) == 0 {
		return stages, nil
	}

	var labels []models.Label
	err := r.db.WithContext(ctx).
		Select("id", "current_stage").
		Where("id IN ?", labelIDs).
		Find(&labels).Error
	if err != nil {
		return nil, err
	}
	for _, label := range labels {
		stages[label.ID] = label.CurrentStage
	}
	return stages, nil
}

// ClaimReminderFlag atomically sets the seven-day reminder flag. The claim
// succeeds at most once per order; a second caller sees false and sends
// nothing.
func (r *repository) ClaimReminderFlag(ctx context.Context, orderID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ClientOrder{}).
		Where("id = ? AND seven_day_reminder_sent = ?", orderID, false).
		Update("seven_day_reminder_sent", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListDueForReminder returns active orders delivering on or before cutoff
// whose seven-day reminder has not been claimed yet.
func (r *repository) ListDueForReminder(ctx context.Context, cutoff time.Time) ([]models.ClientOrder, error) {
	var orders []models.ClientOrder
	err := r.db.WithContext(ctx).
		Where("seven_day_reminder_sent = ?", false).
		Where("delivery_date IS NOT NULL AND delivery_date <= ?", cutoff).
		Where("status NOT IN ?", []enums.OrderStatus{enums.OrderStatusShipped, enums.OrderStatusCancelled}).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
