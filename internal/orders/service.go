package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/labelworks-backend/internal/notifications"
	"github.com/angelmondragon/labelworks-backend/internal/pricing"
	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
	"github.com/angelmondragon/labelworks-backend/pkg/types"
	"github.com/angelmondragon/labelworks-backend/pkg/validators"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order lifecycle operations. Advance returns the
// notification requests claimed during the transition; dispatching them is
// the caller's job.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.ClientOrder, error)
	UpdateDraft(ctx context.Context, input UpdateDraftInput) (*models.ClientOrder, error)
	Advance(ctx context.Context, input AdvanceInput) (*models.ClientOrder, []notifications.Request, error)
	Cancel(ctx context.Context, input CancelInput) (*models.ClientOrder, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	machine *Machine
	now     func() time.Time
}

// ItemInput is one order line as entered by staff.
type ItemInput struct {
	ProductID uuid.UUID               `json:"product_id" validate:"required"`
	LabelID   *uuid.UUID              `json:"label_id"`
	Selection types.QuantitySelection `json:"selection"`
}

// DiscountInput is the order-level discount as entered.
type DiscountInput struct {
	Type  enums.DiscountType `json:"type"`
	Value decimal.Decimal    `json:"value"`
}

// CreateInput starts a new draft order.
type CreateInput struct {
	ClientID     uuid.UUID     `json:"client_id" validate:"required"`
	Items        []ItemInput   `json:"items" validate:"required,min=1,dive"`
	Discount     DiscountInput `json:"discount"`
	DeliveryDate *time.Time    `json:"delivery_date"`
	ShipASAP     bool          `json:"ship_asap"`
	Notes        *string       `json:"notes"`
}

// UpdateDraftInput replaces the mutable contents of a waiting order.
type UpdateDraftInput struct {
	OrderID      uuid.UUID     `json:"order_id" validate:"required"`
	Items        []ItemInput   `json:"items" validate:"required,min=1,dive"`
	Discount     DiscountInput `json:"discount"`
	DeliveryDate *time.Time    `json:"delivery_date"`
	ShipASAP     bool          `json:"ship_asap"`
	Notes        *string       `json:"notes"`
}

// AdvanceInput identifies a single-step status move.
type AdvanceInput struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

// CancelInput identifies a cancellation.
type CancelInput struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Reason  *string   `json:"reason"`
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, machine: NewMachine(), now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.ClientOrder, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}

	order := &models.ClientOrder{
		ClientID:     input.ClientID,
		Status:       enums.OrderStatusWaiting,
		DeliveryDate: input.DeliveryDate,
		ShipASAP:     input.ShipASAP,
		Notes:        input.Notes,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		items, err := s.priceItems(ctx, repo, input.Items)
		if err != nil {
			return err
		}
		if err := applyTotals(order, items, input.Discount); err != nil {
			return err
		}
		order.ProductionStartDate = ProductionStartFor(order.DeliveryDate, order.ShipASAP)

		if _, err := repo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		if err := repo.ReplaceItems(ctx, order.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		order.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) UpdateDraft(ctx context.Context, input UpdateDraftInput) (*models.ClientOrder, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}

	var updated *models.ClientOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.load(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if !s.machine.CanEdit(order) {
			return pkgerrors.New(pkgerrors.CodeOrderLocked, "order contents are locked once production starts").
				WithDetails(map[string]any{"status": order.Status.String()})
		}

		items, err := s.priceItems(ctx, repo, input.Items)
		if err != nil {
			return err
		}
		if err := applyTotals(order, items, input.Discount); err != nil {
			return err
		}

		order.DeliveryDate = input.DeliveryDate
		order.ShipASAP = input.ShipASAP
		order.Notes = input.Notes
		order.ProductionStartDate = ProductionStartFor(order.DeliveryDate, order.ShipASAP)

		if err := repo.ReplaceItems(ctx, order.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace order items")
		}
		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		order.Items = items
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Advance(ctx context.Context, input AdvanceInput) (*models.ClientOrder, []notifications.Request, error) {
	if err := validators.Struct(input); err != nil {
		return nil, nil, err
	}

	var (
		updated  *models.ClientOrder
		requests []notifications.Request
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.load(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}

		stages, err := repo.LabelStages(ctx, labelIDsOf(order.Items))
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load label stages")
		}

		reqs, err := s.machine.Advance(order, stages, s.now())
		if err != nil {
			return err
		}

		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		updated = order
		requests = reqs
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, requests, nil
}

func (s *service) Cancel(ctx context.Context, input CancelInput) (*models.ClientOrder, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}

	var updated *models.ClientOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := s.load(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if err := s.machine.Cancel(order, input.Reason, s.now()); err != nil {
			return err
		}
		if err := repo.Save(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save order")
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) load(ctx context.Context, repo Repository, orderID uuid.UUID) (*models.ClientOrder, error) {
	order, err := repo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// priceItems snapshots each line against the product's current pricing
// structure. Prices are frozen on the item so later catalog changes never
// reshape an existing order.
func (s *service) priceItems(ctx context.Context, repo Repository, inputs []ItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, input := range inputs {
		product, err := repo.FindProduct(ctx, input.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
					WithDetails(map[string]any{"product_id": input.ProductID.String()})
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		quote, err := pricing.ComputeLineTotal(product.Pricing, input.Selection)
		if err != nil {
			return nil, err
		}

		productID := input.ProductID
		items = append(items, models.OrderItem{
			ProductID: &productID,
			LabelID:   input.LabelID,
			Name:      product.Name,
			Quantity:  quote.Quantity,
			UnitPrice: quote.UnitPrice,
			LineTotal: quote.Total,
			Selection: input.Selection,
		})
	}
	return items, nil
}

func applyTotals(order *models.ClientOrder, items []models.OrderItem, discount DiscountInput) error {
	lineTotals := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		lineTotals = append(lineTotals, item.LineTotal)
	}

	discountType := discount.Type
	if discountType == "" {
		discountType = enums.DiscountTypeFlat
	}
	totals, err := pricing.TotalsFromLineTotals(lineTotals, types.OrderDiscount{
		Type:  discountType,
		Value: discount.Value,
	})
	if err != nil {
		return err
	}

	order.Subtotal = totals.Subtotal
	order.DiscountType = discountType
	order.DiscountValue = discount.Value
	order.DiscountAmount = totals.DiscountAmount
	order.Total = totals.Total
	return nil
}

func labelIDsOf(items []models.OrderItem) []uuid.UUID {
	var ids []uuid.UUID
	for _, item := range items {
		if item.LabelID != nil {
			ids = append(ids, *item.LabelID)
		}
	}
	return ids
}
