package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/internal/notifications"
	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

// productionLeadDays is how far before the delivery date production must
// start.
const productionLeadDays = 14

// reminderWindowDays is how close to the delivery date the seven-day
// reminder becomes due.
const reminderWindowDays = 7

// Machine applies production-status transitions to order snapshots. It is
// pure: callers supply the clock and any label stages the transition needs,
// and persist the mutated snapshot themselves.
type Machine struct{}

// NewMachine builds an order status machine.
func NewMachine() *Machine {
	return &Machine{}
}

// Advance moves the order exactly one status forward. Entering ready_to_ship
// requires every label-backed item to have its label at ready_for_production;
// labelStages carries the current stage per referenced label. Entering
// ready_to_ship or shipped claims the matching notification flag and emits a
// dispatch request, at most once per kind over the order's lifetime.
func (m *Machine) Advance(order *models.ClientOrder, labelStages map[uuid.UUID]enums.LabelStage, now time.Time) ([]notifications.Request, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if order.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeTerminalState, "order accepts no further transitions").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	next, ok := order.Status.Next()
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order has no next status").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	if next == enums.OrderStatusReadyToShip {
		if err := verifyShippable(order, labelStages); err != nil {
			return nil, err
		}
	}

	order.Status = next

	var requests []notifications.Request
	switch next {
	case enums.OrderStatusReadyToShip:
		requests = claim(order, enums.NotificationKindReadyToShip, requests)
	case enums.OrderStatusShipped:
		shipped := now.UTC()
		order.ActualShipDate = &shipped
		requests = claim(order, enums.NotificationKindShipped, requests)
	}
	return requests, nil
}

// Cancel moves the order to cancelled from any non-shipped status. Cancelling
// an already-cancelled order is a no-op success.
func (m *Machine) Cancel(order *models.ClientOrder, reason *string, now time.Time) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if order.Status == enums.OrderStatusCancelled {
		return nil
	}
	if order.Status == enums.OrderStatusShipped {
		return pkgerrors.New(pkgerrors.CodeTerminalState, "shipped orders cannot be cancelled")
	}

	cancelled := now.UTC()
	order.Status = enums.OrderStatusCancelled
	order.CancelledAt = &cancelled
	order.CancelReason = reason
	return nil
}

// CanEdit reports whether order contents may still change. Only waiting
// orders are editable; everything after is locked to keep production stable.
func (m *Machine) CanEdit(order *models.ClientOrder) bool {
	return order != nil && order.Status == enums.OrderStatusWaiting
}

// ReminderDue reports whether the seven-day reminder is owed: delivery within
// the window, flag unclaimed, order still moving toward shipment.
func (m *Machine) ReminderDue(order *models.ClientOrder, now time.Time) bool {
	if order == nil || order.DeliveryDate == nil {
		return false
	}
	if order.Status.IsTerminal() {
		return false
	}
	if order.NotificationFlags.SevenDayReminder {
		return false
	}
	return !order.DeliveryDate.After(now.AddDate(0, 0, reminderWindowDays))
}

// ProductionStartFor derives when production must begin for a delivery date.
// Ship-ASAP orders skip the lead-time plan entirely, so nil comes back.
func ProductionStartFor(deliveryDate *time.Time, shipASAP bool) *time.Time {
	if shipASAP || deliveryDate == nil {
		return nil
	}
	start := deliveryDate.AddDate(0, 0, -productionLeadDays)
	return &start
}

// verifyShippable checks that every label-backed item has an approved,
// production-ready label.
func verifyShippable(order *models.ClientOrder, labelStages map[uuid.UUID]enums.LabelStage) error {
	var blocked []string
	for _, item := range order.Items {
		if item.LabelID == nil {
			continue
		}
		stage, ok := labelStages[*item.LabelID]
		if !ok || stage != enums.LabelStageReadyForProduction {
			blocked = append(blocked, item.LabelID.String())
		}
	}
	if len(blocked) > 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "labels are not ready for production").
			WithDetails(map[string]any{"label_ids": blocked})
	}
	return nil
}

func claim(order *models.ClientOrder, kind enums.NotificationKind, requests []notifications.Request) []notifications.Request {
	due, err := notifications.ShouldSend(order, kind)
	if err != nil || !due {
		return requests
	}
	if err := notifications.MarkSent(order, kind); err != nil {
		return requests
	}
	return append(requests, notifications.Request{
		Kind:     kind,
		OrderID:  order.ID,
		ClientID: order.ClientID,
	})
}
