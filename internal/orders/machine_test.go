package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

func newOrder(status enums.OrderStatus) *models.ClientOrder {
	return &models.ClientOrder{
		ID:       uuid.New(),
		ClientID: uuid.New(),
		Status:   status,
	}
}

func labelBackedOrder(status enums.OrderStatus, labelID uuid.UUID) *models.ClientOrder {
	order := newOrder(status)
	order.Items = []models.OrderItem{
		{OrderID: order.ID, Name: "gummies", LabelID: &labelID, Quantity: 100},
	}
	return order
}

func TestAdvanceWalksPipelineToShipped(t *testing.T) {
	machine := NewMachine()
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	order := newOrder(enums.OrderStatusWaiting)

	expected := []enums.OrderStatus{
		enums.OrderStatusStage1,
		enums.OrderStatusStage2,
		enums.OrderStatusStage3,
		enums.OrderStatusStage4,
		enums.OrderStatusReadyToShip,
		enums.OrderStatusShipped,
	}
	for _, want := range expected {
		if _, err := machine.Advance(order, nil, now); err != nil {
			t.Fatalf("advance to %s: %v", want, err)
		}
		if order.Status != want {
			t.Fatalf("expected %s, got %s", want, order.Status)
		}
	}

	_, err := machine.Advance(order, nil, now)
	if !pkgerrors.HasCode(err, pkgerrors.CodeTerminalState) {
		t.Fatalf("expected terminal state error after shipped, got %v", err)
	}
}

func TestAdvanceShippedStampsShipDate(t *testing.T) {
	machine := NewMachine()
	now := time.Date(2026, 4, 2, 15, 30, 0, 0, time.UTC)
	order := newOrder(enums.OrderStatusReadyToShip)

	requests, err := machine.Advance(order, nil, now)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if order.ActualShipDate == nil || !order.ActualShipDate.Equal(now) {
		t.Fatalf("expected actual ship date %s, got %v", now, order.ActualShipDate)
	}
	if len(requests) != 1 || requests[0].Kind != enums.NotificationKindShipped {
		t.Fatalf("expected a shipped notification request, got %v", requests)
	}
	if !order.NotificationFlags.Shipped {
		t.Fatal("shipped flag must be claimed")
	}
}

func TestAdvanceIntoReadyToShipEmitsRequestOnce(t *testing.T) {
	machine := NewMachine()
	now := time.Now()
	order := newOrder(enums.OrderStatusStage4)
	order.NotificationFlags.ReadyToShip = true

	requests, err := machine.Advance(order, nil, now)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if len(requests) != 0 {
		t.Fatalf("claimed flag must suppress the request, got %v", requests)
	}
}

func TestAdvanceBlocksUnreadyLabels(t *testing.T) {
	machine := NewMachine()
	labelID := uuid.New()
	order := labelBackedOrder(enums.OrderStatusStage4, labelID)

	stages := map[uuid.UUID]enums.LabelStage{labelID: enums.LabelStageSubmittedToOLCC}
	_, err := machine.Advance(order, stages, time.Now())
	if !pkgerrors.HasCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict for unready label, got %v", err)
	}
	if order.Status != enums.OrderStatusStage4 {
		t.Fatalf("failed advance must not move the order, got %s", order.Status)
	}
}

func TestAdvancePassesWithProductionReadyLabels(t *testing.T) {
	machine := NewMachine()
	labelID := uuid.New()
	order := labelBackedOrder(enums.OrderStatusStage4, labelID)

	stages := map[uuid.UUID]enums.LabelStage{labelID: enums.LabelStageReadyForProduction}
	requests, err := machine.Advance(order, stages, time.Now())
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if order.Status != enums.OrderStatusReadyToShip {
		t.Fatalf("expected ready_to_ship, got %s", order.Status)
	}
	if len(requests) != 1 || requests[0].Kind != enums.NotificationKindReadyToShip {
		t.Fatalf("expected a ready_to_ship request, got %v", requests)
	}
}

func TestAdvanceMidPipelineIgnoresLabels(t *testing.T) {
	machine := NewMachine()
	labelID := uuid.New()
	order := labelBackedOrder(enums.OrderStatusStage1, labelID)

	if _, err := machine.Advance(order, nil, time.Now()); err != nil {
		t.Fatalf("mid-pipeline advance must not check labels: %v", err)
	}
	if order.Status != enums.OrderStatusStage2 {
		t.Fatalf("expected stage_2, got %s", order.Status)
	}
}

func TestCancelFromAnyActiveStatus(t *testing.T) {
	machine := NewMachine()
	now := time.Date(2026, 4, 3, 9, 0, 0, 0, time.UTC)
	reason := "client pulled out"

	for _, status := range []enums.OrderStatus{
		enums.OrderStatusWaiting,
		enums.OrderStatusStage2,
		enums.OrderStatusReadyToShip,
	} {
		order := newOrder(status)
		if err := machine.Cancel(order, &reason, now); err != nil {
			t.Fatalf("cancel from %s: %v", status, err)
		}
		if order.Status != enums.OrderStatusCancelled {
			t.Fatalf("expected cancelled, got %s", order.Status)
		}
		if order.CancelledAt == nil || !order.CancelledAt.Equal(now) {
			t.Fatalf("expected cancelled_at %s, got %v", now, order.CancelledAt)
		}
		if order.CancelReason == nil || *order.CancelReason != reason {
			t.Fatal("expected cancel reason to be recorded")
		}
	}
}

func TestCancelShippedFails(t *testing.T) {
	machine := NewMachine()
	order := newOrder(enums.OrderStatusShipped)

	err := machine.Cancel(order, nil, time.Now())
	if !pkgerrors.HasCode(err, pkgerrors.CodeTerminalState) {
		t.Fatalf("expected terminal state error, got %v", err)
	}
}

func TestCancelCancelledIsNoOp(t *testing.T) {
	machine := NewMachine()
	cancelledAt := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	order := newOrder(enums.OrderStatusCancelled)
	order.CancelledAt = &cancelledAt

	if err := machine.Cancel(order, nil, time.Now()); err != nil {
		t.Fatalf("cancel of cancelled must succeed: %v", err)
	}
	if !order.CancelledAt.Equal(cancelledAt) {
		t.Fatal("repeat cancel must not restamp cancelled_at")
	}
}

func TestAdvanceCancelledFails(t *testing.T) {
	machine := NewMachine()
	order := newOrder(enums.OrderStatusCancelled)

	_, err := machine.Advance(order, nil, time.Now())
	if !pkgerrors.HasCode(err, pkgerrors.CodeTerminalState) {
		t.Fatalf("expected terminal state error, got %v", err)
	}
}

func TestCanEditOnlyWhileWaiting(t *testing.T) {
	machine := NewMachine()

	if !machine.CanEdit(newOrder(enums.OrderStatusWaiting)) {
		t.Fatal("waiting orders must be editable")
	}
	for _, status := range []enums.OrderStatus{
		enums.OrderStatusStage1,
		enums.OrderStatusStage4,
		enums.OrderStatusReadyToShip,
		enums.OrderStatusShipped,
		enums.OrderStatusCancelled,
	} {
		if machine.CanEdit(newOrder(status)) {
			t.Fatalf("%s orders must be locked", status)
		}
	}
}

func TestReminderDueWindow(t *testing.T) {
	machine := NewMachine()
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	inWindow := now.AddDate(0, 0, 5)
	outOfWindow := now.AddDate(0, 0, 12)

	tests := []struct {
		name  string
		setup func(*models.ClientOrder)
		want  bool
	}{
		{"delivery in five days", func(o *models.ClientOrder) { o.DeliveryDate = &inWindow }, true},
		{"delivery in twelve days", func(o *models.ClientOrder) { o.DeliveryDate = &outOfWindow }, false},
		{"no delivery date", func(o *models.ClientOrder) {}, false},
		{"already claimed", func(o *models.ClientOrder) {
			o.DeliveryDate = &inWindow
			o.NotificationFlags.SevenDayReminder = true
		}, false},
		{"cancelled order", func(o *models.ClientOrder) {
			o.DeliveryDate = &inWindow
			o.Status = enums.OrderStatusCancelled
		}, false},
		{"shipped order", func(o *models.ClientOrder) {
			o.DeliveryDate = &inWindow
			o.Status = enums.OrderStatusShipped
		}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			order := newOrder(enums.OrderStatusStage2)
			test.setup(order)
			if got := machine.ReminderDue(order, now); got != test.want {
				t.Fatalf("ReminderDue = %v, want %v", got, test.want)
			}
		})
	}
}

func TestProductionStartFor(t *testing.T) {
	delivery := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	start := ProductionStartFor(&delivery, false)
	if start == nil {
		t.Fatal("expected a production start date")
	}
	want := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected %s, got %s", want, start)
	}

	if ProductionStartFor(&delivery, true) != nil {
		t.Fatal("ship-asap orders must not plan a production start")
	}
	if ProductionStartFor(nil, false) != nil {
		t.Fatal("missing delivery date must not plan a production start")
	}
}
