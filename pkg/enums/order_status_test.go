package enums

import "testing"

func TestOrderStatusNextWalksPipeline(t *testing.T) {
	expected := []OrderStatus{
		OrderStatusStage1,
		OrderStatusStage2,
		OrderStatusStage3,
		OrderStatusStage4,
		OrderStatusReadyToShip,
		OrderStatusShipped,
	}
	current := OrderStatusWaiting
	for _, want := range expected {
		next, ok := current.Next()
		if !ok {
			t.Fatalf("expected %s to have a next status", current)
		}
		if next != want {
			t.Fatalf("expected %s after %s, got %s", want, current, next)
		}
		current = next
	}
	if _, ok := current.Next(); ok {
		t.Fatal("shipped should have no next status")
	}
}

func TestOrderStatusTerminality(t *testing.T) {
	if !OrderStatusShipped.IsTerminal() {
		t.Fatal("shipped should be terminal")
	}
	if !OrderStatusCancelled.IsTerminal() {
		t.Fatal("cancelled should be terminal")
	}
	if OrderStatusReadyToShip.IsTerminal() {
		t.Fatal("ready_to_ship should not be terminal")
	}
	if _, ok := OrderStatusCancelled.Next(); ok {
		t.Fatal("cancelled should have no next status")
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("ready_to_ship")
	if err != nil {
		t.Fatalf("ParseOrderStatus: %v", err)
	}
	if status != OrderStatusReadyToShip {
		t.Fatalf("unexpected status: %s", status)
	}
	if _, err := ParseOrderStatus("done"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestParseDiscountTypeCanonicalizesPercent(t *testing.T) {
	parsed, err := ParseDiscountType("percent")
	if err != nil {
		t.Fatalf("ParseDiscountType: %v", err)
	}
	if parsed != DiscountTypePercentage {
		t.Fatalf("expected percentage, got %s", parsed)
	}
}
