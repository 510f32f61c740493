package enums

import "fmt"

// OrderStatus tracks the production lifecycle of a client order.
type OrderStatus string

const (
	OrderStatusWaiting     OrderStatus = "waiting"
	OrderStatusStage1      OrderStatus = "stage_1"
	OrderStatusStage2      OrderStatus = "stage_2"
	OrderStatusStage3      OrderStatus = "stage_3"
	OrderStatusStage4      OrderStatus = "stage_4"
	OrderStatusReadyToShip OrderStatus = "ready_to_ship"
	OrderStatusShipped     OrderStatus = "shipped"
	OrderStatusCancelled   OrderStatus = "cancelled"
)

// orderStatusPipeline is the forward production path. Cancelled sits outside
// the pipeline and is reachable from any non-shipped status.
var orderStatusPipeline = []OrderStatus{
	OrderStatusWaiting,
	OrderStatusStage1,
	OrderStatusStage2,
	OrderStatusStage3,
	OrderStatusStage4,
	OrderStatusReadyToShip,
	OrderStatusShipped,
}

var validOrderStatuses = append(append([]OrderStatus{}, orderStatusPipeline...), OrderStatusCancelled)

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status accepts no further advances.
// Cancelled is soft-terminal: the order stays queryable but never moves again.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusShipped || o == OrderStatusCancelled
}

// Next returns the following pipeline status. The boolean is false at the end
// of the pipeline and for cancelled orders.
func (o OrderStatus) Next() (OrderStatus, bool) {
	for i, candidate := range orderStatusPipeline {
		if candidate == o && i+1 < len(orderStatusPipeline) {
			return orderStatusPipeline[i+1], true
		}
	}
	return "", false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
