package notifications

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/labelworks-backend/pkg/db/models"
	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
)

// Request asks the dispatcher to send one lifecycle notification. Requests
// are emitted by the order machine and the reminder sweep only after the
// matching flag has been claimed, so dispatching is at-most-once per kind.
type Request struct {
	Kind     enums.NotificationKind `json:"kind"`
	OrderID  uuid.UUID              `json:"order_id"`
	ClientID uuid.UUID              `json:"client_id"`
}

// ShouldSend reports whether the notification of the given kind has not been
// decided for the order yet.
func ShouldSend(order *models.ClientOrder, kind enums.NotificationKind) (bool, error) {
	flag, err := flagFor(order, kind)
	if err != nil {
		return false, err
	}
	return !*flag, nil
}

// MarkSent claims the flag for the given kind. Flags are monotonic: marking
// an already-sent kind is a no-op success.
func MarkSent(order *models.ClientOrder, kind enums.NotificationKind) error {
	flag, err := flagFor(order, kind)
	if err != nil {
		return err
	}
	*flag = true
	return nil
}

// Reset clears the flag for the given kind. Administrative override only;
// nothing in the lifecycle calls this.
func Reset(order *models.ClientOrder, kind enums.NotificationKind) error {
	flag, err := flagFor(order, kind)
	if err != nil {
		return err
	}
	*flag = false
	return nil
}

func flagFor(order *models.ClientOrder, kind enums.NotificationKind) (*bool, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	switch kind {
	case enums.NotificationKindSevenDayReminder:
		return &order.NotificationFlags.SevenDayReminder, nil
	case enums.NotificationKindReadyToShip:
		return &order.NotificationFlags.ReadyToShip, nil
	case enums.NotificationKindShipped:
		return &order.NotificationFlags.Shipped, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown notification kind").
			WithDetails(map[string]any{"kind": kind.String()})
	}
}
