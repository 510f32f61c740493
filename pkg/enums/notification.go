package enums

import "fmt"

// NotificationKind identifies a lifecycle notification for a client order.
type NotificationKind string

const (
	// NotificationKindSevenDayReminder fires once when delivery is within seven days.
	NotificationKindSevenDayReminder NotificationKind = "seven_day_reminder"
	// NotificationKindReadyToShip fires once when the order enters ready_to_ship.
	NotificationKindReadyToShip NotificationKind = "ready_to_ship"
	// NotificationKindShipped fires once when the order ships.
	NotificationKindShipped NotificationKind = "shipped"
)

var validNotificationKinds = []NotificationKind{
	NotificationKindSevenDayReminder,
	NotificationKindReadyToShip,
	NotificationKindShipped,
}

// String implements fmt.Stringer.
func (n NotificationKind) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationKind.
func (n NotificationKind) IsValid() bool {
	for _, candidate := range validNotificationKinds {
		if candidate == n {
			return true
		}
	}
	return false
}

// NotificationKinds returns every lifecycle notification kind.
func NotificationKinds() []NotificationKind {
	kinds := make([]NotificationKind, len(validNotificationKinds))
	copy(kinds, validNotificationKinds)
	return kinds
}

// ParseNotificationKind converts raw input into a NotificationKind.
func ParseNotificationKind(value string) (NotificationKind, error) {
	for _, candidate := range validNotificationKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification kind %q", value)
}
