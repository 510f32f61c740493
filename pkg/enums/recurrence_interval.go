package enums

import "fmt"

// RecurrenceInterval is the cadence at which recurring orders are generated.
type RecurrenceInterval string

const (
	RecurrenceIntervalMonthly   RecurrenceInterval = "monthly"
	RecurrenceIntervalBimonthly RecurrenceInterval = "bimonthly"
	RecurrenceIntervalQuarterly RecurrenceInterval = "quarterly"
)

var recurrenceIntervalMonths = map[RecurrenceInterval]int{
	RecurrenceIntervalMonthly:   1,
	RecurrenceIntervalBimonthly: 2,
	RecurrenceIntervalQuarterly: 3,
}

// String implements fmt.Stringer.
func (r RecurrenceInterval) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RecurrenceInterval.
func (r RecurrenceInterval) IsValid() bool {
	_, ok := recurrenceIntervalMonths[r]
	return ok
}

// Months returns the interval length in calendar months, or 0 when unknown.
func (r RecurrenceInterval) Months() int {
	return recurrenceIntervalMonths[r]
}

// ParseRecurrenceInterval converts raw input into a RecurrenceInterval.
func ParseRecurrenceInterval(value string) (RecurrenceInterval, error) {
	candidate := RecurrenceInterval(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid recurrence interval %q", value)
	}
	return candidate, nil
}
