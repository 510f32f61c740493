package enums

import "fmt"

// DiscountType describes how an order-level discount is applied.
type DiscountType string

const (
	// DiscountTypeFlat subtracts a fixed amount from the subtotal.
	DiscountTypeFlat DiscountType = "flat"
	// DiscountTypePercentage subtracts value/100 of the subtotal.
	DiscountTypePercentage DiscountType = "percentage"
)

var validDiscountTypes = []DiscountType{
	DiscountTypeFlat,
	DiscountTypePercentage,
}

// String implements fmt.Stringer.
func (d DiscountType) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DiscountType.
func (d DiscountType) IsValid() bool {
	for _, candidate := range validDiscountTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDiscountType converts raw input into a DiscountType. The legacy
// spelling "percent" is accepted and canonicalized to "percentage".
func ParseDiscountType(value string) (DiscountType, error) {
	if value == "percent" {
		return DiscountTypePercentage, nil
	}
	for _, candidate := range validDiscountTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount type %q", value)
}
