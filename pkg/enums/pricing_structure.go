package enums

import "fmt"

// PricingStructure identifies how a product's unit price is resolved.
type PricingStructure string

const (
	// PricingStructureSimple carries a single list price with an optional discount price.
	PricingStructureSimple PricingStructure = "simple"
	// PricingStructureMultiType prices each product sub-type independently (e.g. hybrid/indica/sativa).
	PricingStructureMultiType PricingStructure = "multi_type"
	// PricingStructureVariants prices each labeled variant independently (e.g. sizes or flavors).
	PricingStructureVariants PricingStructure = "variants"
)

var validPricingStructures = []PricingStructure{
	PricingStructureSimple,
	PricingStructureMultiType,
	PricingStructureVariants,
}

// String implements fmt.Stringer.
func (p PricingStructure) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PricingStructure.
func (p PricingStructure) IsValid() bool {
	for _, candidate := range validPricingStructures {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePricingStructure converts raw input into a PricingStructure.
func ParsePricingStructure(value string) (PricingStructure, error) {
	for _, candidate := range validPricingStructures {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing structure %q", value)
}
