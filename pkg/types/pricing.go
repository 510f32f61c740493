package types

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
)

// PricePoint is a list price with an optional promotional price. The
// promotional price wins only when present and greater than zero.
type PricePoint struct {
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
}

// Effective resolves the unit price for this point.
func (p PricePoint) Effective() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
		return *p.DiscountPrice
	}
	return p.Price
}

// VariantPrice prices a single labeled variant.
type VariantPrice struct {
	Label string `json:"label"`
	PricePoint
}

// PricingStructure is the serialized pricing shape stored on a product.
// Exactly one of the shape fields is meaningful, chosen by Kind.
type PricingStructure struct {
	Kind     enums.PricingStructure `json:"kind"`
	Simple   *PricePoint            `json:"simple,omitempty"`
	Types    map[string]PricePoint  `json:"types,omitempty"`
	Variants []VariantPrice         `json:"variants,omitempty"`
}

// QuantitySelection captures the quantities a buyer entered against a
// pricing structure: a single quantity for simple pricing, or a per-key
// breakdown for multi-type and variant pricing.
type QuantitySelection struct {
	Quantity  int            `json:"quantity,omitempty"`
	Breakdown map[string]int `json:"breakdown,omitempty"`
}

// TotalQuantity sums every entered quantity.
func (s QuantitySelection) TotalQuantity() int {
	total := s.Quantity
	for _, qty := range s.Breakdown {
		total += qty
	}
	return total
}

// OrderDiscount is the order-level discount snapshot.
type OrderDiscount struct {
	Type  enums.DiscountType `json:"type"`
	Value decimal.Decimal    `json:"value"`
}
