package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/labelworks-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/labelworks-backend/pkg/errors"
	"github.com/angelmondragon/labelworks-backend/pkg/types"
)

var (
	hundred = decimal.NewFromInt(100)
)

// Line is one order line entering the totals computation.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineQuote is the priced outcome of a quantity selection against a pricing
// structure. Total is authoritative; UnitPrice is the effective price for
// simple structures and the quantity-weighted average otherwise.
type LineQuote struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Totals is the monetary summary of an order.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// round2 rounds half-up to two decimals. Money in this engine is always
// non-negative, so decimal's round-half-away-from-zero matches half-up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeLineTotal prices a quantity selection against a pricing structure.
// Every arithmetic step is rounded to two decimals so repeated computation
// never drifts.
func ComputeLineTotal(structure types.PricingStructure, selection types.QuantitySelection) (LineQuote, error) {
	switch structure.Kind {
	case enums.PricingStructureSimple:
		return quoteSimple(structure, selection)
	case enums.PricingStructureMultiType:
		return quoteKeyed(structure.Kind, structure.Types, selection)
	case enums.PricingStructureVariants:
		return quoteKeyed(structure.Kind, variantPrices(structure.Variants), selection)
	default:
		return LineQuote{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown pricing structure").
			WithDetails(map[string]any{"kind": string(structure.Kind)})
	}
}

func quoteSimple(structure types.PricingStructure, selection types.QuantitySelection) (LineQuote, error) {
	if structure.Simple == nil {
		return LineQuote{}, pkgerrors.New(pkgerrors.CodeValidation, "simple pricing data missing")
	}
	if selection.Quantity < 0 {
		return LineQuote{}, invalidQuantity(selection.Quantity)
	}
	unit := round2(structure.Simple.Effective())
	total := round2(unit.Mul(decimal.NewFromInt(int64(selection.Quantity))))
	return LineQuote{
		Quantity:  selection.Quantity,
		UnitPrice: unit,
		Total:     total,
	}, nil
}

func quoteKeyed(kind enums.PricingStructure, prices map[string]types.PricePoint, selection types.QuantitySelection) (LineQuote, error) {
	if len(prices) == 0 {
		return LineQuote{}, pkgerrors.New(pkgerrors.CodeValidation, "pricing data missing").
			WithDetails(map[string]any{"kind": string(kind)})
	}

	// Deterministic iteration keeps rounding behavior stable across calls.
	keys := make([]string, 0, len(selection.Breakdown))
	for key := range selection.Breakdown {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	total := decimal.Zero
	quantity := 0
	for _, key := range keys {
		qty := selection.Breakdown[key]
		if qty < 0 {
			return LineQuote{}, invalidQuantity(qty)
		}
		point, ok := prices[key]
		if !ok {
			return LineQuote{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown pricing key").
				WithDetails(map[string]any{"key": key, "kind": string(kind)})
		}
		unit := round2(point.Effective())
		total = round2(total.Add(round2(unit.Mul(decimal.NewFromInt(int64(qty))))))
		quantity += qty
	}

	quote := LineQuote{Quantity: quantity, Total: total}
	if quantity > 0 {
		quote.UnitPrice = round2(total.Div(decimal.NewFromInt(int64(quantity))))
	}
	return quote, nil
}

func variantPrices(variants []types.VariantPrice) map[string]types.PricePoint {
	prices := make(map[string]types.PricePoint, len(variants))
	for _, variant := range variants {
		prices[variant.Label] = variant.PricePoint
	}
	return prices
}

// ComputeOrderTotals derives the order summary from quantity/unit-price lines
// and an order-level discount. The function is pure and deterministic.
func ComputeOrderTotals(lines []Line, discount types.OrderDiscount) (Totals, error) {
	lineTotals := make([]decimal.Decimal, 0, len(lines))
	for _, line := range lines {
		if line.Quantity < 0 {
			return Totals{}, invalidQuantity(line.Quantity)
		}
		lineTotals = append(lineTotals, round2(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))))
	}
	return TotalsFromLineTotals(lineTotals, discount)
}

// TotalsFromLineTotals derives the order summary from already-priced line
// totals, clamping the discount so the total never goes negative.
func TotalsFromLineTotals(lineTotals []decimal.Decimal, discount types.OrderDiscount) (Totals, error) {
	subtotal := decimal.Zero
	for _, lineTotal := range lineTotals {
		subtotal = round2(subtotal.Add(lineTotal))
	}

	discountAmount, err := discountAmountFor(subtotal, discount)
	if err != nil {
		return Totals{}, err
	}

	total := round2(subtotal.Sub(discountAmount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
	}, nil
}

func discountAmountFor(subtotal decimal.Decimal, discount types.OrderDiscount) (decimal.Decimal, error) {
	var computed decimal.Decimal
	switch discount.Type {
	case enums.DiscountTypeFlat:
		if discount.Value.IsNegative() {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "flat discount must be non-negative").
				WithDetails(map[string]any{"value": discount.Value.String()})
		}
		computed = round2(discount.Value)
	case enums.DiscountTypePercentage:
		if discount.Value.IsNegative() || discount.Value.GreaterThan(hundred) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "percentage discount must be between 0 and 100").
				WithDetails(map[string]any{"value": discount.Value.String()})
		}
		computed = round2(subtotal.Mul(discount.Value).Div(hundred))
	case "":
		computed = decimal.Zero
	default:
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unknown discount type").
			WithDetails(map[string]any{"type": string(discount.Type)})
	}

	if computed.GreaterThan(subtotal) {
		computed = subtotal
	}
	return computed, nil
}

func invalidQuantity(qty int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative").
		WithDetails(map[string]any{"quantity": qty})
}
