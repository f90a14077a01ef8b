package pricing

import "math"

// PriceClass classifies a replacement against the original line.
type PriceClass string

const (
	PriceHigher PriceClass = "higher"
	PriceLower  PriceClass = "lower"
	PriceEqual  PriceClass = "equal"
)

const priceEqualEpsilon = 1e-9

// ReplacementComparison is the advisory result shown to the admin before a
// substitute is approved. It never adjusts stored order totals on its own.
type ReplacementComparison struct {
	Delta float64
	Class PriceClass
}

// CompareReplacement computes the per-unit price delta between an original
// line and a proposed substitute. The delta is per unit, not scaled by the
// ordered quantity; the quantity stays on the mapping for consumers that want
// the order-level impact.
func CompareReplacement(original, replacement Line) ReplacementComparison {
	delta := replacement.UnitPrice - original.UnitPrice

	class := PriceEqual
	switch {
	case delta > priceEqualEpsilon:
		class = PriceHigher
	case delta < -priceEqualEpsilon:
		class = PriceLower
	default:
		delta = 0
	}

	return ReplacementComparison{Delta: round2(delta), Class: class}
}

// OrderImpact scales the per-unit delta by the original ordered quantity.
func (c ReplacementComparison) OrderImpact(quantity float64) float64 {
	if quantity <= 0 || math.IsNaN(quantity) {
		return 0
	}
	return round2(c.Delta * quantity)
}
