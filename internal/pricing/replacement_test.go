package pricing

import "testing"

func TestCompareReplacementHigher(t *testing.T) {
	original := Line{ProductID: "p1", UnitPrice: 100, Quantity: 2}
	replacement := Line{ProductID: "p2", UnitPrice: 120, Quantity: 2}

	got := CompareReplacement(original, replacement)
	if got.Delta != 20 || got.Class != PriceHigher {
		t.Fatalf("comparison = %+v, want delta +20 higher", got)
	}
}

func TestCompareReplacementLower(t *testing.T) {
	got := CompareReplacement(Line{UnitPrice: 80}, Line{UnitPrice: 65})
	if got.Delta != -15 || got.Class != PriceLower {
		t.Fatalf("comparison = %+v, want delta -15 lower", got)
	}
}

func TestCompareReplacementEqual(t *testing.T) {
	got := CompareReplacement(Line{UnitPrice: 55}, Line{UnitPrice: 55})
	if got.Delta != 0 || got.Class != PriceEqual {
		t.Fatalf("comparison = %+v, want equal", got)
	}
}

func TestCompareReplacementDeltaIsPerUnit(t *testing.T) {
	// Quantity must not leak into the advisory delta.
	original := Line{UnitPrice: 100, Quantity: 5}
	replacement := Line{UnitPrice: 110, Quantity: 5}

	got := CompareReplacement(original, replacement)
	if got.Delta != 10 {
		t.Fatalf("delta = %v, want per-unit 10 regardless of quantity", got.Delta)
	}
	if impact := got.OrderImpact(original.Quantity); impact != 50 {
		t.Fatalf("order impact = %v, want 50", impact)
	}
}

func TestOrderImpactIgnoresBadQuantity(t *testing.T) {
	got := CompareReplacement(Line{UnitPrice: 100}, Line{UnitPrice: 120})
	if impact := got.OrderImpact(0); impact != 0 {
		t.Fatalf("impact for zero quantity = %v, want 0", impact)
	}
	if impact := got.OrderImpact(-3); impact != 0 {
		t.Fatalf("impact for negative quantity = %v, want 0", impact)
	}
}
