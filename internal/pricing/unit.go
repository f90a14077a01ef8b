package pricing

import (
	"fmt"
	"math"
)

// Unit identifies a sellable measurement unit.
type Unit string

const (
	UnitKg        Unit = "kg"
	UnitGram      Unit = "gram"
	UnitLiter     Unit = "liter"
	UnitMl        Unit = "ml"
	UnitHalfLiter Unit = "half-liter"
)

type unitFamily string

const (
	familyMass   unitFamily = "mass"
	familyVolume unitFamily = "volume"
)

// unitRules maps each unit to its family and its factor into the family base
// unit (gram for mass, ml for volume).
var unitRules = map[Unit]struct {
	family unitFamily
	toBase float64
}{
	UnitKg:        {familyMass, 1000},
	UnitGram:      {familyMass, 1},
	UnitLiter:     {familyVolume, 1000},
	UnitMl:        {familyVolume, 1},
	UnitHalfLiter: {familyVolume, 500},
}

// KnownUnit reports whether u is a unit the storefront sells in.
func KnownUnit(u Unit) bool {
	_, ok := unitRules[u]
	return ok
}

// ConvertUnit converts a quantity between two units of the same family.
// Cross-family conversions (e.g. kg to liter) are rejected.
func ConvertUnit(quantity float64, from, to Unit) (float64, error) {
	if quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidQuantity, quantity)
	}

	fromRule, ok := unitRules[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	toRule, ok := unitRules[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}

	if fromRule.family != toRule.family {
		return 0, fmt.Errorf("%w: %s to %s", ErrIncompatibleUnit, from, to)
	}

	return quantity * fromRule.toBase / toRule.toBase, nil
}
