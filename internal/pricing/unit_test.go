package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestConvertUnitMassAndVolume(t *testing.T) {
	tests := []struct {
		qty      float64
		from, to Unit
		want     float64
	}{
		{2, UnitKg, UnitGram, 2000},
		{500, UnitGram, UnitKg, 0.5},
		{1.5, UnitLiter, UnitMl, 1500},
		{250, UnitMl, UnitLiter, 0.25},
		{1, UnitHalfLiter, UnitMl, 500},
		{2, UnitHalfLiter, UnitLiter, 1},
		{3, UnitLiter, UnitHalfLiter, 6},
		{1, UnitKg, UnitKg, 1},
	}

	for _, tt := range tests {
		got, err := ConvertUnit(tt.qty, tt.from, tt.to)
		if err != nil {
			t.Fatalf("ConvertUnit(%v, %s, %s) returned error: %v", tt.qty, tt.from, tt.to, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("ConvertUnit(%v, %s, %s) = %v, want %v", tt.qty, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConvertUnitRejectsCrossFamily(t *testing.T) {
	_, err := ConvertUnit(1, UnitKg, UnitLiter)
	if !errors.Is(err, ErrIncompatibleUnit) {
		t.Fatalf("expected ErrIncompatibleUnit, got %v", err)
	}
	_, err = ConvertUnit(1, UnitMl, UnitGram)
	if !errors.Is(err, ErrIncompatibleUnit) {
		t.Fatalf("expected ErrIncompatibleUnit, got %v", err)
	}
}

func TestConvertUnitRejectsBadQuantity(t *testing.T) {
	for _, qty := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := ConvertUnit(qty, UnitKg, UnitGram); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("expected ErrInvalidQuantity for qty=%v, got %v", qty, err)
		}
	}
}

func TestConvertUnitRejectsUnknownUnit(t *testing.T) {
	if _, err := ConvertUnit(1, Unit("dozen"), UnitKg); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestConvertUnitRoundTrip(t *testing.T) {
	pairs := []struct{ a, b Unit }{
		{UnitKg, UnitGram},
		{UnitLiter, UnitMl},
		{UnitLiter, UnitHalfLiter},
		{UnitHalfLiter, UnitMl},
	}

	for _, pair := range pairs {
		forward, err := ConvertUnit(3.7, pair.a, pair.b)
		if err != nil {
			t.Fatalf("forward conversion %s->%s failed: %v", pair.a, pair.b, err)
		}
		back, err := ConvertUnit(forward, pair.b, pair.a)
		if err != nil {
			t.Fatalf("back conversion %s->%s failed: %v", pair.b, pair.a, err)
		}
		if math.Abs(back-3.7) > 1e-9 {
			t.Fatalf("round trip %s<->%s drifted: got %v", pair.a, pair.b, back)
		}
	}
}
