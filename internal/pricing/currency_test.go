package pricing

import (
	"errors"
	"math"
	"testing"
)

func TestToUSDUsesPublishedRate(t *testing.T) {
	table := DefaultCurrencyTable()
	if got := table.ToUSD(1000); got != 7.49 {
		t.Fatalf("ToUSD(1000) = %v, want 7.49", got)
	}
	if got := table.ToUSD(133.5); got != 1 {
		t.Fatalf("ToUSD(133.5) = %v, want 1", got)
	}
}

func TestToNPRReturnsWholeRupees(t *testing.T) {
	table := DefaultCurrencyTable()
	got := table.ToNPR(7.49)
	if got != math.Trunc(got) {
		t.Fatalf("ToNPR(7.49) = %v, expected whole rupees", got)
	}
}

func TestCurrencyRoundTrip(t *testing.T) {
	table := DefaultCurrencyTable()
	for _, amount := range []float64{50, 450, 500, 1000, 12345} {
		back := table.ToNPR(table.ToUSD(amount))
		if math.Abs(back-amount) > 1 {
			t.Fatalf("round trip for %v NPR drifted to %v", amount, back)
		}
	}
}

func TestConvertThroughPivot(t *testing.T) {
	table := CurrencyTable{NPRPerUSD: 100, NPRPerINR: 2}

	got, err := table.Convert(200, CurrencyNPR, CurrencyUSD)
	if err != nil || got != 2 {
		t.Fatalf("NPR->USD = %v (err %v), want 2", got, err)
	}

	got, err = table.Convert(3, CurrencyUSD, CurrencyINR)
	if err != nil || got != 150 {
		t.Fatalf("USD->INR = %v (err %v), want 150", got, err)
	}

	got, err = table.Convert(10, CurrencyINR, CurrencyNPR)
	if err != nil || got != 20 {
		t.Fatalf("INR->NPR = %v (err %v), want 20", got, err)
	}
}

func TestConvertSameCurrencyRounds(t *testing.T) {
	table := DefaultCurrencyTable()
	got, err := table.Convert(100.6, CurrencyNPR, CurrencyNPR)
	if err != nil || got != 101 {
		t.Fatalf("NPR->NPR = %v (err %v), want 101", got, err)
	}
	got, err = table.Convert(1.005, CurrencyUSD, CurrencyUSD)
	if err != nil {
		t.Fatalf("USD->USD returned error: %v", err)
	}
	if got != round2(1.005) {
		t.Fatalf("USD->USD = %v, expected 2dp rounding", got)
	}
}

func TestConvertRejectsUnknownCurrency(t *testing.T) {
	table := DefaultCurrencyTable()
	if _, err := table.Convert(1, Currency("EUR"), CurrencyNPR); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency for unknown source, got %v", err)
	}
	if _, err := table.Convert(1, CurrencyNPR, Currency("GBP")); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency for unknown target, got %v", err)
	}
}
