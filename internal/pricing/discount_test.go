package pricing

import "testing"

func TestBusinessDiscountTenPercent(t *testing.T) {
	d := BusinessDiscount(1000, true)
	if d.Amount != 100 || d.NetSubtotal != 900 {
		t.Fatalf("discount = %+v, want amount 100 net 900", d)
	}
}

func TestNoDiscountForRegularAccounts(t *testing.T) {
	d := BusinessDiscount(1000, false)
	if d.Amount != 0 || d.NetSubtotal != 1000 {
		t.Fatalf("discount = %+v, want no discount", d)
	}
}

func TestDiscountNeverExceedsSubtotal(t *testing.T) {
	for _, subtotal := range []float64{0, 1, 7, 99, 450, 100000} {
		d := BusinessDiscount(subtotal, true)
		if d.Amount < 0 || d.Amount > subtotal {
			t.Fatalf("subtotal %v: discount %v out of range", subtotal, d.Amount)
		}
		if d.NetSubtotal < 0 {
			t.Fatalf("subtotal %v: net subtotal %v went negative", subtotal, d.NetSubtotal)
		}
		if d.Amount+d.NetSubtotal != subtotal {
			t.Fatalf("subtotal %v: discount %v + net %v does not add back", subtotal, d.Amount, d.NetSubtotal)
		}
	}
}

func TestDiscountOnNonPositiveSubtotal(t *testing.T) {
	d := BusinessDiscount(0, true)
	if d.Amount != 0 || d.NetSubtotal != 0 {
		t.Fatalf("discount on zero subtotal = %+v, want zeroes", d)
	}
}
