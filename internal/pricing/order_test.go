package pricing

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func baseInput() CheckoutInput {
	return CheckoutInput{
		Lines: []Line{
			{ProductID: "rice", Name: "Basmati Rice", Unit: UnitKg, UnitPrice: 150, Quantity: 3},
		},
		DeliveryMethod: DeliveryHome,
		PaymentMethod:  PaymentCOD,
		Legacy:         DefaultLegacyFeeRule(),
		Rates:          DefaultCurrencyTable(),
		Now:            time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestComputeOrderNoLocationFlatFee(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 450, Quantity: 1}}

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Subtotal != 450 || totals.DeliveryFee != 50 || totals.GrandTotal != 500 {
		t.Fatalf("totals = %+v, want subtotal 450, fee 50, grand 500", totals)
	}
	if totals.GrandTotalUSD != nil {
		t.Fatal("cod order should not carry a USD mirror")
	}
}

func TestComputeOrderFreeDeliveryInsideRadius(t *testing.T) {
	destination := pointAtKm(kathmandu, 3)
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 600, Quantity: 1}}
	in.Destination = &destination
	in.Shops = testShops()
	in.Settings = testSettings()

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.DeliveryFee != 0 || totals.GrandTotal != 600 {
		t.Fatalf("totals = %+v, want fee 0, grand 600", totals)
	}
	if totals.NearestShopID != "shop-1" || totals.NearestDistanceKm == nil {
		t.Fatalf("expected nearest shop attribution, got %+v", totals)
	}
}

func TestComputeOrderPerKmFeeBeyondRadius(t *testing.T) {
	destination := pointAtKm(kathmandu, 14.96)
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 600, Quantity: 1}}
	in.Destination = &destination
	in.Shops = testShops()
	in.Settings = testSettings()

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.DeliveryFee != 100 {
		t.Fatalf("fee = %v, want 50 + 5*10 = 100", totals.DeliveryFee)
	}
	if totals.GrandTotal != 700 {
		t.Fatalf("grand = %v, want 700", totals.GrandTotal)
	}
}

func TestComputeOrderBusinessPickup(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 1000, Quantity: 1}}
	in.DeliveryMethod = DeliveryPickup
	in.PaymentMethod = PaymentPayAtPickup
	in.Account = AccountProfile{BusinessAccount: true}

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.BusinessDiscount != 100 || totals.DeliveryFee != 0 || totals.GrandTotal != 900 {
		t.Fatalf("totals = %+v, want discount 100, fee 0, grand 900", totals)
	}
}

func TestComputeOrderInternationalMirror(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 1000, Quantity: 1}}
	in.DeliveryMethod = DeliveryPickup
	in.PaymentMethod = PaymentPaypal

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.GrandTotal != 1000 {
		t.Fatalf("grand = %v, want 1000", totals.GrandTotal)
	}
	if totals.GrandTotalUSD == nil || *totals.GrandTotalUSD != 7.49 {
		t.Fatalf("usd mirror = %v, want 7.49", totals.GrandTotalUSD)
	}
}

func TestComputeOrderDomesticMethodsSkipMirror(t *testing.T) {
	for _, method := range []PaymentMethod{PaymentCOD, PaymentEsewa, PaymentKhalti, PaymentPayAtPickup} {
		in := baseInput()
		in.DeliveryMethod = DeliveryPickup
		in.PaymentMethod = method

		totals, err := ComputeOrder(in)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", method, err)
		}
		if totals.GrandTotalUSD != nil {
			t.Fatalf("%s: unexpected USD mirror %v", method, *totals.GrandTotalUSD)
		}
	}
}

func TestComputeOrderMergesShoppingListSubtotal(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 200, Quantity: 1}}
	in.ShoppingListSubtotal = 400

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Subtotal != 600 {
		t.Fatalf("subtotal = %v, want cart 200 + list 400", totals.Subtotal)
	}
	// 600 clears the legacy free threshold without a picked location.
	if totals.DeliveryFee != 0 || totals.GrandTotal != 600 {
		t.Fatalf("totals = %+v, want fee 0, grand 600", totals)
	}
}

func TestComputeOrderShoppingListOnly(t *testing.T) {
	in := baseInput()
	in.Lines = nil
	in.ShoppingListSubtotal = 750
	in.DeliveryMethod = DeliveryPickup

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.Subtotal != 750 || totals.GrandTotal != 750 {
		t.Fatalf("totals = %+v, want 750", totals)
	}
}

func TestComputeOrderEmptyOrderRejected(t *testing.T) {
	in := baseInput()
	in.Lines = nil
	in.ShoppingListSubtotal = 0

	if _, err := ComputeOrder(in); !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestComputeOrderUnknownPaymentMethod(t *testing.T) {
	in := baseInput()
	in.PaymentMethod = PaymentMethod("bitcoin")

	if _, err := ComputeOrder(in); !errors.Is(err, ErrUnknownPaymentMethod) {
		t.Fatalf("expected ErrUnknownPaymentMethod, got %v", err)
	}
}

func TestComputeOrderRejectsBadLineQuantity(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 100, Quantity: 0}}

	if _, err := ComputeOrder(in); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestComputeOrderCreditFlow(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 2000, Quantity: 1}}
	in.DeliveryMethod = DeliveryPickup
	in.PaymentMethod = PaymentCredit
	in.Account = AccountProfile{
		BusinessAccount: true,
		CreditLimit:     10000,
		CreditBalance:   5000,
		CreditTerms:     CreditMonthly,
	}

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2000 - 10% business discount.
	if totals.GrandTotal != 1800 {
		t.Fatalf("grand = %v, want 1800", totals.GrandTotal)
	}
	if totals.CreditDueDate == nil {
		t.Fatal("expected a credit due date")
	}
	if want := in.Now.AddDate(0, 1, 0); !totals.CreditDueDate.Equal(want) {
		t.Fatalf("due = %v, want %v", totals.CreditDueDate, want)
	}
}

func TestComputeOrderInsufficientCredit(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 20000, Quantity: 1}}
	in.DeliveryMethod = DeliveryPickup
	in.PaymentMethod = PaymentCredit
	in.Account = AccountProfile{
		BusinessAccount: true,
		CreditLimit:     10000,
		CreditBalance:   5000,
	}

	if _, err := ComputeOrder(in); !errors.Is(err, ErrInsufficientCredit) {
		t.Fatalf("expected ErrInsufficientCredit, got %v", err)
	}
}

func TestComputeOrderCreditRequiresBusinessAccount(t *testing.T) {
	in := baseInput()
	in.PaymentMethod = PaymentCredit
	in.DeliveryMethod = DeliveryPickup

	if _, err := ComputeOrder(in); !errors.Is(err, ErrCreditNotAllowed) {
		t.Fatalf("expected ErrCreditNotAllowed, got %v", err)
	}
}

func TestComputeOrderDeterministic(t *testing.T) {
	destination := pointAtKm(kathmandu, 7.3)
	in := baseInput()
	in.Lines = []Line{
		{ProductID: "p1", UnitPrice: 150, Quantity: 2.5},
		{ProductID: "p2", UnitPrice: 85, Quantity: 1},
	}
	in.Destination = &destination
	in.Shops = testShops()
	in.Settings = testSettings()
	in.ShoppingListSubtotal = 320
	in.PaymentMethod = PaymentCard

	first, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := ComputeOrder(in)
		if err != nil {
			t.Fatalf("run %d: unexpected error %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: totals drifted: %+v vs %+v", i, first, again)
		}
	}
}

func TestComputeOrderWholeRupees(t *testing.T) {
	in := baseInput()
	in.Lines = []Line{{ProductID: "p1", UnitPrice: 33.33, Quantity: 1.7}}
	in.DeliveryMethod = DeliveryPickup

	totals, err := ComputeOrder(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, v := range map[string]float64{
		"subtotal": totals.Subtotal,
		"discount": totals.BusinessDiscount,
		"fee":      totals.DeliveryFee,
		"grand":    totals.GrandTotal,
	} {
		if v != float64(int64(v)) {
			t.Fatalf("%s = %v, expected whole rupees", name, v)
		}
	}
}
