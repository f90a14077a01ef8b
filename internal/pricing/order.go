package pricing

import (
	"fmt"
	"time"
)

// CheckoutInput bundles everything a single total computation reads. The
// engine never mutates it and holds no state across calls, so the same input
// always produces the same totals.
type CheckoutInput struct {
	ShoppingListSubtotal float64
	Lines                []Line
	Account              AccountProfile
	DeliveryMethod       DeliveryMethod
	Destination          *GeoPoint
	Shops                []Shop
	Settings             *DeliverySettings
	Legacy               LegacyFeeRule
	PaymentMethod        PaymentMethod
	Rates                CurrencyTable
	Now                  time.Time
}

// OrderTotals is the authoritative pricing result persisted onto an order.
// Once written it is never recomputed; refunds and replacement approvals are
// recorded as separate adjustment events.
type OrderTotals struct {
	Subtotal          float64
	BusinessDiscount  float64
	DeliveryFee       float64
	GrandTotal        float64
	GrandTotalUSD     *float64
	NearestShopID     string
	NearestShopName   string
	NearestDistanceKm *float64
	CreditDueDate     *time.Time
}

// ComputeOrder turns a checkout draft into the order's final totals.
//
// The step order is fixed: the free-delivery threshold compares against the
// pre-discount subtotal, so the discount must never be folded into the
// subtotal handed to the fee computation.
func ComputeOrder(in CheckoutInput) (OrderTotals, error) {
	if !in.PaymentMethod.Valid() {
		return OrderTotals{}, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, in.PaymentMethod)
	}

	if len(in.Lines) == 0 && in.ShoppingListSubtotal <= 0 {
		return OrderTotals{}, ErrEmptyOrder
	}

	subtotal := in.ShoppingListSubtotal
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			return OrderTotals{}, fmt.Errorf("%w: product %s", ErrInvalidQuantity, line.ProductID)
		}
		subtotal += line.Total()
	}
	subtotal = roundNPR(subtotal)

	discount := BusinessDiscount(subtotal, in.Account.BusinessAccount)

	quote, err := ComputeDeliveryFee(DeliveryInput{
		Destination:     in.Destination,
		Shops:           in.Shops,
		Settings:        in.Settings,
		Subtotal:        subtotal,
		Method:          in.DeliveryMethod,
		BusinessAccount: in.Account.BusinessAccount,
		Legacy:          in.Legacy,
	})
	if err != nil {
		return OrderTotals{}, err
	}

	totals := OrderTotals{
		Subtotal:         subtotal,
		BusinessDiscount: discount.Amount,
		DeliveryFee:      roundNPR(quote.Fee),
	}
	totals.GrandTotal = roundNPR(discount.NetSubtotal + totals.DeliveryFee)
	if totals.GrandTotal < 0 {
		totals.GrandTotal = 0
	}

	if quote.HasDistance && quote.NearestShop != nil {
		totals.NearestShopID = quote.NearestShop.ID
		totals.NearestShopName = quote.NearestShop.Name
		distance := quote.DistanceKm
		totals.NearestDistanceKm = &distance
	}

	if in.PaymentMethod.International() {
		rates := in.Rates
		if !rates.Valid() {
			rates = DefaultCurrencyTable()
		}
		usd := rates.ToUSD(totals.GrandTotal)
		totals.GrandTotalUSD = &usd
	}

	if in.PaymentMethod == PaymentCredit {
		if err := ValidateCredit(in.Account, totals.GrandTotal); err != nil {
			return OrderTotals{}, err
		}
		totals.CreditDueDate = CreditDueDate(in.Account.CreditTerms, in.Now)
	}

	return totals, nil
}
