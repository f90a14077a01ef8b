package pricing

// businessDiscountRate is the flat wholesale discount for business accounts.
const businessDiscountRate = 0.10

// Discount is the result of applying the business discount to a subtotal.
type Discount struct {
	Amount      float64
	NetSubtotal float64
}

// BusinessDiscount applies the flat business-account discount. The discount
// never exceeds the subtotal, so the net subtotal stays non-negative even if
// the rate is ever reconfigured above 100%.
func BusinessDiscount(subtotal float64, isBusinessAccount bool) Discount {
	if !isBusinessAccount || subtotal <= 0 {
		return Discount{Amount: 0, NetSubtotal: subtotal}
	}

	amount := roundNPR(subtotal * businessDiscountRate)
	if amount > subtotal {
		amount = subtotal
	}

	return Discount{Amount: amount, NetSubtotal: subtotal - amount}
}
