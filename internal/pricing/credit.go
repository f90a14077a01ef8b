package pricing

import (
	"fmt"
	"time"
)

// CreditDueDate computes when a credit order falls due. Monthly terms bill one
// calendar month out, per-bill terms a week out. Any other term means no due
// date: the credit limit alone governs.
func CreditDueDate(term CreditTerm, now time.Time) *time.Time {
	var due time.Time

	switch term {
	case CreditMonthly:
		due = now.AddDate(0, 1, 0)
	case CreditPerBill:
		due = now.AddDate(0, 0, 7)
	default:
		return nil
	}

	return &due
}

// CreditHeadroom returns how much of the account's credit limit is still
// available.
func (p AccountProfile) CreditHeadroom() float64 {
	return p.CreditLimit - p.CreditBalance
}

// ValidateCredit checks that the account may pay the given amount on credit.
// Only business accounts qualify, and the remaining headroom must cover the
// full order.
func ValidateCredit(profile AccountProfile, grandTotal float64) error {
	if !profile.BusinessAccount {
		return ErrCreditNotAllowed
	}

	headroom := profile.CreditHeadroom()
	if headroom < grandTotal {
		return fmt.Errorf("%w: need %.0f, headroom %.0f", ErrInsufficientCredit, grandTotal, headroom)
	}

	return nil
}
