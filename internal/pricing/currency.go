package pricing

import "fmt"

// Currency identifies a settlement currency.
type Currency string

const (
	CurrencyNPR Currency = "NPR"
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

// CurrencyTable holds the published fixed rates, expressed as rupees per one
// unit of the foreign currency. Rates come from configuration; nothing is
// fetched live.
type CurrencyTable struct {
	NPRPerUSD float64
	NPRPerINR float64
}

// DefaultCurrencyTable returns the published rates used when configuration
// does not override them.
func DefaultCurrencyTable() CurrencyTable {
	return CurrencyTable{NPRPerUSD: 133.5, NPRPerINR: 1.6}
}

// Valid reports whether both rates are usable.
func (t CurrencyTable) Valid() bool {
	return t.NPRPerUSD > 0 && t.NPRPerINR > 0
}

// ToUSD converts a rupee amount to dollars, rounded to 2 decimal places.
func (t CurrencyTable) ToUSD(amountNPR float64) float64 {
	return round2(amountNPR / t.NPRPerUSD)
}

// ToNPR converts a dollar amount to whole rupees.
func (t CurrencyTable) ToNPR(amountUSD float64) float64 {
	return roundNPR(amountUSD * t.NPRPerUSD)
}

// Convert converts between NPR, USD and INR through the rupee pivot. NPR
// results are whole rupees, USD/INR results carry 2 decimal places.
func (t CurrencyTable) Convert(amount float64, from, to Currency) (float64, error) {
	if from == to {
		if from == CurrencyNPR {
			return roundNPR(amount), nil
		}
		return round2(amount), nil
	}

	npr, err := t.toPivot(amount, from)
	if err != nil {
		return 0, err
	}

	switch to {
	case CurrencyNPR:
		return roundNPR(npr), nil
	case CurrencyUSD:
		return round2(npr / t.NPRPerUSD), nil
	case CurrencyINR:
		return round2(npr / t.NPRPerINR), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, to)
	}
}

func (t CurrencyTable) toPivot(amount float64, from Currency) (float64, error) {
	switch from {
	case CurrencyNPR:
		return amount, nil
	case CurrencyUSD:
		return amount * t.NPRPerUSD, nil
	case CurrencyINR:
		return amount * t.NPRPerINR, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, from)
	}
}
