package pricing

import "errors"

// Validation failures are returned as wrapped sentinel errors so callers can
// match with errors.Is and render a specific message.
var (
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrUnknownUnit          = errors.New("unknown unit")
	ErrIncompatibleUnit     = errors.New("incompatible unit conversion")
	ErrUnknownCurrency      = errors.New("unknown currency")
	ErrInvalidLocation      = errors.New("invalid location")
	ErrInvalidConfiguration = errors.New("invalid delivery configuration")
	ErrInsufficientCredit   = errors.New("insufficient credit")
	ErrCreditNotAllowed     = errors.New("credit payment not allowed for this account")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrEmptyOrder           = errors.New("order has no items")
)
