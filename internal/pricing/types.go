package pricing

import "math"

// Line is a single priced cart entry. Quantity is expressed in the product's
// canonical unit by the time it reaches the engine.
type Line struct {
	ProductID string
	Name      string
	Unit      Unit
	UnitPrice float64
	Quantity  float64
	Category  string
}

// Total returns the line amount before any order-level adjustment.
func (l Line) Total() float64 {
	return l.UnitPrice * l.Quantity
}

// GeoPoint is a WGS84 coordinate pair. A nil *GeoPoint means the customer did
// not pick a location.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether the point is a usable coordinate.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// Shop is the engine's view of a pickup/dispatch location.
type Shop struct {
	ID     string
	Name   string
	Point  GeoPoint
	Active bool
}

// DeliveryMethod selects between home delivery and shop pickup.
type DeliveryMethod string

const (
	DeliveryHome   DeliveryMethod = "home"
	DeliveryPickup DeliveryMethod = "pickup"
)

// CreditTerm is the billing term configured on a business account.
type CreditTerm string

const (
	CreditMonthly CreditTerm = "monthly"
	CreditPerBill CreditTerm = "per_bill"
)

// AccountProfile carries the account attributes the engine reads. A zero value
// is a guest checkout: not a business account, no credit.
type AccountProfile struct {
	BusinessAccount bool
	CreditLimit     float64
	CreditBalance   float64
	CreditTerms     CreditTerm
}

// PaymentMethod is the closed set of accepted payment identifiers.
type PaymentMethod string

const (
	PaymentCOD         PaymentMethod = "cod"
	PaymentPayAtPickup PaymentMethod = "pay_at_pickup"
	PaymentCredit      PaymentMethod = "credit"
	PaymentEsewa       PaymentMethod = "esewa"
	PaymentKhalti      PaymentMethod = "khalti"
	PaymentPaypal      PaymentMethod = "paypal"
	PaymentCard        PaymentMethod = "card"
	PaymentUPI         PaymentMethod = "upi"
	PaymentPhonePe     PaymentMethod = "phonepe"
	PaymentFonepay     PaymentMethod = "fonepay"
)

// Valid reports whether the method is one the storefront accepts.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentPayAtPickup, PaymentCredit, PaymentEsewa, PaymentKhalti,
		PaymentPaypal, PaymentCard, PaymentUPI, PaymentPhonePe, PaymentFonepay:
		return true
	}
	return false
}

// International reports whether the method settles outside NPR, in which case
// the order also records a USD mirror amount.
func (m PaymentMethod) International() bool {
	switch m {
	case PaymentPaypal, PaymentCard, PaymentUPI, PaymentPhonePe, PaymentFonepay:
		return true
	}
	return false
}

// roundNPR rounds to whole rupees. No fractional paisa is ever persisted.
func roundNPR(amount float64) float64 {
	return math.Round(amount)
}

// round2 rounds to two decimal places for USD/INR display amounts.
func round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
