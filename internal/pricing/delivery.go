package pricing

import (
	"fmt"
	"math"
)

const earthRadiusKm = 6371.0

// DeliverySettings is the admin-managed fee configuration.
type DeliverySettings struct {
	FreeRadiusKm    float64
	MinOrderForFree float64
	BaseFee         float64
	PerKmCharge     float64
}

// Validate rejects configurations that could never describe a real fee table.
// Called when settings load, so checkout never sees a bad record.
func (s DeliverySettings) Validate() error {
	if s.FreeRadiusKm < 0 {
		return fmt.Errorf("%w: free radius %v km", ErrInvalidConfiguration, s.FreeRadiusKm)
	}
	if s.MinOrderForFree < 0 {
		return fmt.Errorf("%w: min order %v", ErrInvalidConfiguration, s.MinOrderForFree)
	}
	if s.BaseFee < 0 {
		return fmt.Errorf("%w: base fee %v", ErrInvalidConfiguration, s.BaseFee)
	}
	if s.PerKmCharge < 0 {
		return fmt.Errorf("%w: per-km charge %v", ErrInvalidConfiguration, s.PerKmCharge)
	}
	return nil
}

// LegacyFeeRule is the flat rule used for orders placed without a picked
// location or before delivery settings existed. It must keep producing the
// same fees those orders were quoted with.
type LegacyFeeRule struct {
	FreeThreshold float64
	FlatFee       float64
}

// DefaultLegacyFeeRule returns the historical flat rule: orders of 500 NPR or
// more ship free, everything else pays 50 NPR.
func DefaultLegacyFeeRule() LegacyFeeRule {
	return LegacyFeeRule{FreeThreshold: 500, FlatFee: 50}
}

func (r LegacyFeeRule) fee(subtotal float64) float64 {
	if subtotal >= r.FreeThreshold {
		return 0
	}
	return r.FlatFee
}

// DeliveryInput bundles everything the fee computation reads.
type DeliveryInput struct {
	Destination     *GeoPoint
	Shops           []Shop
	Settings        *DeliverySettings
	Subtotal        float64
	Method          DeliveryMethod
	BusinessAccount bool
	Legacy          LegacyFeeRule
}

// DeliveryQuote is the computed fee plus the nearest-shop attribution when a
// distance search ran.
type DeliveryQuote struct {
	Fee         float64
	NearestShop *Shop
	DistanceKm  float64
	HasDistance bool
}

// ComputeDeliveryFee returns the delivery fee for an order.
//
// Pickup orders and business accounts always ship free. Without a destination
// or any active shop the legacy flat rule applies. Otherwise the nearest
// active shop is found by great-circle distance (ties broken by shop list
// order) and the settings tiers apply: free inside the radius when the
// subtotal meets the minimum, base fee inside the radius otherwise, and base
// fee plus a per-started-km charge beyond the radius.
func ComputeDeliveryFee(in DeliveryInput) (DeliveryQuote, error) {
	if in.Method == DeliveryPickup || in.BusinessAccount {
		return DeliveryQuote{Fee: 0}, nil
	}

	active := activeShops(in.Shops)
	if in.Destination == nil || len(active) == 0 {
		return DeliveryQuote{Fee: in.Legacy.fee(in.Subtotal)}, nil
	}

	if !in.Destination.Valid() {
		return DeliveryQuote{}, fmt.Errorf("%w: lat=%v lng=%v",
			ErrInvalidLocation, in.Destination.Latitude, in.Destination.Longitude)
	}

	nearest, distanceKm, err := nearestShop(*in.Destination, active)
	if err != nil {
		return DeliveryQuote{}, err
	}

	quote := DeliveryQuote{
		NearestShop: nearest,
		DistanceKm:  distanceKm,
		HasDistance: true,
	}

	if in.Settings == nil {
		// Distance is kept for display only; the legacy rule prices the fee.
		quote.Fee = in.Legacy.fee(in.Subtotal)
		return quote, nil
	}

	if err := in.Settings.Validate(); err != nil {
		return DeliveryQuote{}, err
	}

	if distanceKm <= in.Settings.FreeRadiusKm {
		if in.Subtotal >= in.Settings.MinOrderForFree {
			quote.Fee = 0
		} else {
			quote.Fee = in.Settings.BaseFee
		}
		return quote, nil
	}

	// Beyond the free radius every started kilometre is billed in full.
	extraKm := math.Ceil(distanceKm - in.Settings.FreeRadiusKm)
	quote.Fee = in.Settings.BaseFee + extraKm*in.Settings.PerKmCharge
	return quote, nil
}

func activeShops(shops []Shop) []Shop {
	active := make([]Shop, 0, len(shops))
	for _, shop := range shops {
		if shop.Active {
			active = append(active, shop)
		}
	}
	return active
}

// nearestShop scans in slice order so equal distances resolve to the first
// listed shop, keeping the result independent of geography quirks.
func nearestShop(destination GeoPoint, shops []Shop) (*Shop, float64, error) {
	var nearest *Shop
	best := math.Inf(1)

	for i := range shops {
		if !shops[i].Point.Valid() {
			return nil, 0, fmt.Errorf("%w: shop %s has lat=%v lng=%v",
				ErrInvalidLocation, shops[i].ID, shops[i].Point.Latitude, shops[i].Point.Longitude)
		}
		d := HaversineKm(destination, shops[i].Point)
		if d < best {
			best = d
			nearest = &shops[i]
		}
	}

	return nearest, best, nil
}

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(a, b GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
