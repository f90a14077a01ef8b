package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliverySettings is the fee configuration. The collection is meant to hold
// one row; when admin edits leave several behind, the oldest row wins and the
// anomaly is logged rather than failing checkout.
type DeliverySettings struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FreeDeliveryRadius  float64            `bson:"freeDeliveryRadiusKm" json:"freeDeliveryRadiusKm"`
	MinOrderForFree     float64            `bson:"minOrderForFreeDelivery" json:"minOrderForFreeDelivery"`
	BaseDeliveryFee     float64            `bson:"baseDeliveryFee" json:"baseDeliveryFee"`
	PerKmCharge         float64            `bson:"perKmCharge" json:"perKmCharge"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}
