package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status lifecycle. Transitions are enforced in the admin handler; the
// pricing engine never touches status.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// OrderItem is a priced line as persisted on an order. Quantity is in the
// product's canonical unit.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	UnitType  string             `bson:"unitType" json:"unitType"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
}

// OrderCustomer captures lightweight customer contact details for an order.
type OrderCustomer struct {
	Title  string `bson:"title" json:"title"`
	Detail string `bson:"detail" json:"detail"`
	Note   string `bson:"note,omitempty" json:"note,omitempty"`
}

// OrderDestination is the picked delivery location, absent for pickup orders
// and for customers who never chose a point on the map.
type OrderDestination struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// ReplacementMapping records a customer-approved substitute for a line. The
// delta is advisory, per unit, and is applied only through an adjustment
// event after admin review.
type ReplacementMapping struct {
	OriginalProductID primitive.ObjectID `bson:"originalProductId" json:"originalProductId"`
	Replacement       OrderItem          `bson:"replacement" json:"replacement"`
	PriceDelta        float64            `bson:"priceDelta" json:"priceDelta"`
	Classification    string             `bson:"classification" json:"classification"`
	Approved          bool               `bson:"approved" json:"approved"`
}

// OrderAdjustment is a recorded delta against an order (refund, approved
// replacement). Stored totals are never rewritten; adjustments accumulate.
type OrderAdjustment struct {
	Kind      string    `bson:"kind" json:"kind"`
	Amount    float64   `bson:"amount" json:"amount"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Order is the persisted order document. The totals block is written exactly
// once, from the engine's output, and never recomputed afterwards.
type Order struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID            *primitive.ObjectID  `bson:"userId" json:"userId"`
	Items             []OrderItem          `bson:"items" json:"items"`
	ShoppingListID    *primitive.ObjectID  `bson:"shoppingListId,omitempty" json:"shoppingListId,omitempty"`
	Subtotal          float64              `bson:"subtotal" json:"subtotal"`
	BusinessDiscount  float64              `bson:"businessDiscount" json:"businessDiscount"`
	DeliveryFee       float64              `bson:"deliveryFee" json:"deliveryFee"`
	TotalAmount       float64              `bson:"totalAmount" json:"totalAmount"`
	TotalAmountUSD    *float64             `bson:"totalAmountUsd,omitempty" json:"totalAmountUsd,omitempty"`
	DeliveryMethod    string               `bson:"deliveryMethod" json:"deliveryMethod"`
	Destination       *OrderDestination    `bson:"destination,omitempty" json:"destination,omitempty"`
	NearestShopID     *primitive.ObjectID  `bson:"nearestShopId,omitempty" json:"nearestShopId,omitempty"`
	NearestDistanceKm *float64             `bson:"nearestDistanceKm,omitempty" json:"nearestDistanceKm,omitempty"`
	Customer          OrderCustomer        `bson:"customer" json:"customer"`
	PaymentMethod     string               `bson:"paymentMethod" json:"paymentMethod"`
	CreditDueDate     *time.Time           `bson:"creditDueDate,omitempty" json:"creditDueDate,omitempty"`
	Replacements      []ReplacementMapping `bson:"replacements,omitempty" json:"replacements,omitempty"`
	Adjustments       []OrderAdjustment    `bson:"adjustments,omitempty" json:"adjustments,omitempty"`
	Status            string               `bson:"status" json:"status"`
	CreatedAt         time.Time            `bson:"createdAt" json:"createdAt"`
}
