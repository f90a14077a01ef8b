package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Shopping list lifecycle.
const (
	ShoppingListStatusOpen    = "open"
	ShoppingListStatusOrdered = "ordered"
	ShoppingListStatusPaid    = "paid"
)

// ShoppingList is an admin-priced basket submitted by a customer outside the
// catalog flow. Its estimated total merges into checkout as an extra subtotal.
type ShoppingList struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Reference       string              `bson:"reference" json:"reference"`
	UserID          *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Items           []OrderItem         `bson:"items" json:"items"`
	EstimatedTotal  float64             `bson:"estimatedTotal" json:"estimatedTotal"`
	AdminNotes      string              `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	CustomerContact string              `bson:"customerContact" json:"customerContact"`
	Status          string              `bson:"status" json:"status"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
