package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a saved delivery address. Latitude/Longitude are set when the
// user picked a map location; orders placed without them fall back to the
// flat delivery fee.
type Address struct {
	ID        string   `bson:"id" json:"id"`
	Title     string   `bson:"title" json:"title"`
	Detail    string   `bson:"detail" json:"detail"`
	Note      string   `bson:"note,omitempty" json:"note,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	IsDefault bool     `bson:"isDefault" json:"isDefault"`
}

// User is the application account. Business fields gate the wholesale
// discount and credit payment; they stay zero for regular customers.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email             string             `bson:"email" json:"email"`
	PasswordHash      string             `bson:"passwordHash" json:"-"`
	Name              string             `bson:"name" json:"name"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Addresses         []Address          `bson:"addresses" json:"addresses"`
	IsBusinessAccount bool               `bson:"isBusinessAccount" json:"isBusinessAccount"`
	BusinessVerified  bool               `bson:"businessVerified" json:"businessVerified"`
	CreditLimit       float64            `bson:"creditLimit,omitempty" json:"creditLimit,omitempty"`
	CreditBalance     float64            `bson:"creditBalance,omitempty" json:"creditBalance,omitempty"`
	CreditTerms       string             `bson:"creditTerms,omitempty" json:"creditTerms,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
