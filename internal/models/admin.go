package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin is a back-office login. Password holds the bcrypt hash.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
}
