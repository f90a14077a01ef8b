package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ensureIndex(db *mongo.Database, collection string, model mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.Collection(collection).Indexes().CreateOne(ctx, model)
	if err != nil {
		log.Printf("ensureIndex: %s index error: %v", collection, err)
		return err
	}
	return nil
}

func EnsureProductIndexes(db *mongo.Database) error {
	return ensureIndex(db, "products", mongo.IndexModel{
		Keys: bson.D{{Key: "barcode", Value: 1}},
		Options: options.Index().
			SetName("barcode_unique").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"barcode": bson.M{"$exists": true},
			}),
	})
}

func EnsureUserIndexes(db *mongo.Database) error {
	return ensureIndex(db, "users", mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
}

func EnsureOrderIndexes(db *mongo.Database) error {
	if err := ensureIndex(db, "orders", mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("userId_index"),
	}); err != nil {
		return err
	}
	return ensureIndex(db, "orders", mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("status_index"),
	})
}

func EnsureShopIndexes(db *mongo.Database) error {
	return ensureIndex(db, "shops", mongo.IndexModel{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index().SetName("isActive_index"),
	})
}

func EnsureShoppingListIndexes(db *mongo.Database) error {
	return ensureIndex(db, "shoppingLists", mongo.IndexModel{
		Keys:    bson.D{{Key: "reference", Value: 1}},
		Options: options.Index().SetName("reference_unique").SetUnique(true),
	})
}
