package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/pricing"
)

// ShopLocationRepository serves the shop list checkout searches over.
type ShopLocationRepository interface {
	List(ctx context.Context) ([]models.ShopLocation, error)
	Create(ctx context.Context, shop models.ShopLocation) (models.ShopLocation, error)
	Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type mongoShopLocations struct {
	col *mongo.Collection
}

// NewShopLocationRepository returns the mongo-backed shop repository.
func NewShopLocationRepository(db *mongo.Database) ShopLocationRepository {
	return &mongoShopLocations{col: db.Collection("shops")}
}

func (r *mongoShopLocations) List(ctx context.Context) ([]models.ShopLocation, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	shops := make([]models.ShopLocation, 0)
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, err
	}
	return shops, nil
}

func (r *mongoShopLocations) Create(ctx context.Context, shop models.ShopLocation) (models.ShopLocation, error) {
	shop.CreatedAt = time.Now()

	res, err := r.col.InsertOne(ctx, shop)
	if err != nil {
		return models.ShopLocation{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		shop.ID = id
	}
	return shop, nil
}

func (r *mongoShopLocations) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoShopLocations) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ToEngineShops maps stored shops onto the engine's shop values, preserving
// list order so distance ties stay deterministic.
func ToEngineShops(shops []models.ShopLocation) []pricing.Shop {
	out := make([]pricing.Shop, 0, len(shops))
	for _, s := range shops {
		out = append(out, pricing.Shop{
			ID:     s.ID.Hex(),
			Name:   s.Name,
			Point:  pricing.GeoPoint{Latitude: s.Latitude, Longitude: s.Longitude},
			Active: s.IsActive,
		})
	}
	return out
}
