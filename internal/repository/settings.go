package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/pricing"
)

// DeliverySettingsRepository hides the settings collection behind a contract
// of "at most one effective row, picked deterministically". Checkout depends
// on this interface, never on the collection.
type DeliverySettingsRepository interface {
	// ActiveSettings returns the effective settings row, or nil when none is
	// configured. A nil row is not an error; checkout falls back to the
	// legacy flat fee.
	ActiveSettings(ctx context.Context) (*models.DeliverySettings, error)
	Save(ctx context.Context, settings models.DeliverySettings) (models.DeliverySettings, error)
}

type mongoDeliverySettings struct {
	col *mongo.Collection
}

// NewDeliverySettingsRepository returns the mongo-backed settings repository.
func NewDeliverySettingsRepository(db *mongo.Database) DeliverySettingsRepository {
	return &mongoDeliverySettings{col: db.Collection("deliverySettings")}
}

func (r *mongoDeliverySettings) ActiveSettings(ctx context.Context) (*models.DeliverySettings, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []models.DeliverySettings
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows) > 1 {
		// Keep checkout available, but make the inconsistent admin state visible.
		log.Printf("[SETTINGS] [WARN] %d delivery settings rows found, using oldest %s",
			len(rows), rows[0].ID.Hex())
	}

	effective := rows[0]
	if err := ToFeeSettings(effective).Validate(); err != nil {
		return nil, fmt.Errorf("stored delivery settings %s: %w", effective.ID.Hex(), err)
	}

	return &effective, nil
}

func (r *mongoDeliverySettings) Save(ctx context.Context, settings models.DeliverySettings) (models.DeliverySettings, error) {
	if err := ToFeeSettings(settings).Validate(); err != nil {
		return models.DeliverySettings{}, err
	}

	now := time.Now()
	settings.UpdatedAt = now

	if settings.ID.IsZero() {
		settings.CreatedAt = now
		res, err := r.col.InsertOne(ctx, settings)
		if err != nil {
			return models.DeliverySettings{}, err
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			settings.ID = id
		}
		return settings, nil
	}

	update := bson.M{"$set": bson.M{
		"freeDeliveryRadiusKm":    settings.FreeDeliveryRadius,
		"minOrderForFreeDelivery": settings.MinOrderForFree,
		"baseDeliveryFee":         settings.BaseDeliveryFee,
		"perKmCharge":             settings.PerKmCharge,
		"updatedAt":               settings.UpdatedAt,
	}}
	if _, err := r.col.UpdateByID(ctx, settings.ID, update); err != nil {
		return models.DeliverySettings{}, err
	}

	return settings, nil
}

// ToFeeSettings maps the stored document onto the engine's settings value.
func ToFeeSettings(s models.DeliverySettings) pricing.DeliverySettings {
	return pricing.DeliverySettings{
		FreeRadiusKm:    s.FreeDeliveryRadius,
		MinOrderForFree: s.MinOrderForFree,
		BaseFee:         s.BaseDeliveryFee,
		PerKmCharge:     s.PerKmCharge,
	}
}
