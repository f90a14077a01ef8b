package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
)

// ShoppingListRepository stores admin-priced list orders.
type ShoppingListRepository interface {
	Create(ctx context.Context, list models.ShoppingList) (models.ShoppingList, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.ShoppingList, error)
	List(ctx context.Context) ([]models.ShoppingList, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
}

type mongoShoppingLists struct {
	col *mongo.Collection
}

// NewShoppingListRepository returns the mongo-backed shopping list repository.
func NewShoppingListRepository(db *mongo.Database) ShoppingListRepository {
	return &mongoShoppingLists{col: db.Collection("shoppingLists")}
}

func (r *mongoShoppingLists) Create(ctx context.Context, list models.ShoppingList) (models.ShoppingList, error) {
	now := time.Now()
	list.Reference = uuid.NewString()
	list.Status = models.ShoppingListStatusOpen
	list.CreatedAt = now
	list.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, list)
	if err != nil {
		return models.ShoppingList{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		list.ID = id
	}
	return list, nil
}

func (r *mongoShoppingLists) Get(ctx context.Context, id primitive.ObjectID) (models.ShoppingList, error) {
	var list models.ShoppingList
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&list)
	if err != nil {
		return models.ShoppingList{}, err
	}
	return list, nil
}

func (r *mongoShoppingLists) List(ctx context.Context) ([]models.ShoppingList, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.col.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lists := make([]models.ShoppingList, 0)
	if err := cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (r *mongoShoppingLists) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}

	res, err := r.col.UpdateByID(ctx, id, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
