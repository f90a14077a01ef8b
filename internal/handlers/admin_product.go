package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"backend/internal/models"
	"backend/internal/pricing"
)

type productCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	UnitType    string   `json:"unitType" binding:"required"`
	SaleEnabled bool     `json:"saleEnabled"`
	SalePrice   float64  `json:"salePrice"`
	Category    []string `json:"category" binding:"required"`
	Description string   `json:"description"`
	Barcode     string   `json:"barcode"`
	Brand       string   `json:"brand"`
	Stock       float64  `json:"stock"`
	IsCampaign  bool     `json:"isCampaign"`
}

type productUpdateRequest struct {
	Name        *string   `json:"name"`
	Price       *float64  `json:"price"`
	UnitType    *string   `json:"unitType"`
	SaleEnabled *bool     `json:"saleEnabled"`
	SalePrice   *float64  `json:"salePrice"`
	Category    *[]string `json:"category"`
	Description *string   `json:"description"`
	Brand       *string   `json:"brand"`
	Stock       *float64  `json:"stock"`
	IsActive    *bool     `json:"isActive"`
	IsCampaign  *bool     `json:"isCampaign"`
}

// GET /admin/api/products includes inactive and soft-deleted products.
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// POST /admin/api/products
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if !pricing.KnownUnit(pricing.Unit(req.UnitType)) {
			respondWithError(c, http.StatusBadRequest, route, "unknown unitType")
			return
		}

		if req.SaleEnabled {
			if err := validateSaleFields(req.Price, true, req.SalePrice, req.SalePrice > 0); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
		}

		if req.Stock < 0 {
			respondWithError(c, http.StatusBadRequest, route, "stock cannot be negative")
			return
		}

		product := models.Product{
			Name:        strings.TrimSpace(req.Name),
			Price:       req.Price,
			UnitType:    req.UnitType,
			SaleEnabled: req.SaleEnabled,
			SalePrice:   req.SalePrice,
			Category:    req.Category,
			Description: strings.TrimSpace(req.Description),
			Barcode:     strings.TrimSpace(req.Barcode),
			Brand:       strings.TrimSpace(req.Brand),
			Stock:       req.Stock,
			IsActive:    true,
			IsCampaign:  req.IsCampaign,
			CreatedAt:   time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "barcode already exists")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			product.ID = id
		}
		product.InStock = product.Stock > 0
		product.IsOnSale = isProductOnSale(product.Price, product.SaleEnabled, product.SalePrice)

		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/api/products/:id applies a partial update. Sale fields are
// validated against the merged state, not the patch alone.
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existingRaw bson.M
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       id,
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&existingRaw)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		existing, err := normalizeProductDocument(existingRaw)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		sale, err := resolveSaleUpdate(existing.Price, existing.SaleEnabled, existing.SalePrice, saleUpdateInput{
			Price:       req.Price,
			SaleEnabled: req.SaleEnabled,
			SalePrice:   req.SalePrice,
		})
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		update := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name cannot be empty")
				return
			}
			update["name"] = name
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "price must be greater than 0")
				return
			}
			update["price"] = *req.Price
		}
		if req.UnitType != nil {
			if !pricing.KnownUnit(pricing.Unit(*req.UnitType)) {
				respondWithError(c, http.StatusBadRequest, route, "unknown unitType")
				return
			}
			update["unitType"] = *req.UnitType
		}
		if sale.SetSaleEnabled {
			update["saleEnabled"] = sale.SaleEnabled
		}
		if sale.SetSalePrice {
			update["salePrice"] = sale.SalePrice
		}
		if req.Category != nil {
			update["category"] = *req.Category
		}
		if req.Description != nil {
			update["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Brand != nil {
			update["brand"] = strings.TrimSpace(*req.Brand)
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stock cannot be negative")
				return
			}
			update["stock"] = *req.Stock
		}
		if req.IsActive != nil {
			update["isActive"] = *req.IsActive
		}
		if req.IsCampaign != nil {
			update["isCampaign"] = *req.IsCampaign
		}

		if len(update) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		var updatedRaw bson.M
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": update},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updatedRaw)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		updated, err := normalizeProductDocument(updatedRaw)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /admin/api/products/:id soft deletes so past orders keep resolving
// product names.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res, err := db.Collection("products").UpdateOne(ctx, bson.M{"_id": id}, bson.M{
			"$set": bson.M{
				"isDeleted": true,
				"isActive":  false,
				"deletedAt": now,
			},
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
