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

	"backend/internal/models"
	"backend/internal/pricing"
)

type replacementPreviewRequest struct {
	OriginalProductID    string  `json:"originalProductId" binding:"required"`
	ReplacementProductID string  `json:"replacementProductId" binding:"required"`
	Quantity             float64 `json:"quantity"`
}

// PreviewReplacement compares a proposed substitute against the original
// product using effective sale prices, without touching any order.
func PreviewReplacement(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/replacements/preview"
		defer handlePanic(c, route)

		var req replacementPreviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		original, ok := previewProduct(ctx, c, db, req.OriginalProductID)
		if !ok {
			return
		}
		replacement, ok := previewProduct(ctx, c, db, req.ReplacementProductID)
		if !ok {
			return
		}

		comparison := pricing.CompareReplacement(
			pricing.Line{UnitPrice: effectiveUnitPrice(original.Price, original.SaleEnabled, original.SalePrice)},
			pricing.Line{UnitPrice: effectiveUnitPrice(replacement.Price, replacement.SaleEnabled, replacement.SalePrice)},
		)

		resp := gin.H{
			"originalProductId":    original.ID.Hex(),
			"replacementProductId": replacement.ID.Hex(),
			"priceDelta":           comparison.Delta,
			"classification":       comparison.Class,
		}
		if req.Quantity > 0 {
			resp["orderImpact"] = comparison.OrderImpact(req.Quantity)
		}

		c.JSON(http.StatusOK, resp)
	}
}

func previewProduct(ctx context.Context, c *gin.Context, db *mongo.Database, idHex string) (models.Product, bool) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(idHex))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id: " + idHex})
		return models.Product{}, false
	}

	var raw bson.M
	err = db.Collection("products").FindOne(ctx, bson.M{
		"_id":       id,
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "productId": id.Hex()})
		return models.Product{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return models.Product{}, false
	}

	product, err := normalizeProductDocument(raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return models.Product{}, false
	}
	return product, true
}
