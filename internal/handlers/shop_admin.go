package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
	"backend/internal/pricing"
	"backend/internal/repository"
)

type shopRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	IsActive  *bool   `json:"isActive"`
}

// GetShops lists every shop location for the admin panel, active or not.
func GetShops(shops repository.ShopLocationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/shops"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		list, err := shops.List(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"shops": list})
	}
}

func CreateShop(shops repository.ShopLocationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/shops"
		defer handlePanic(c, route)

		var req shopRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		point := pricing.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}
		if !point.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}

		active := true
		if req.IsActive != nil {
			active = *req.IsActive
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		shop, err := shops.Create(ctx, models.ShopLocation{
			Name:      strings.TrimSpace(req.Name),
			Address:   strings.TrimSpace(req.Address),
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			IsActive:  active,
		})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[SHOP] [INFO] shop created:", shop.Name)
		c.JSON(http.StatusCreated, gin.H{"shop": shop})
	}
}

func UpdateShop(shops repository.ShopLocationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/shops/:id"
		defer handlePanic(c, route)

		shopID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req shopRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		point := pricing.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude}
		if !point.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coordinates"})
			return
		}

		patch := bson.M{
			"name":      strings.TrimSpace(req.Name),
			"address":   strings.TrimSpace(req.Address),
			"latitude":  req.Latitude,
			"longitude": req.Longitude,
		}
		if req.IsActive != nil {
			patch["isActive"] = *req.IsActive
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := shops.Update(ctx, shopID, patch); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "shop updated"})
	}
}

func DeleteShop(shops repository.ShopLocationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/shops/:id"
		defer handlePanic(c, route)

		shopID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := shops.Delete(ctx, shopID); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "shop not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "shop deleted"})
	}
}
