package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"backend/internal/models"
	"backend/internal/pricing"
	"backend/internal/repository"
)

type deliverySettingsRequest struct {
	FreeDeliveryRadiusKm    float64 `json:"freeDeliveryRadiusKm"`
	MinOrderForFreeDelivery float64 `json:"minOrderForFreeDelivery"`
	BaseDeliveryFee         float64 `json:"baseDeliveryFee"`
	PerKmCharge             float64 `json:"perKmCharge"`
}

// GetDeliverySettings returns the effective fee configuration, or 404 when
// none has been saved yet (checkout then uses the legacy flat fee).
func GetDeliverySettings(settings repository.DeliverySettingsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/delivery-settings"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		row, err := settings.ActiveSettings(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if row == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "delivery settings not configured"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"settings": row})
	}
}

// SaveDeliverySettings creates or updates the single fee configuration row.
func SaveDeliverySettings(settings repository.DeliverySettingsRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/delivery-settings"
		defer handlePanic(c, route)

		var req deliverySettingsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		row := models.DeliverySettings{
			FreeDeliveryRadius: req.FreeDeliveryRadiusKm,
			MinOrderForFree:    req.MinOrderForFreeDelivery,
			BaseDeliveryFee:    req.BaseDeliveryFee,
			PerKmCharge:        req.PerKmCharge,
		}

		// Reuse the existing row's id so edits never accumulate extra rows.
		if existing, err := settings.ActiveSettings(ctx); err == nil && existing != nil {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
		}

		saved, err := settings.Save(ctx, row)
		if err != nil {
			if errors.Is(err, pricing.ErrInvalidConfiguration) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[SETTINGS] [INFO] delivery settings saved:", saved.ID.Hex())
		c.JSON(http.StatusOK, gin.H{"settings": saved})
	}
}
