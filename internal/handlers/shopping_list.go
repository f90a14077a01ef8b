package handlers

import (
	"context"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
	"backend/internal/pricing"
	"backend/internal/repository"
)

type shoppingListItemRequest struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,gt=0"`
	UnitType string  `json:"unitType"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

type shoppingListRequest struct {
	UserID          string                    `json:"userId"`
	CustomerContact string                    `json:"customerContact" binding:"required"`
	Items           []shoppingListItemRequest `json:"items" binding:"required,min=1,dive"`
	AdminNotes      string                    `json:"adminNotes"`
}

// CreateShoppingList records an admin-priced basket. The estimated total is
// computed once here, from the admin's per-unit prices, and rounded to whole
// rupees like any other subtotal.
func CreateShoppingList(lists repository.ShoppingListRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/shopping-lists"
		defer handlePanic(c, route)

		var req shoppingListRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		items := make([]models.OrderItem, 0, len(req.Items))
		total := 0.0
		for _, item := range req.Items {
			// List items are admin-priced and never unit-converted, so the
			// unit is optional; when given it must be a convertible one.
			unitType := strings.TrimSpace(item.UnitType)
			if unitType != "" && !pricing.KnownUnit(pricing.Unit(unitType)) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown unitType: " + unitType})
				return
			}
			items = append(items, models.OrderItem{
				Name:     strings.TrimSpace(item.Name),
				Price:    item.Price,
				UnitType: unitType,
				Quantity: item.Quantity,
			})
			total += item.Price * item.Quantity
		}

		list := models.ShoppingList{
			Items:           items,
			EstimatedTotal:  math.Round(total),
			AdminNotes:      strings.TrimSpace(req.AdminNotes),
			CustomerContact: strings.TrimSpace(req.CustomerContact),
		}

		if userHex := strings.TrimSpace(req.UserID); userHex != "" {
			userID, err := primitive.ObjectIDFromHex(userHex)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
				return
			}
			list.UserID = &userID
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		created, err := lists.Create(ctx, list)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[LIST] [INFO] shopping list created:", created.Reference)
		c.JSON(http.StatusCreated, gin.H{"shoppingList": created})
	}
}

func GetShoppingLists(lists repository.ShoppingListRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/shopping-lists"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		all, err := lists.List(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"shoppingLists": all})
	}
}

type shoppingListStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=open ordered paid"`
}

func UpdateShoppingListStatus(lists repository.ShoppingListRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/shopping-lists/:id/status"
		defer handlePanic(c, route)

		listID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req shoppingListStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		if err := lists.SetStatus(ctx, listID, req.Status); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "shopping list not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": req.Status})
	}
}
