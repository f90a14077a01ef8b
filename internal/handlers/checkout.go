package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/pricing"
	"backend/internal/repository"
)

/* =========================
   REQUEST DTOs
========================= */

type checkoutItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
	// Unit may be any unit compatible with the product's canonical unit;
	// empty means the quantity is already canonical.
	Unit string `json:"unit"`
}

type checkoutDestinationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type checkoutCustomerRequest struct {
	Title  string `json:"title" binding:"required"`
	Detail string `json:"detail" binding:"required"`
	Note   string `json:"note"`
}

type checkoutReplacementRequest struct {
	OriginalProductID    string `json:"originalProductId" binding:"required"`
	ReplacementProductID string `json:"replacementProductId" binding:"required"`
}

type checkoutQuoteRequest struct {
	Items          []checkoutItemRequest       `json:"items"`
	ShoppingListID string                      `json:"shoppingListId"`
	DeliveryMethod string                      `json:"deliveryMethod" binding:"required,oneof=home pickup"`
	Destination    *checkoutDestinationRequest `json:"destination"`
	PaymentMethod  string                      `json:"paymentMethod" binding:"required"`
}

type createOrderRequest struct {
	checkoutQuoteRequest
	Customer     checkoutCustomerRequest      `json:"customer" binding:"required"`
	Replacements []checkoutReplacementRequest `json:"replacements"`
}

/* =========================
   CHECKOUT CONTEXT
========================= */

// CheckoutDeps are the collaborators checkout needs beyond the database
// handle. Repositories keep the engine input narrow and fake-able.
type CheckoutDeps struct {
	Settings      repository.DeliverySettingsRepository
	Shops         repository.ShopLocationRepository
	ShoppingLists repository.ShoppingListRepository
}

// checkoutDraft is the immutable bundle built from a request: the engine
// input plus the order material derived alongside it.
type checkoutDraft struct {
	input        pricing.CheckoutInput
	items        []models.OrderItem
	shoppingList *models.ShoppingList
}

type productNotFoundError struct {
	ProductID primitive.ObjectID
}

func (e productNotFoundError) Error() string {
	return "product not found"
}

// dbError marks failures that are ours, not the caller's.
type dbError struct {
	err error
}

func (e dbError) Error() string { return "db error: " + e.err.Error() }
func (e dbError) Unwrap() error { return e.err }

type outOfStockError struct {
	ProductID primitive.ObjectID
	Available float64
	Requested float64
}

func (e outOfStockError) Error() string {
	return "product out of stock"
}

func legacyRule() pricing.LegacyFeeRule {
	return pricing.LegacyFeeRule{
		FreeThreshold: config.AppEnv.LegacyFreeThreshold,
		FlatFee:       config.AppEnv.LegacyFlatFee,
	}
}

func currencyTable() pricing.CurrencyTable {
	table := pricing.CurrencyTable{
		NPRPerUSD: config.AppEnv.NPRPerUSD,
		NPRPerINR: config.AppEnv.NPRPerINR,
	}
	if !table.Valid() {
		return pricing.DefaultCurrencyTable()
	}
	return table
}

func accountProfile(user *models.User) pricing.AccountProfile {
	if user == nil {
		return pricing.AccountProfile{}
	}
	return pricing.AccountProfile{
		BusinessAccount: user.IsBusinessAccount,
		CreditLimit:     user.CreditLimit,
		CreditBalance:   user.CreditBalance,
		CreditTerms:     pricing.CreditTerm(user.CreditTerms),
	}
}

// buildCheckoutDraft resolves products, normalizes quantities to the
// product's canonical unit, prices lines with the effective sale price, and
// assembles the full engine input.
func buildCheckoutDraft(ctx context.Context, db *mongo.Database, deps CheckoutDeps, req checkoutQuoteRequest, user *models.User) (checkoutDraft, error) {
	draft := checkoutDraft{
		items: make([]models.OrderItem, 0, len(req.Items)),
	}
	lines := make([]pricing.Line, 0, len(req.Items))

	for _, item := range req.Items {
		productID, err := primitive.ObjectIDFromHex(strings.TrimSpace(item.ProductID))
		if err != nil {
			return checkoutDraft{}, fmt.Errorf("invalid productId %q", item.ProductID)
		}

		var raw bson.M
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       productID,
			"isActive":  bson.M{"$ne": false},
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&raw)
		if err == mongo.ErrNoDocuments {
			return checkoutDraft{}, productNotFoundError{ProductID: productID}
		}
		if err != nil {
			return checkoutDraft{}, dbError{err}
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return checkoutDraft{}, dbError{err}
		}

		quantity := item.Quantity
		if unit := strings.TrimSpace(item.Unit); unit != "" && unit != product.UnitType {
			quantity, err = pricing.ConvertUnit(item.Quantity, pricing.Unit(unit), pricing.Unit(product.UnitType))
			if err != nil {
				return checkoutDraft{}, err
			}
		}

		unitPrice := effectiveUnitPrice(product.Price, product.SaleEnabled, product.SalePrice)
		category := ""
		if len(product.Category) > 0 {
			category = product.Category[0]
		}

		lines = append(lines, pricing.Line{
			ProductID: product.ID.Hex(),
			Name:      product.Name,
			Unit:      pricing.Unit(product.UnitType),
			UnitPrice: unitPrice,
			Quantity:  quantity,
			Category:  category,
		})
		draft.items = append(draft.items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     unitPrice,
			UnitType:  product.UnitType,
			Quantity:  quantity,
			Category:  category,
		})
	}

	listSubtotal := 0.0
	if listID := strings.TrimSpace(req.ShoppingListID); listID != "" {
		id, err := primitive.ObjectIDFromHex(listID)
		if err != nil {
			return checkoutDraft{}, fmt.Errorf("invalid shoppingListId %q", listID)
		}
		list, err := deps.ShoppingLists.Get(ctx, id)
		if err == mongo.ErrNoDocuments {
			return checkoutDraft{}, fmt.Errorf("shopping list not found")
		}
		if err != nil {
			return checkoutDraft{}, dbError{err}
		}
		// Owned lists are only consumable by their owner; answering "not
		// found" keeps list IDs unguessable. Lists without an owner stay
		// usable by guests.
		if list.UserID != nil && (user == nil || user.ID != *list.UserID) {
			return checkoutDraft{}, fmt.Errorf("shopping list not found")
		}
		if list.Status != models.ShoppingListStatusOpen {
			return checkoutDraft{}, fmt.Errorf("shopping list is %s, expected open", list.Status)
		}
		listSubtotal = list.EstimatedTotal
		draft.shoppingList = &list
	}

	shops, err := deps.Shops.List(ctx)
	if err != nil {
		return checkoutDraft{}, dbError{err}
	}

	settingsRow, err := deps.Settings.ActiveSettings(ctx)
	if err != nil {
		return checkoutDraft{}, dbError{err}
	}
	var settings *pricing.DeliverySettings
	if settingsRow != nil {
		converted := repository.ToFeeSettings(*settingsRow)
		settings = &converted
	}

	var destination *pricing.GeoPoint
	if req.Destination != nil {
		destination = &pricing.GeoPoint{
			Latitude:  req.Destination.Latitude,
			Longitude: req.Destination.Longitude,
		}
	}

	draft.input = pricing.CheckoutInput{
		ShoppingListSubtotal: listSubtotal,
		Lines:                lines,
		Account:              accountProfile(user),
		DeliveryMethod:       pricing.DeliveryMethod(req.DeliveryMethod),
		Destination:          destination,
		Shops:                repository.ToEngineShops(shops),
		Settings:             settings,
		Legacy:               legacyRule(),
		PaymentMethod:        pricing.PaymentMethod(req.PaymentMethod),
		Rates:                currencyTable(),
		Now:                  time.Now(),
	}

	return draft, nil
}

// engineErrorStatus maps engine validation failures onto HTTP statuses. The
// configuration error stays a 500: settings are validated at load, so seeing
// one here means a bug, not user input.
func engineErrorStatus(err error) int {
	switch {
	case errors.Is(err, pricing.ErrInsufficientCredit):
		return http.StatusPaymentRequired
	case errors.Is(err, pricing.ErrCreditNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, pricing.ErrInvalidConfiguration):
		return http.StatusInternalServerError
	case errors.Is(err, pricing.ErrEmptyOrder),
		errors.Is(err, pricing.ErrUnknownPaymentMethod),
		errors.Is(err, pricing.ErrInvalidLocation),
		errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrIncompatibleUnit),
		errors.Is(err, pricing.ErrUnknownUnit):
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func totalsResponse(totals pricing.OrderTotals) gin.H {
	resp := gin.H{
		"subtotal":         totals.Subtotal,
		"businessDiscount": totals.BusinessDiscount,
		"deliveryFee":      totals.DeliveryFee,
		"grandTotal":       totals.GrandTotal,
	}
	if totals.GrandTotalUSD != nil {
		resp["grandTotalUsd"] = *totals.GrandTotalUSD
	}
	if totals.NearestShopID != "" {
		resp["nearestShopId"] = totals.NearestShopID
		resp["nearestShopName"] = totals.NearestShopName
	}
	if totals.NearestDistanceKm != nil {
		resp["nearestDistanceKm"] = *totals.NearestDistanceKm
	}
	if totals.CreditDueDate != nil {
		resp["creditDueDate"] = totals.CreditDueDate
	}
	return resp
}

/* =========================
   QUOTE
========================= */

// POST /checkout/quote prices a draft without persisting anything.
func QuoteCheckout(db *mongo.Database, deps CheckoutDeps, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /checkout/quote"
		defer handlePanic(c, route)

		var req checkoutQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := userIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		draft, err := buildCheckoutDraft(ctx, db, deps, req, user)
		if err != nil {
			respondDraftError(c, route, err)
			return
		}

		totals, err := pricing.ComputeOrder(draft.input)
		if err != nil {
			respondWithError(c, engineErrorStatus(err), route, err.Error())
			return
		}

		c.JSON(http.StatusOK, totalsResponse(totals))
	}
}

/* =========================
   CREATE ORDER
========================= */

// POST /orders prices the draft, then atomically decrements stock and writes
// the order with its totals. Totals are computed exactly once; nothing is
// persisted when any step fails.
func CreateOrder(db *mongo.Database, deps CheckoutDeps, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		userID, err := userIDFromHeader(c.GetHeader("Authorization"), jwtSecret)
		if err != nil {
			log.Println("[ORDER] [ERROR] token validation failed:", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		user, err := loadUser(ctx, db, userID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if pricing.PaymentMethod(req.PaymentMethod) == pricing.PaymentCredit {
			if user == nil || !user.BusinessVerified {
				respondWithError(c, http.StatusForbidden, route, pricing.ErrCreditNotAllowed.Error())
				return
			}
		}

		draft, err := buildCheckoutDraft(ctx, db, deps, req.checkoutQuoteRequest, user)
		if err != nil {
			respondDraftError(c, route, err)
			return
		}

		totals, err := pricing.ComputeOrder(draft.input)
		if err != nil {
			respondWithError(c, engineErrorStatus(err), route, err.Error())
			return
		}

		replacements, err := buildReplacements(ctx, db, draft.items, req.Replacements)
		if err != nil {
			respondDraftError(c, route, err)
			return
		}

		order := orderFromDraft(draft, totals, req, userID, replacements)

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var orderID primitive.ObjectID
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			for _, item := range order.Items {
				filter := bson.M{
					"_id":       item.ProductID,
					"isDeleted": bson.M{"$ne": true},
					"stock":     bson.M{"$gte": item.Quantity},
				}
				update := bson.M{"$inc": bson.M{"stock": -item.Quantity}}

				res, err := db.Collection("products").UpdateOne(sessCtx, filter, update)
				if err != nil {
					return nil, err
				}
				if res.MatchedCount == 0 {
					return nil, outOfStockError{ProductID: item.ProductID, Requested: item.Quantity}
				}
			}

			if order.ShoppingListID != nil {
				res, err := db.Collection("shoppingLists").UpdateOne(sessCtx,
					bson.M{"_id": *order.ShoppingListID, "status": models.ShoppingListStatusOpen},
					bson.M{"$set": bson.M{"status": models.ShoppingListStatusOrdered, "updatedAt": time.Now()}},
				)
				if err != nil {
					return nil, err
				}
				if res.MatchedCount == 0 {
					return nil, fmt.Errorf("shopping list no longer open")
				}
			}

			res, err := db.Collection("orders").InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				orderID = id
			}
			return nil, nil
		})
		if err != nil {
			var stockErr outOfStockError
			if errors.As(err, &stockErr) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "out of stock",
					"productId": stockErr.ProductID.Hex(),
					"requested": stockErr.Requested,
				})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if userID != nil {
			log.Println("[ORDER] [INFO] order created for user:", userID.Hex())
		} else {
			log.Println("[ORDER] [INFO] guest order created")
		}

		c.JSON(http.StatusCreated, gin.H{
			"orderId": orderID.Hex(),
			"totals":  totalsResponse(totals),
			"message": "order created",
		})
	}
}

func orderFromDraft(draft checkoutDraft, totals pricing.OrderTotals, req createOrderRequest, userID *primitive.ObjectID, replacements []models.ReplacementMapping) models.Order {
	order := models.Order{
		UserID:           userID,
		Items:            draft.items,
		Subtotal:         totals.Subtotal,
		BusinessDiscount: totals.BusinessDiscount,
		DeliveryFee:      totals.DeliveryFee,
		TotalAmount:      totals.GrandTotal,
		TotalAmountUSD:   totals.GrandTotalUSD,
		DeliveryMethod:   req.DeliveryMethod,
		Customer: models.OrderCustomer{
			Title:  strings.TrimSpace(req.Customer.Title),
			Detail: strings.TrimSpace(req.Customer.Detail),
			Note:   strings.TrimSpace(req.Customer.Note),
		},
		PaymentMethod: req.PaymentMethod,
		CreditDueDate: totals.CreditDueDate,
		Replacements:  replacements,
		Status:        models.OrderStatusPending,
		CreatedAt:     time.Now(),
	}

	if draft.shoppingList != nil {
		listID := draft.shoppingList.ID
		order.ShoppingListID = &listID
	}
	if req.Destination != nil {
		order.Destination = &models.OrderDestination{
			Latitude:  req.Destination.Latitude,
			Longitude: req.Destination.Longitude,
		}
	}
	if totals.NearestShopID != "" {
		if shopID, err := primitive.ObjectIDFromHex(totals.NearestShopID); err == nil {
			order.NearestShopID = &shopID
		}
	}
	order.NearestDistanceKm = totals.NearestDistanceKm

	return order
}

// buildReplacements resolves customer-approved substitutes and records the
// advisory per-unit delta for each. Substitutes never change the totals here;
// admin approval later records an adjustment event.
func buildReplacements(ctx context.Context, db *mongo.Database, items []models.OrderItem, reqs []checkoutReplacementRequest) ([]models.ReplacementMapping, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	itemByProduct := make(map[primitive.ObjectID]models.OrderItem, len(items))
	for _, item := range items {
		itemByProduct[item.ProductID] = item
	}

	mappings := make([]models.ReplacementMapping, 0, len(reqs))
	for _, r := range reqs {
		originalID, err := primitive.ObjectIDFromHex(strings.TrimSpace(r.OriginalProductID))
		if err != nil {
			return nil, fmt.Errorf("invalid originalProductId %q", r.OriginalProductID)
		}
		original, ok := itemByProduct[originalID]
		if !ok {
			return nil, fmt.Errorf("replacement references product %s not in the order", originalID.Hex())
		}

		replacementID, err := primitive.ObjectIDFromHex(strings.TrimSpace(r.ReplacementProductID))
		if err != nil {
			return nil, fmt.Errorf("invalid replacementProductId %q", r.ReplacementProductID)
		}

		var raw bson.M
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       replacementID,
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&raw)
		if err == mongo.ErrNoDocuments {
			return nil, productNotFoundError{ProductID: replacementID}
		}
		if err != nil {
			return nil, dbError{err}
		}

		substitute, err := normalizeProductDocument(raw)
		if err != nil {
			return nil, dbError{err}
		}

		substitutePrice := effectiveUnitPrice(substitute.Price, substitute.SaleEnabled, substitute.SalePrice)
		comparison := pricing.CompareReplacement(
			pricing.Line{UnitPrice: original.Price},
			pricing.Line{UnitPrice: substitutePrice},
		)

		mappings = append(mappings, models.ReplacementMapping{
			OriginalProductID: originalID,
			Replacement: models.OrderItem{
				ProductID: substitute.ID,
				Name:      substitute.Name,
				Price:     substitutePrice,
				UnitType:  substitute.UnitType,
				Quantity:  original.Quantity,
				Category:  original.Category,
			},
			PriceDelta:     comparison.Delta,
			Classification: string(comparison.Class),
		})
	}

	return mappings, nil
}

func respondDraftError(c *gin.Context, route string, err error) {
	var notFoundErr productNotFoundError
	if errors.As(err, &notFoundErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "product not found",
			"productId": notFoundErr.ProductID.Hex(),
		})
		return
	}
	var internalErr dbError
	if errors.As(err, &internalErr) {
		log.Printf("[%s] draft build failed: %v", route, internalErr.err)
		respondWithError(c, http.StatusInternalServerError, route, "db error")
		return
	}
	respondWithError(c, http.StatusBadRequest, route, err.Error())
}

func loadUser(ctx context.Context, db *mongo.Database, userID *primitive.ObjectID) (*models.User, error) {
	if userID == nil {
		return nil, nil
	}
	var user models.User
	err := db.Collection("users").FindOne(ctx, bson.M{"_id": *userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		// Stale token for a removed account: treat as guest.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
