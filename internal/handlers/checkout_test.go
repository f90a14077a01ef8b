package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"backend/internal/config"
	"backend/internal/models"
	"backend/internal/pricing"
)

func TestEngineErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{pricing.ErrInsufficientCredit, http.StatusPaymentRequired},
		{pricing.ErrCreditNotAllowed, http.StatusForbidden},
		{pricing.ErrInvalidConfiguration, http.StatusInternalServerError},
		{pricing.ErrEmptyOrder, http.StatusBadRequest},
		{pricing.ErrUnknownPaymentMethod, http.StatusBadRequest},
		{pricing.ErrInvalidLocation, http.StatusBadRequest},
		{pricing.ErrUnknownUnit, http.StatusBadRequest},
		{errors.New("anything else"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		if got := engineErrorStatus(tt.err); got != tt.want {
			t.Fatalf("engineErrorStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestEngineErrorStatusWrappedError(t *testing.T) {
	err := fmt.Errorf("credit check: %w", pricing.ErrInsufficientCredit)
	if got := engineErrorStatus(err); got != http.StatusPaymentRequired {
		t.Fatalf("expected wrapped sentinel to map to 402, got %d", got)
	}
}

func TestCurrencyTableFallsBackToDefaults(t *testing.T) {
	saved := config.AppEnv
	defer func() { config.AppEnv = saved }()

	config.AppEnv.NPRPerUSD = 0
	config.AppEnv.NPRPerINR = 0

	table := currencyTable()
	want := pricing.DefaultCurrencyTable()
	if table != want {
		t.Fatalf("expected default table %+v, got %+v", want, table)
	}
}

func TestCurrencyTableUsesConfiguredRates(t *testing.T) {
	saved := config.AppEnv
	defer func() { config.AppEnv = saved }()

	config.AppEnv.NPRPerUSD = 140
	config.AppEnv.NPRPerINR = 1.7

	table := currencyTable()
	if table.NPRPerUSD != 140 || table.NPRPerINR != 1.7 {
		t.Fatalf("expected configured rates, got %+v", table)
	}
}

func TestAccountProfileGuest(t *testing.T) {
	profile := accountProfile(nil)
	if profile.BusinessAccount {
		t.Fatal("guest must not be a business account")
	}
}

func TestAccountProfileBusinessUser(t *testing.T) {
	user := &models.User{
		IsBusinessAccount: true,
		CreditLimit:       50000,
		CreditBalance:     12000,
		CreditTerms:       "monthly",
	}
	profile := accountProfile(user)
	if !profile.BusinessAccount {
		t.Fatal("expected business account")
	}
	if profile.CreditHeadroom() != 38000 {
		t.Fatalf("expected headroom 38000, got %v", profile.CreditHeadroom())
	}
	if profile.CreditTerms != pricing.CreditMonthly {
		t.Fatalf("expected monthly terms, got %q", profile.CreditTerms)
	}
}

func TestOrderFromDraftCarriesTotalsVerbatim(t *testing.T) {
	userID := primitive.NewObjectID()
	shopID := primitive.NewObjectID()
	usd := 7.49
	distance := 3.2
	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	draft := checkoutDraft{
		items: []models.OrderItem{
			{ProductID: primitive.NewObjectID(), Name: "Rice", Price: 180, UnitType: "kg", Quantity: 2},
		},
	}
	totals := pricing.OrderTotals{
		Subtotal:          1000,
		BusinessDiscount:  100,
		DeliveryFee:       0,
		GrandTotal:        900,
		GrandTotalUSD:     &usd,
		NearestShopID:     shopID.Hex(),
		NearestShopName:   "Asan Bazaar",
		NearestDistanceKm: &distance,
		CreditDueDate:     &due,
	}
	req := createOrderRequest{
		checkoutQuoteRequest: checkoutQuoteRequest{
			DeliveryMethod: "home",
			PaymentMethod:  "credit",
			Destination:    &checkoutDestinationRequest{Latitude: 27.7, Longitude: 85.3},
		},
		Customer: checkoutCustomerRequest{Title: "Home", Detail: "Thamel, Kathmandu"},
	}

	order := orderFromDraft(draft, totals, req, &userID, nil)

	if order.Subtotal != 1000 || order.BusinessDiscount != 100 || order.TotalAmount != 900 {
		t.Fatalf("totals not carried verbatim: %+v", order)
	}
	if order.TotalAmountUSD == nil || *order.TotalAmountUSD != usd {
		t.Fatal("expected USD mirror on the order")
	}
	if order.NearestShopID == nil || *order.NearestShopID != shopID {
		t.Fatal("expected nearest shop id on the order")
	}
	if order.NearestDistanceKm == nil || *order.NearestDistanceKm != distance {
		t.Fatal("expected nearest distance on the order")
	}
	if order.CreditDueDate == nil || !order.CreditDueDate.Equal(due) {
		t.Fatal("expected credit due date on the order")
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("new orders start pending, got %q", order.Status)
	}
	if order.Destination == nil || order.Destination.Latitude != 27.7 {
		t.Fatal("expected destination persisted")
	}
}

func TestOrderFromDraftGuest(t *testing.T) {
	req := createOrderRequest{
		checkoutQuoteRequest: checkoutQuoteRequest{DeliveryMethod: "pickup", PaymentMethod: "cod"},
		Customer:             checkoutCustomerRequest{Title: "Pickup", Detail: "call on arrival"},
	}
	order := orderFromDraft(checkoutDraft{}, pricing.OrderTotals{Subtotal: 450, GrandTotal: 450}, req, nil, nil)

	if order.UserID != nil {
		t.Fatal("guest order must have nil userId")
	}
	if order.Destination != nil {
		t.Fatal("pickup order without destination must not persist one")
	}
	if order.TotalAmountUSD != nil {
		t.Fatal("cod order must not carry a USD mirror")
	}
}

func TestBuildCheckoutDraftOwnedShoppingList(t *testing.T) {
	owner := primitive.NewObjectID()
	listID := primitive.NewObjectID()
	deps := CheckoutDeps{
		Settings: fakeDeliverySettings{},
		Shops:    fakeShopLocations{},
		ShoppingLists: &fakeShoppingLists{stored: map[primitive.ObjectID]models.ShoppingList{
			listID: {ID: listID, UserID: &owner, Status: models.ShoppingListStatusOpen, EstimatedTotal: 500},
		}},
	}
	req := checkoutQuoteRequest{
		ShoppingListID: listID.Hex(),
		DeliveryMethod: "pickup",
		PaymentMethod:  "cod",
	}

	if _, err := buildCheckoutDraft(context.Background(), nil, deps, req, nil); err == nil {
		t.Fatal("guest must not consume a list owned by a user")
	}

	stranger := &models.User{ID: primitive.NewObjectID()}
	if _, err := buildCheckoutDraft(context.Background(), nil, deps, req, stranger); err == nil {
		t.Fatal("another user must not consume someone else's list")
	}

	me := &models.User{ID: owner}
	draft, err := buildCheckoutDraft(context.Background(), nil, deps, req, me)
	if err != nil {
		t.Fatalf("owner must be able to consume their list: %v", err)
	}
	if draft.input.ShoppingListSubtotal != 500 {
		t.Fatalf("expected list subtotal 500, got %v", draft.input.ShoppingListSubtotal)
	}
}

func TestBuildCheckoutDraftGuestShoppingList(t *testing.T) {
	listID := primitive.NewObjectID()
	deps := CheckoutDeps{
		Settings: fakeDeliverySettings{},
		Shops:    fakeShopLocations{},
		ShoppingLists: &fakeShoppingLists{stored: map[primitive.ObjectID]models.ShoppingList{
			listID: {ID: listID, Status: models.ShoppingListStatusOpen, EstimatedTotal: 300},
		}},
	}
	req := checkoutQuoteRequest{
		ShoppingListID: listID.Hex(),
		DeliveryMethod: "pickup",
		PaymentMethod:  "cod",
	}

	draft, err := buildCheckoutDraft(context.Background(), nil, deps, req, nil)
	if err != nil {
		t.Fatalf("unowned list must stay usable by guests: %v", err)
	}
	if draft.input.ShoppingListSubtotal != 300 {
		t.Fatalf("expected list subtotal 300, got %v", draft.input.ShoppingListSubtotal)
	}
}

func TestTotalsResponseOmitsOptionalFields(t *testing.T) {
	resp := totalsResponse(pricing.OrderTotals{Subtotal: 500, GrandTotal: 550, DeliveryFee: 50})

	if _, ok := resp["grandTotalUsd"]; ok {
		t.Fatal("grandTotalUsd must be absent without a USD mirror")
	}
	if _, ok := resp["nearestShopId"]; ok {
		t.Fatal("nearestShopId must be absent without a nearest shop")
	}
	if resp["grandTotal"] != 550.0 {
		t.Fatalf("expected grandTotal 550, got %v", resp["grandTotal"])
	}
}
