package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestValidateSaleFieldsMissingSalePrice(t *testing.T) {
	err := validateSaleFields(100, true, 0, false)
	if err == nil {
		t.Fatal("expected validation error when saleEnabled=true and salePrice is missing")
	}
}

func TestValidateSaleFieldsSalePriceGreaterOrEqualPrice(t *testing.T) {
	tests := []float64{100, 120}
	for _, salePrice := range tests {
		err := validateSaleFields(100, true, salePrice, true)
		if err == nil {
			t.Fatalf("expected validation error for salePrice=%v", salePrice)
		}
	}
}

func TestValidateSaleFieldsDisabledSaleIgnoresPrice(t *testing.T) {
	if err := validateSaleFields(100, false, 0, false); err != nil {
		t.Fatalf("expected no error when sale disabled, got %v", err)
	}
}

func TestEffectiveUnitPrice(t *testing.T) {
	if got := effectiveUnitPrice(150, true, 120); got != 120 {
		t.Fatalf("expected sale price 120, got %v", got)
	}
	if got := effectiveUnitPrice(150, false, 120); got != 150 {
		t.Fatalf("expected regular price when sale disabled, got %v", got)
	}
	if got := effectiveUnitPrice(150, true, 200); got != 150 {
		t.Fatalf("expected regular price when sale price above price, got %v", got)
	}
}

func TestResolveSaleUpdateDisablingSaleClearsPrice(t *testing.T) {
	disabled := false
	result, err := resolveSaleUpdate(100, true, 80, saleUpdateInput{SaleEnabled: &disabled})
	if err != nil {
		t.Fatalf("resolveSaleUpdate returned error: %v", err)
	}
	if result.SaleEnabled || result.SalePrice != 0 {
		t.Fatalf("expected sale cleared, got enabled=%v salePrice=%v", result.SaleEnabled, result.SalePrice)
	}
	if !result.SetSalePrice {
		t.Fatal("expected SetSalePrice so the cleared price is persisted")
	}
}

func TestResolveSaleUpdateRejectsSalePriceAboveNewPrice(t *testing.T) {
	newPrice := 70.0
	_, err := resolveSaleUpdate(100, true, 80, saleUpdateInput{Price: &newPrice})
	if err == nil {
		t.Fatal("expected error when price drops below the stored sale price")
	}
}

func TestNormalizeProductDocumentIncludesSaleFields(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":        "Test",
		"price":       100.0,
		"saleEnabled": true,
		"salePrice":   80.0,
		"stock":       5,
		"category":    []string{"Grains"},
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if !product.SaleEnabled || product.SalePrice != 80 {
		t.Fatalf("expected sale fields to be preserved, got saleEnabled=%v salePrice=%v", product.SaleEnabled, product.SalePrice)
	}
	if !product.IsOnSale {
		t.Fatal("expected IsOnSale to be true")
	}
}

func TestNormalizeProductDocumentLegacyShape(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":     "Basmati Rice",
		"price":    180.0,
		"stock":    int32(12),
		"category": "Grains",
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}
	if product.UnitType != "kg" {
		t.Fatalf("expected default unitType kg, got %q", product.UnitType)
	}
	if product.Stock != 12 {
		t.Fatalf("expected integer stock lifted to float, got %v", product.Stock)
	}
	if len(product.Category) != 1 || product.Category[0] != "Grains" {
		t.Fatalf("expected string category wrapped in a slice, got %v", product.Category)
	}
	if !product.InStock {
		t.Fatal("expected InStock for positive stock")
	}
}

func TestProductJSONAlwaysIncludesSalePrice(t *testing.T) {
	product, err := normalizeProductDocument(bson.M{
		"name":        "Test",
		"price":       120.0,
		"saleEnabled": true,
		"salePrice":   99.0,
		"stock":       10,
		"category":    []string{"Lentils"},
	})
	if err != nil {
		t.Fatalf("normalizeProductDocument returned error: %v", err)
	}

	encoded, err := json.Marshal(product)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if !strings.Contains(string(encoded), "salePrice") {
		t.Fatalf("expected salePrice in JSON, got %s", encoded)
	}
}
