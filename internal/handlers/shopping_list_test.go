package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"backend/internal/models"
)

/* =========================
   REPOSITORY FAKES
========================= */

type fakeShoppingLists struct {
	stored  map[primitive.ObjectID]models.ShoppingList
	created []models.ShoppingList
}

func (f *fakeShoppingLists) Create(ctx context.Context, list models.ShoppingList) (models.ShoppingList, error) {
	list.ID = primitive.NewObjectID()
	list.Reference = "test-reference"
	list.Status = models.ShoppingListStatusOpen
	f.created = append(f.created, list)
	return list, nil
}

func (f *fakeShoppingLists) Get(ctx context.Context, id primitive.ObjectID) (models.ShoppingList, error) {
	list, ok := f.stored[id]
	if !ok {
		return models.ShoppingList{}, mongo.ErrNoDocuments
	}
	return list, nil
}

func (f *fakeShoppingLists) List(ctx context.Context) ([]models.ShoppingList, error) {
	out := make([]models.ShoppingList, 0, len(f.stored))
	for _, list := range f.stored {
		out = append(out, list)
	}
	return out, nil
}

func (f *fakeShoppingLists) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	list, ok := f.stored[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	list.Status = status
	f.stored[id] = list
	return nil
}

type fakeDeliverySettings struct{}

func (fakeDeliverySettings) ActiveSettings(ctx context.Context) (*models.DeliverySettings, error) {
	return nil, nil
}

func (fakeDeliverySettings) Save(ctx context.Context, s models.DeliverySettings) (models.DeliverySettings, error) {
	return s, nil
}

type fakeShopLocations struct{}

func (fakeShopLocations) List(ctx context.Context) ([]models.ShopLocation, error) {
	return nil, nil
}

func (fakeShopLocations) Create(ctx context.Context, shop models.ShopLocation) (models.ShopLocation, error) {
	return shop, nil
}

func (fakeShopLocations) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error {
	return nil
}

func (fakeShopLocations) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

/* =========================
   CREATE SHOPPING LIST
========================= */

func TestCreateShoppingListWithoutUnitType(t *testing.T) {
	fake := &fakeShoppingLists{}
	body := `{"customerContact":"9800000000","items":[{"name":"Eggs","price":20,"quantity":12}]}`

	w := postJSON(t, CreateShoppingList(fake), body)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for item without unitType, got %d body=%s", w.Code, w.Body.String())
	}
	if len(fake.created) != 1 {
		t.Fatalf("expected one created list, got %d", len(fake.created))
	}
	created := fake.created[0]
	if created.EstimatedTotal != 240 {
		t.Fatalf("expected estimated total 240, got %v", created.EstimatedTotal)
	}
	if created.Items[0].UnitType != "" {
		t.Fatalf("expected omitted unitType to stay empty, got %q", created.Items[0].UnitType)
	}
}

func TestCreateShoppingListWithKnownUnitType(t *testing.T) {
	fake := &fakeShoppingLists{}
	body := `{"customerContact":"9800000000","items":[{"name":"Rice","price":180,"unitType":"kg","quantity":2.5}]}`

	w := postJSON(t, CreateShoppingList(fake), body)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}
	if fake.created[0].EstimatedTotal != 450 {
		t.Fatalf("expected estimated total 450, got %v", fake.created[0].EstimatedTotal)
	}
}

func TestCreateShoppingListRejectsUnknownUnitType(t *testing.T) {
	fake := &fakeShoppingLists{}
	body := `{"customerContact":"9800000000","items":[{"name":"Eggs","price":20,"unitType":"dozen","quantity":1}]}`

	w := postJSON(t, CreateShoppingList(fake), body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown unitType, got %d", w.Code)
	}
	if len(fake.created) != 0 {
		t.Fatal("rejected list must not be persisted")
	}
}
