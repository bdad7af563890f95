package items_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shoppingapp-backend/internal/api/v1/items"
	"shoppingapp-backend/internal/database"
	"shoppingapp-backend/internal/models"
	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/pkg/logger"
)

func setupTestDB() {
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to connect database: %v", err))
	}
	if err := db.AutoMigrate(&models.ShoppingList{}, &models.ShoppingItem{}); err != nil {
		panic("failed to migrate database")
	}
	database.DB = db
}

func TestCreateShoppingListHandler(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/lists", bytes.NewBufferString(`{"name": "Weekly groceries"}`))

	items.CreateShoppingList(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.ShoppingList `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Data.ID)
	assert.Equal(t, "Weekly groceries", resp.Data.Name)
}

func TestCreateShoppingListRequiresName(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/lists", bytes.NewBufferString(`{}`))

	items.CreateShoppingList(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateItemDefaultsQuantity(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	list, err := services.CreateShoppingList("Trip")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/lists/1/items", bytes.NewBufferString(`{"name": "Milk"}`))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(list.ID)}}

	items.CreateItem(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.ShoppingItem `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.Quantity)
	assert.Equal(t, list.ID, resp.Data.ShoppingListID)
}

func TestUpdateItemPartial(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	list, _ := services.CreateShoppingList("Trip")
	item := &models.ShoppingItem{ShoppingListID: list.ID, Name: "Milk", Brand: "Acme", UnknownTax: true}
	assert.NoError(t, services.CreateShoppingItem(item))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/items/1", bytes.NewBufferString(`{"tax_rate": 6.5}`))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(item.ID)}}

	items.UpdateItem(c)
	assert.Equal(t, http.StatusOK, w.Code)

	got, err := services.GetShoppingItem(item.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got.TaxRate)
	assert.Equal(t, 6.5, *got.TaxRate)
	// Setting a rate by hand resolves the unknown flag; other fields stay.
	assert.False(t, got.UnknownTax)
	assert.Equal(t, "Acme", got.Brand)
}

func TestUpdateItemNotFound(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/items/999", bytes.NewBufferString(`{"name": "x"}`))
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	items.UpdateItem(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteShoppingListHandler(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)

	list, _ := services.CreateShoppingList("Trip")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/lists/1", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(list.ID)}}

	items.DeleteShoppingList(c)
	assert.Equal(t, http.StatusOK, w.Code)

	lists, err := services.FindShoppingLists()
	assert.NoError(t, err)
	assert.Empty(t, lists)
}
