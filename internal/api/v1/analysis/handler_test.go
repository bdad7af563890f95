package analysis_test

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shoppingapp-backend/config"
	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/api/v1/analysis"
	"shoppingapp-backend/internal/database"
	"shoppingapp-backend/internal/ledger"
	"shoppingapp-backend/internal/models"
	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/pkg/logger"
)

func setupTestHandler() *analysis.Handler {
	return setupTestHandlerWith(&config.Config{}, nil)
}

func setupTestHandlerWith(cfg *config.Config, client *http.Client) *analysis.Handler {
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to connect database: %v", err))
	}
	err = db.AutoMigrate(
		&models.ShoppingList{},
		&models.ShoppingItem{},
		&models.Setting{},
		&models.PromptOverride{},
		&models.InteractionRecord{},
		&models.BillingState{},
		&models.CategoryStat{},
	)
	if err != nil {
		panic("failed to migrate database")
	}
	database.DB = db
	database.RedisClient = nil

	settings := services.NewSettingsService(db, cfg)
	registry := ai.NewRegistry()
	templates := ai.NewTemplateStore(db)
	builder := ai.NewRequestBuilder(registry, settings)
	dispatcher := ai.NewDispatcher(registry, templates, builder, ledger.New(db), client)
	cache := services.NewAnalysisCache(nil)

	return &analysis.Handler{
		Service: services.NewAnalysisService(db, dispatcher, settings, cache),
	}
}

func TestLookupTaxRateInvalidID(t *testing.T) {
	h := setupTestHandler()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/analysis/items/abc/tax-rate", bytes.NewBufferString(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.LookupTaxRate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupTaxRateMissingKeyIsConfigError(t *testing.T) {
	h := setupTestHandler()
	gin.SetMode(gin.TestMode)

	list, err := services.CreateShoppingList("Trip")
	assert.NoError(t, err)
	item := &models.ShoppingItem{ShoppingListID: list.ID, Name: "Milk"}
	assert.NoError(t, services.CreateShoppingItem(item))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/analysis/items/1/tax-rate",
		bytes.NewBufferString(`{"location": "Ohio"}`))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(item.ID)}}

	h.LookupTaxRate(c)

	// No credential configured anywhere maps to a client-fixable 400.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "API key")
}

func TestAnalyzePriceTagRejectsBadBase64(t *testing.T) {
	h := setupTestHandler()
	gin.SetMode(gin.TestMode)

	list, err := services.CreateShoppingList("Trip")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/analysis/lists/1/price-tag",
		bytes.NewBufferString(`{"image_base64": "!!!not-base64!!!"}`))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(list.ID)}}

	h.AnalyzePriceTag(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzePriceTagRequiresImageField(t *testing.T) {
	h := setupTestHandler()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/analysis/lists/1/price-tag", bytes.NewBufferString(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	h.AnalyzePriceTag(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// proseBodyTransport answers every request with a chat completion whose
// content carries no JSON at all.
type proseBodyTransport struct{}

func (proseBodyTransport) RoundTrip(*http.Request) (*http.Response, error) {
	body := `{"choices":[{"message":{"content":"The photo is too blurry to read."}}]}`
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func TestAnalyzePriceTagUnreadablePhotoIs200(t *testing.T) {
	h := setupTestHandlerWith(
		&config.Config{OpenAIKey: "test-key"},
		&http.Client{Transport: proseBodyTransport{}},
	)
	gin.SetMode(gin.TestMode)

	list, err := services.CreateShoppingList("Trip")
	assert.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var pngBuf bytes.Buffer
	assert.NoError(t, png.Encode(&pngBuf, img))
	payload := fmt.Sprintf(`{"image_base64": %q}`, base64.StdEncoding.EncodeToString(pngBuf.Bytes()))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/analysis/lists/1/price-tag", bytes.NewBufferString(payload))
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(list.ID)}}

	h.AnalyzePriceTag(c)

	// An unreadable tag is indeterminate, not a server error, and no item
	// is created.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "indeterminate")

	var count int64
	assert.NoError(t, database.DB.Model(&models.ShoppingItem{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAnalyzeAdditivesMissingItem(t *testing.T) {
	h := setupTestHandler()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/analysis/items/999/additives",
		bytes.NewBufferString(`{"ingredients": "water, salt"}`))
	c.Params = gin.Params{{Key: "id", Value: "999"}}

	h.AnalyzeAdditives(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
