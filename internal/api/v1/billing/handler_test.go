package billing_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shoppingapp-backend/internal/api/v1/billing"
	"shoppingapp-backend/internal/ledger"
	"shoppingapp-backend/internal/models"
	"shoppingapp-backend/pkg/logger"
)

func setupTestLedger() *ledger.Ledger {
	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to connect database: %v", err))
	}
	err = db.AutoMigrate(&models.InteractionRecord{}, &models.BillingState{}, &models.CategoryStat{})
	if err != nil {
		panic("failed to migrate database")
	}
	return ledger.New(db)
}

func seedRecord(l *ledger.Ledger, taskKind string, cost float64) {
	rec := ledger.NewRecord(taskKind, "prompt", "response", "milk", "Perplexity", "sonar", cost, 100, 50)
	if err := l.Record(rec); err != nil {
		panic(err)
	}
}

func TestGetSummary(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)

	budget := 10.0
	assert.NoError(t, l.SetBudget(&budget))
	seedRecord(l, "tax_rate_lookup", 0.5)
	seedRecord(l, "tax_rate_lookup", 0.5)

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/billing/summary", nil)

	h.GetSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data billing.SummaryResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 1.0, resp.Data.TotalSpent, 1e-9)
	assert.Equal(t, int64(2), resp.Data.TotalCount)
	assert.NotNil(t, resp.Data.RemainingBudget)
	assert.InDelta(t, 9.0, *resp.Data.RemainingBudget, 1e-9)

	assert.Len(t, resp.Data.Projections, 4)
	byKind := map[string]*int64{}
	for _, p := range resp.Data.Projections {
		byKind[p.TaskKind] = p.Remaining
	}
	assert.NotNil(t, byKind["tax_rate_lookup"])
	assert.Equal(t, int64(18), *byKind["tax_rate_lookup"])
	// No history for the other categories: unknown, rendered as null.
	assert.Nil(t, byKind["price_guess"])
}

func TestClearHistoryKeepsTotals(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)
	seedRecord(l, "tax_rate_lookup", 0.5)

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/billing/history", nil)

	h.ClearHistory(c)
	assert.Equal(t, http.StatusOK, w.Code)

	summary, err := l.Summary()
	assert.NoError(t, err)
	assert.Equal(t, int64(1), summary.TotalCount)
	assert.InDelta(t, 0.5, summary.TotalSpent, 1e-9)

	records, err := l.History()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestResetBillingHandler(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)
	seedRecord(l, "tax_rate_lookup", 0.5)

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("POST", "/billing/reset", nil)

	h.ResetBilling(c)
	assert.Equal(t, http.StatusOK, w.Code)

	summary, err := l.Summary()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), summary.TotalCount)
	assert.Equal(t, 0.0, summary.TotalSpent)
}

func TestSetBudgetAndClear(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/billing/budget", bytes.NewBufferString(`{"amount": 25.0}`))

	h.SetBudget(c)
	assert.Equal(t, http.StatusOK, w.Code)

	summary, err := l.Summary()
	assert.NoError(t, err)
	assert.NotNil(t, summary.BudgetAmount)
	assert.Equal(t, 25.0, *summary.BudgetAmount)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/billing/budget", bytes.NewBufferString(`{"amount": null}`))

	h.SetBudget(c)
	assert.Equal(t, http.StatusOK, w.Code)

	summary, err = l.Summary()
	assert.NoError(t, err)
	assert.Nil(t, summary.BudgetAmount)
}

func TestSetBudgetRejectsNegative(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/billing/budget", bytes.NewBufferString(`{"amount": -1}`))

	h.SetBudget(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSetTotalOverrideHandler(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)
	seedRecord(l, "tax_rate_lookup", 0.5)

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("PUT", "/billing/total-override", bytes.NewBufferString(`{"amount": 2.0}`))

	h.SetTotalOverride(c)
	assert.Equal(t, http.StatusOK, w.Code)

	summary, err := l.Summary()
	assert.NoError(t, err)
	assert.InDelta(t, 1.5, summary.ManualAdjustment, 1e-9)
}

func TestDeleteRecordHandler(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)

	rec := ledger.NewRecord("price_guess", "p", "r", "milk", "Gemini", "gemini-2.0-flash", 0.1, 10, 5)
	assert.NoError(t, l.Record(rec))

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("DELETE", "/billing/history/"+rec.ID, nil)
	c.Params = gin.Params{{Key: "id", Value: rec.ID}}

	h.DeleteRecord(c)
	assert.Equal(t, http.StatusOK, w.Code)

	records, err := l.History()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestExportHistoryCSVHandler(t *testing.T) {
	l := setupTestLedger()
	gin.SetMode(gin.TestMode)
	seedRecord(l, "tax_rate_lookup", 0.5)

	h := &billing.Handler{Ledger: l}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/billing/history/export", nil)

	h.ExportHistoryCSV(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "tax_rate_lookup")
}
