package billing

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/ledger"
	"shoppingapp-backend/internal/utils"
)

// Handler exposes the usage ledger. ClearHistory and Reset are deliberately
// separate endpoints: clearing the history never touches cumulative spend.
type Handler struct {
	Ledger *ledger.Ledger
}

// GetSummary godoc
// @Summary Billing totals, budget and projections
// @Tags billing
// @Produce json
// @Success 200 {object} utils.Response{data=SummaryResponse}
// @Router /billing/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.Ledger.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	resp := SummaryResponse{Summary: summary}
	for _, kind := range ai.AllTaskKinds() {
		count, known, err := h.Ledger.EstimatedRemainingCount(string(kind))
		if err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
			return
		}
		projection := RemainingProjection{TaskKind: string(kind)}
		if known {
			projection.Remaining = &count
		}
		resp.Projections = append(resp.Projections, projection)
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Billing summary", resp))
}

// GetHistory godoc
// @Summary Visible interaction history, newest first
// @Tags billing
// @Produce json
// @Success 200 {object} utils.Response{data=[]models.InteractionRecord}
// @Router /billing/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	records, err := h.Ledger.History()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("History retrieved", records))
}

// ExportHistoryCSV godoc
// @Summary Download the visible history as CSV
// @Tags billing
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Router /billing/history/export [get]
func (h *Handler) ExportHistoryCSV(c *gin.Context) {
	records, err := h.Ledger.History()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	data, err := ledger.GenerateHistoryCSV(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("ai-history-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

// DeleteRecord godoc
// @Summary Delete one history entry (totals unaffected)
// @Tags billing
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} utils.Response
// @Router /billing/history/{id} [delete]
func (h *Handler) DeleteRecord(c *gin.Context) {
	if err := h.Ledger.DeleteRecord(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Record deleted", nil))
}

// ClearHistory godoc
// @Summary Empty the visible history (totals unaffected)
// @Tags billing
// @Produce json
// @Success 200 {object} utils.Response
// @Router /billing/history [delete]
func (h *Handler) ClearHistory(c *gin.Context) {
	if err := h.Ledger.ClearDisplayHistory(); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("History cleared", nil))
}

// ResetBilling godoc
// @Summary Zero all totals, accumulators and the manual adjustment
// @Tags billing
// @Produce json
// @Success 200 {object} utils.Response
// @Router /billing/reset [post]
func (h *Handler) ResetBilling(c *gin.Context) {
	if err := h.Ledger.ResetBilling(); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Billing reset", nil))
}

// SetBudget godoc
// @Summary Set or clear the spending budget
// @Tags billing
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "Budget"
// @Success 200 {object} utils.Response
// @Router /billing/budget [put]
func (h *Handler) SetBudget(c *gin.Context) {
	var req BudgetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if req.Amount != nil && *req.Amount < 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Budget must be non-negative"))
		return
	}
	if err := h.Ledger.SetBudget(req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Budget updated", nil))
}

// SetAdjustment godoc
// @Summary Set the manual spend adjustment
// @Tags billing
// @Accept json
// @Produce json
// @Param request body AdjustmentRequest true "Adjustment"
// @Success 200 {object} utils.Response
// @Router /billing/adjustment [put]
func (h *Handler) SetAdjustment(c *gin.Context) {
	var req AdjustmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if err := h.Ledger.SetManualAdjustment(req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Adjustment updated", nil))
}

// SetTotalOverride godoc
// @Summary Reconcile the tracked total with an external invoice
// @Tags billing
// @Accept json
// @Produce json
// @Param request body TotalOverrideRequest true "Target total"
// @Success 200 {object} utils.Response
// @Router /billing/total-override [put]
func (h *Handler) SetTotalOverride(c *gin.Context) {
	var req TotalOverrideRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if err := h.Ledger.SetTotalSpentOverride(req.Amount); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Total override applied", nil))
}
