package billing

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/billing")
	{
		group.GET("/summary", h.GetSummary)
		group.GET("/history", h.GetHistory)
		group.GET("/history/export", h.ExportHistoryCSV)
		group.DELETE("/history", h.ClearHistory)
		group.DELETE("/history/:id", h.DeleteRecord)
		group.POST("/reset", h.ResetBilling)
		group.PUT("/budget", h.SetBudget)
		group.PUT("/adjustment", h.SetAdjustment)
		group.PUT("/total-override", h.SetTotalOverride)
	}
}
