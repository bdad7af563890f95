package analysis

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/analysis")
	{
		group.POST("/items/:id/tax-rate", h.LookupTaxRate)
		group.POST("/items/:id/price-guess", h.GuessPrice)
		group.POST("/items/:id/additives", h.AnalyzeAdditives)
		group.POST("/lists/:id/price-tag", h.AnalyzePriceTag)
	}
}
