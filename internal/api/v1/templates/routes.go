package templates

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/templates")
	{
		group.GET("", h.ListTemplates)
		group.POST("/reset", h.ResetAllTemplates)
		group.GET("/:kind", h.GetTemplate)
		group.PUT("/:kind", h.UpdateTemplate)
		group.POST("/:kind/reset", h.ResetTemplate)
	}
}
