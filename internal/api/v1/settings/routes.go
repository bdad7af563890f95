package settings

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, h *Handler) {
	group := router.Group("/settings")
	{
		group.GET("/models", h.ListModels)
		group.GET("/selection", h.GetSelection)
		group.PUT("/selection", h.UpdateSelection)
		group.GET("/keys", h.GetKeys)
		group.PUT("/keys", h.UpdateKeys)
	}
}
