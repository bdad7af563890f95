package export

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/export")
	{
		group.GET("", ExportLists)
		group.POST("", ImportLists)
	}
}
