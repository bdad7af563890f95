package items

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	listGroup := router.Group("/lists")
	{
		listGroup.GET("", ListShoppingLists)
		listGroup.POST("", CreateShoppingList)
		listGroup.DELETE("/:id", DeleteShoppingList)
		listGroup.POST("/:id/items", CreateItem)
	}

	itemGroup := router.Group("/items")
	{
		itemGroup.PUT("/:id", UpdateItem)
		itemGroup.DELETE("/:id", DeleteItem)
	}
}
