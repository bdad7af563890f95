package items

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shoppingapp-backend/internal/models"
	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/internal/utils"
)

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// ListShoppingLists godoc
// @Summary List all shopping lists with items
// @Tags items
// @Produce json
// @Success 200 {object} utils.Response{data=[]models.ShoppingList}
// @Router /lists [get]
func ListShoppingLists(c *gin.Context) {
	lists, err := services.FindShoppingLists()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Lists retrieved", lists))
}

// CreateShoppingList godoc
// @Summary Create a shopping list
// @Tags items
// @Accept json
// @Produce json
// @Param request body CreateListRequest true "List"
// @Success 200 {object} utils.Response{data=models.ShoppingList}
// @Failure 400 {object} utils.Response
// @Router /lists [post]
func CreateShoppingList(c *gin.Context) {
	var req CreateListRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	list, err := services.CreateShoppingList(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("List created", list))
}

// DeleteShoppingList godoc
// @Summary Delete a shopping list and its items
// @Tags items
// @Produce json
// @Param id path int true "List ID"
// @Success 200 {object} utils.Response
// @Router /lists/{id} [delete]
func DeleteShoppingList(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteShoppingList(id); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("List deleted", nil))
}

// CreateItem godoc
// @Summary Add an item to a list
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param request body CreateItemRequest true "Item"
// @Success 200 {object} utils.Response{data=models.ShoppingItem}
// @Failure 400 {object} utils.Response
// @Router /lists/{id}/items [post]
func CreateItem(c *gin.Context) {
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	item := &models.ShoppingItem{
		ShoppingListID: listID,
		Name:           req.Name,
		Brand:          req.Brand,
		Quantity:       req.Quantity,
		UnitCost:       req.UnitCost,
		Ingredients:    req.Ingredients,
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	if err := services.CreateShoppingItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Item created", item))
}

// UpdateItem godoc
// @Summary Update an item
// @Tags items
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Fields"
// @Success 200 {object} utils.Response{data=models.ShoppingItem}
// @Failure 404 {object} utils.Response
// @Router /items/{id} [put]
func UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	item, err := services.GetShoppingItem(id)
	if err != nil {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse(http.StatusNotFound, "Item not found"))
		return
	}

	var req UpdateItemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Brand != nil {
		item.Brand = *req.Brand
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.UnitCost != nil {
		item.UnitCost = req.UnitCost
	}
	if req.TaxRate != nil {
		item.TaxRate = req.TaxRate
		item.UnknownTax = false
	}
	if req.Ingredients != nil {
		item.Ingredients = *req.Ingredients
	}

	if err := services.UpdateShoppingItem(item); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Item updated", item))
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} utils.Response
// @Router /items/{id} [delete]
func DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteShoppingItem(id); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Item deleted", nil))
}
