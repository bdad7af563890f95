package analysis

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/internal/utils"
)

// Handler triggers AI tasks. Each endpoint is one dispatch: failures are
// local to the call, and the client's "Retry Analysis" button is just a
// fresh request.
type Handler struct {
	Service *services.AnalysisService
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// writeDispatchError maps the engine's error taxonomy onto HTTP statuses.
func writeDispatchError(c *gin.Context, err error) {
	var configErr *ai.ConfigError
	var transportErr *ai.TransportError
	switch {
	case errors.As(err, &configErr):
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, configErr.Error()))
	case errors.As(err, &transportErr):
		c.JSON(http.StatusBadGateway, utils.NewErrorResponse(http.StatusBadGateway, transportErr.Error()))
	default:
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
	}
}

// LookupTaxRate godoc
// @Summary Look up the sales tax rate for an item
// @Tags analysis
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body TaxRateRequest true "Context"
// @Success 200 {object} utils.Response{data=TaxRateResponse}
// @Failure 400 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /analysis/items/{id}/tax-rate [post]
func (h *Handler) LookupTaxRate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req TaxRateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Service.LookupTaxRate(c.Request.Context(), id, req.Location)
	if err != nil {
		writeDispatchError(c, err)
		return
	}

	resp := TaxRateResponse{Indeterminate: result == nil || result.TaxRate == nil}
	if result != nil {
		resp.TaxRate = result.TaxRate
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tax rate lookup completed", resp))
}

// AnalyzePriceTag godoc
// @Summary Create an item from a price-tag photo
// @Tags analysis
// @Accept json
// @Produce json
// @Param id path int true "List ID"
// @Param request body PriceTagRequest true "Image"
// @Success 200 {object} utils.Response{data=models.ShoppingItem}
// @Failure 400 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /analysis/lists/{id}/price-tag [post]
func (h *Handler) AnalyzePriceTag(c *gin.Context) {
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PriceTagRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "image_base64 is not valid base64"))
		return
	}

	item, err := h.Service.AnalyzePriceTag(c.Request.Context(), listID, image, req.Location)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	if item == nil {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Price tag analysis indeterminate", nil))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Price tag analyzed", item))
}

// GuessPrice godoc
// @Summary Estimate the typical price of an item
// @Tags analysis
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body PriceGuessRequest true "Context"
// @Success 200 {object} utils.Response{data=PriceGuessResponse}
// @Failure 400 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /analysis/items/{id}/price-guess [post]
func (h *Handler) GuessPrice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req PriceGuessRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Service.GuessPrice(c.Request.Context(), id, req.Details, req.Location)
	if err != nil {
		writeDispatchError(c, err)
		return
	}

	resp := PriceGuessResponse{Indeterminate: result == nil || result.EstimatedPrice == nil}
	if result != nil {
		resp.EstimatedPrice = result.EstimatedPrice
		resp.SourceURL = result.SourceURL
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Price estimation completed", resp))
}

// AnalyzeAdditives godoc
// @Summary Classify the additives in an item's ingredient list
// @Tags analysis
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param request body AdditivesRequest true "Ingredients"
// @Success 200 {object} utils.Response{data=ai.AdditiveResult}
// @Failure 400 {object} utils.Response
// @Failure 502 {object} utils.Response
// @Router /analysis/items/{id}/additives [post]
func (h *Handler) AnalyzeAdditives(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AdditivesRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Service.AnalyzeAdditives(c.Request.Context(), id, req.Ingredients)
	if err != nil {
		writeDispatchError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, utils.NewSuccessResponse("Additive analysis indeterminate", nil))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Additive analysis completed", result))
}
