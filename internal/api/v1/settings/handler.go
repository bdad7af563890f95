package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/internal/utils"
)

// Handler exposes model selection and provider credentials. API keys are
// write-only: responses report whether a key is configured, never its value.
type Handler struct {
	Registry *ai.Registry
	Settings *services.SettingsService
}

// ListModels godoc
// @Summary Every model in the registry
// @Tags settings
// @Produce json
// @Success 200 {object} utils.Response{data=[]ai.ModelDescriptor}
// @Router /settings/models [get]
func (h *Handler) ListModels(c *gin.Context) {
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Models retrieved", h.Registry.Models()))
}

// GetSelection godoc
// @Summary The selected model per task category
// @Tags settings
// @Produce json
// @Success 200 {object} utils.Response{data=SelectionResponse}
// @Router /settings/selection [get]
func (h *Handler) GetSelection(c *gin.Context) {
	var resp SelectionResponse
	var err error
	if resp.TaxRateModel, err = h.Settings.ModelFor(ai.TaskTaxRateLookup); err == nil {
		if resp.PriceTagModel, err = h.Settings.ModelFor(ai.TaskPriceTagAnalysis); err == nil {
			resp.GenericModel, err = h.Settings.ModelFor(ai.TaskPriceGuess)
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Selection retrieved", resp))
}

// UpdateSelection godoc
// @Summary Change the selected model per task category
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateSelectionRequest true "Selection"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /settings/selection [put]
func (h *Handler) UpdateSelection(c *gin.Context) {
	var req UpdateSelectionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updates := map[string]string{
		services.SettingModelTaxRate:  req.TaxRateModel,
		services.SettingModelPriceTag: req.PriceTagModel,
		services.SettingModelGeneric:  req.GenericModel,
	}
	for key, modelID := range updates {
		if modelID == "" {
			continue
		}
		if _, err := h.Registry.Resolve(modelID); err != nil {
			c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
			return
		}
		if err := h.Settings.Set(key, modelID); err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
			return
		}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Selection updated", nil))
}

// GetKeys godoc
// @Summary Which provider families have a credential configured
// @Tags settings
// @Produce json
// @Success 200 {object} utils.Response{data=KeysResponse}
// @Router /settings/keys [get]
func (h *Handler) GetKeys(c *gin.Context) {
	resp := KeysResponse{
		OpenAIConfigured:     h.Settings.APIKey(ai.FamilyOpenAI) != "",
		PerplexityConfigured: h.Settings.APIKey(ai.FamilyPerplexity) != "",
		GeminiConfigured:     h.Settings.APIKey(ai.FamilyGemini) != "",
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Key status retrieved", resp))
}

// UpdateKeys godoc
// @Summary Save provider API keys
// @Tags settings
// @Accept json
// @Produce json
// @Param request body UpdateKeysRequest true "Keys"
// @Success 200 {object} utils.Response
// @Router /settings/keys [put]
func (h *Handler) UpdateKeys(c *gin.Context) {
	var req UpdateKeysRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updates := map[string]*string{
		services.SettingKeyOpenAI:     req.OpenAIKey,
		services.SettingKeyPerplexity: req.PerplexityKey,
		services.SettingKeyGemini:     req.GeminiKey,
	}
	for key, value := range updates {
		if value == nil {
			continue
		}
		if err := h.Settings.Set(key, *value); err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
			return
		}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Keys updated", nil))
}
