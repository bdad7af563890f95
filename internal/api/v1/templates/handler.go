package templates

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shoppingapp-backend/internal/ai"
	"shoppingapp-backend/internal/utils"
)

// Handler exposes the per-task prompt templates: the built-in defaults, the
// user overrides, and the enabled flag choosing between them.
type Handler struct {
	Store *ai.TemplateStore
}

func taskKind(c *gin.Context) (ai.TaskKind, bool) {
	kind := ai.TaskKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Unknown task kind"))
		return "", false
	}
	return kind, true
}

// ListTemplates godoc
// @Summary All task kinds with default, override and effective template
// @Tags templates
// @Produce json
// @Success 200 {object} utils.Response{data=[]TemplateView}
// @Router /templates [get]
func (h *Handler) ListTemplates(c *gin.Context) {
	var views []TemplateView
	for _, kind := range ai.AllTaskKinds() {
		view, err := h.buildView(kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
			return
		}
		views = append(views, *view)
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Templates retrieved", views))
}

// GetTemplate godoc
// @Summary One task kind's template state
// @Tags templates
// @Produce json
// @Param kind path string true "Task kind"
// @Success 200 {object} utils.Response{data=TemplateView}
// @Failure 400 {object} utils.Response
// @Router /templates/{kind} [get]
func (h *Handler) GetTemplate(c *gin.Context) {
	kind, ok := taskKind(c)
	if !ok {
		return
	}
	view, err := h.buildView(kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Template retrieved", view))
}

// UpdateTemplate godoc
// @Summary Save a custom template body and enabled flag
// @Tags templates
// @Accept json
// @Produce json
// @Param kind path string true "Task kind"
// @Param request body UpdateTemplateRequest true "Template"
// @Success 200 {object} utils.Response{data=TemplateView}
// @Failure 400 {object} utils.Response
// @Router /templates/{kind} [put]
func (h *Handler) UpdateTemplate(c *gin.Context) {
	kind, ok := taskKind(c)
	if !ok {
		return
	}

	var req UpdateTemplateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Store.SetOverride(kind, req.Body, req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	view, err := h.buildView(kind)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Template updated", view))
}

// ResetTemplate godoc
// @Summary Restore the built-in default for one task kind
// @Tags templates
// @Produce json
// @Param kind path string true "Task kind"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /templates/{kind}/reset [post]
func (h *Handler) ResetTemplate(c *gin.Context) {
	kind, ok := taskKind(c)
	if !ok {
		return
	}
	if err := h.Store.Reset(kind); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Template reset", nil))
}

// ResetAllTemplates godoc
// @Summary Restore the built-in defaults for every task kind
// @Tags templates
// @Produce json
// @Success 200 {object} utils.Response
// @Router /templates/reset [post]
func (h *Handler) ResetAllTemplates(c *gin.Context) {
	if err := h.Store.ResetAll(); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Templates reset", nil))
}

func (h *Handler) buildView(kind ai.TaskKind) (*TemplateView, error) {
	effective, err := h.Store.GetEffective(kind)
	if err != nil {
		return nil, err
	}

	view := &TemplateView{
		TaskKind:  string(kind),
		Default:   h.Store.Default(kind),
		Effective: effective,
	}

	override, err := h.Store.GetOverride(kind)
	if err != nil {
		return nil, err
	}
	if override != nil {
		view.CustomBody = override.Body
		view.CustomEnabled = override.Enabled
	}
	return view, nil
}
