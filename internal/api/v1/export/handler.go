package export

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shoppingapp-backend/internal/services"
	"shoppingapp-backend/internal/utils"
)

// ExportLists godoc
// @Summary Download a portable snapshot of the shopping lists
// @Description The AI/billing ledger is per-install and never included.
// @Tags export
// @Produce json
// @Success 200 {object} services.ExportDocument
// @Router /export [get]
func ExportLists(c *gin.Context) {
	data, err := services.ExportSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, err.Error()))
		return
	}

	filename := fmt.Sprintf("shopping-lists-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportLists godoc
// @Summary Replace the shopping lists from a snapshot
// @Description Ledger state is untouched regardless of the document contents.
// @Tags export
// @Accept json
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /export [post]
func ImportLists(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Failed to read request body"))
		return
	}

	count, err := services.ImportSnapshot(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Snapshot imported", gin.H{"lists": count}))
}
