package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"companycrm/internal/services"
)

// PipelineHandler handles data pipeline requests.
type PipelineHandler struct {
	syncService services.SyncServicer
}

// NewPipelineHandler creates a new PipelineHandler.
func NewPipelineHandler(syncService services.SyncServicer) *PipelineHandler {
	return &PipelineHandler{syncService: syncService}
}

// Sync copies the Google Sheet into the snapshot store.
// @Summary     Sync companies from the sheet
// @Description Reads every sheet row and upserts it by company name
// @Tags        pipeline
// @Produce     json
// @Security    PipelineKey
// @Success     200 {object} services.SyncResult "Sync counts"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     503 {object} ErrorResponse "Sync source unavailable"
// @Router      /pipeline/sync [post]
func (h *PipelineHandler) Sync(c *gin.Context) {
	result, err := h.syncService.Sync(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
