package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"formpilot/internal/service"
)

// RecordHandler handles stored record endpoints.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// GetByToken handles GET /api/v1/records/:token
func (h *RecordHandler) GetByToken(c *gin.Context) {
	stored, err := h.recordService.Get(c.Request.Context(), c.Param("token"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stored)
}

// Delete handles DELETE /api/v1/records/:token
func (h *RecordHandler) Delete(c *gin.Context) {
	token := c.Param("token")
	if err := h.recordService.Delete(c.Request.Context(), token); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": token})
}

// Export handles GET /api/v1/records/:token/export?format=csv|xlsx
func (h *RecordHandler) Export(c *gin.Context) {
	token := c.Param("token")
	format := c.DefaultQuery("format", "csv")

	file, err := h.recordService.Export(c.Request.Context(), token, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
