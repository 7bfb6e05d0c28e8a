package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formpilot/internal/domain"
	"formpilot/internal/service"
)

// PopulateHandler handles form population endpoints.
type PopulateHandler struct {
	populateService service.PopulateService
}

// NewPopulateHandler creates a new PopulateHandler.
func NewPopulateHandler(populateService service.PopulateService) *PopulateHandler {
	return &PopulateHandler{populateService: populateService}
}

// Populate handles POST /api/v1/populate. The body names a stored record by
// token or carries an inline record, plus an optional form URL override. The
// response is the run's session artifact.
func (h *PopulateHandler) Populate(c *gin.Context) {
	var req domain.PopulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	artifact, err := h.populateService.Populate(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, artifact)
}
