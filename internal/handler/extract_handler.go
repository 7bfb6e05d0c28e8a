package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"formpilot/internal/domain"
	"formpilot/internal/service"
)

// documentFields maps multipart field names to document kinds, in the order
// documents are handed to the extractor.
var documentFields = []struct {
	field string
	kind  domain.DocumentKind
}{
	{"passport", domain.DocumentPassport},
	{"rep_form", domain.DocumentRepForm},
}

// ExtractHandler handles document extraction endpoints.
type ExtractHandler struct {
	extractService service.ExtractService
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractService service.ExtractService) *ExtractHandler {
	return &ExtractHandler{extractService: extractService}
}

// Extract handles POST /api/v1/extract. It accepts multipart form uploads
// under the "passport" and "rep_form" fields and responds with the stored
// record and its access token.
func (h *ExtractHandler) Extract(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_MULTIPART", "request must be multipart/form-data with at least one document")
		return
	}

	var uploads []service.DocumentUpload
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()

	for _, spec := range documentFields {
		for _, header := range form.File[spec.field] {
			file, err := header.Open()
			if err != nil {
				RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", fmt.Sprintf("could not read %s upload %q", spec.field, header.Filename))
				return
			}
			opened = append(opened, file)
			uploads = append(uploads, service.DocumentUpload{
				Kind:   spec.kind,
				File:   file,
				Header: header,
			})
		}
	}

	result, err := h.extractService.ExtractFromUploads(c.Request.Context(), uploads)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}
