package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"formpilot/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, "RECORD_NOT_FOUND", "case record not found or expired"
	case errors.Is(err, domain.ErrRecordExpired):
		return http.StatusGone, "RECORD_EXPIRED", "case record has expired"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, jpeg, png, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrNoDocuments):
		return http.StatusBadRequest, "NO_DOCUMENTS", "at least one document is required"
	case errors.Is(err, domain.ErrTooManyDocuments):
		return http.StatusBadRequest, "TOO_MANY_DOCUMENTS", "too many documents in one request"
	case errors.Is(err, domain.ErrUnknownDocumentKind):
		return http.StatusBadRequest, "UNKNOWN_DOCUMENT_KIND", "unknown document kind; allowed: passport, rep_form"
	case errors.Is(err, domain.ErrNoRecord):
		return http.StatusBadRequest, "NO_RECORD", "provide a record token or an inline record"
	case errors.Is(err, domain.ErrSessionCreate):
		return http.StatusBadGateway, "SESSION_CREATE_FAILED", "browser session could not be created"
	case errors.Is(err, domain.ErrBrowserConnect):
		return http.StatusBadGateway, "BROWSER_CONNECT_FAILED", "browser session could not be attached"
	case errors.Is(err, domain.ErrNavigation):
		return http.StatusBadGateway, "NAVIGATION_FAILED", "target form could not be loaded"
	case errors.Is(err, domain.ErrMarkupUnavailable):
		return http.StatusBadGateway, "MARKUP_UNAVAILABLE", "form markup could not be captured"
	case errors.Is(err, domain.ErrExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status == http.StatusInternalServerError {
		log.Printf("handler.HandleError: %v", err)
	}
	RespondError(c, status, code, msg)
}
