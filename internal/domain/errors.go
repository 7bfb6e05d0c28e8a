package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrRecordNotFound      = errors.New("case record not found")
	ErrRecordExpired       = errors.New("case record expired")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrNoDocuments         = errors.New("no documents provided")
	ErrTooManyDocuments    = errors.New("too many documents")
	ErrUnknownDocumentKind = errors.New("unknown document kind")
	ErrNoRecord            = errors.New("no case record or token provided")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrExtractionFailed    = errors.New("document extraction failed")
	ErrSessionCreate       = errors.New("browser session could not be created")
	ErrBrowserConnect      = errors.New("browser session could not be attached")
	ErrNavigation          = errors.New("target form could not be loaded")
	ErrMarkupUnavailable   = errors.New("form markup could not be captured")
	ErrExportFormat        = errors.New("unsupported export format")
)
