package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeWEBP FileType = "webp"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeWEBP: "image/webp",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
	"image/webp":      FileTypeWEBP,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"webp": FileTypeWEBP,
}

// DocumentKind tells the extractor which source document a file is.
type DocumentKind string

const (
	// DocumentPassport is the biographical page of a passport.
	DocumentPassport DocumentKind = "passport"
	// DocumentRepForm is a G-28 notice of entry of appearance.
	DocumentRepForm DocumentKind = "rep_form"
)

// IsValid reports whether the document kind is recognized.
func (d DocumentKind) IsValid() bool {
	return d == DocumentPassport || d == DocumentRepForm
}

// ExtractionStatus summarizes how much of the record the extractor recovered.
type ExtractionStatus string

const (
	// ExtractionComplete means every schema field came back non-null.
	ExtractionComplete ExtractionStatus = "complete"
	// ExtractionDegraded means at least one field came back, but not all.
	ExtractionDegraded ExtractionStatus = "degraded"
	// ExtractionEmpty means no field could be read from the documents.
	ExtractionEmpty ExtractionStatus = "empty"
)

// StatusForRecord classifies a record by how many of its fields are set.
func StatusForRecord(r *CaseRecord) ExtractionStatus {
	set := len(r.NonNullFields())
	switch {
	case set == 0:
		return ExtractionEmpty
	case set == len(r.Fields()):
		return ExtractionComplete
	default:
		return ExtractionDegraded
	}
}

// RunStatus is the terminal state of a populate run.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)
