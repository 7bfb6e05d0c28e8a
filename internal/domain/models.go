package domain

import "time"

// SourceDocument is one uploaded document held in memory for extraction.
// Data is the raw file content; nothing is ever written to disk.
type SourceDocument struct {
	Kind        DocumentKind
	FileName    string
	ContentType string
	FileType    FileType
	Size        int64
	Data        []byte
}

// Meta returns the document's metadata without its bytes.
func (d *SourceDocument) Meta() DocumentMeta {
	return DocumentMeta{
		Kind:        d.Kind,
		FileName:    d.FileName,
		ContentType: d.ContentType,
		Size:        d.Size,
	}
}

// DocumentMeta describes a source document for responses and audit trails.
type DocumentMeta struct {
	Kind        DocumentKind `json:"kind"`
	FileName    string       `json:"file_name"`
	ContentType string       `json:"content_type"`
	Size        int64        `json:"size"`
}

// StoredRecord is an extracted case record at rest, addressable by an opaque
// access token until it expires or is deleted.
type StoredRecord struct {
	Token     string           `json:"token"`
	Record    *CaseRecord      `json:"record"`
	Status    ExtractionStatus `json:"status"`
	Model     string           `json:"model"`
	Documents []DocumentMeta   `json:"documents"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// PopulateRequest names what a populate run needs: the record to use and the
// form to fill. An inline record takes precedence over a stored token.
type PopulateRequest struct {
	Token   string      `json:"token,omitempty"`
	Record  *CaseRecord `json:"record,omitempty"`
	FormURL string      `json:"form_url,omitempty"`
}
