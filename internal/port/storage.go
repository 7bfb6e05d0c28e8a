package port

import (
	"context"
	"io"
)

// PutArtifactInput encapsulates one run artifact to persist.
type PutArtifactInput struct {
	RunID       string
	Name        string
	Body        io.Reader
	ContentType string
	Size        int64
}

// PutArtifactOutput contains the stored artifact's location. The location is
// backend-specific: a filesystem path or an s3:// URI.
type PutArtifactOutput struct {
	Location string
}

// ArtifactStore abstracts where populate-run artifacts (screenshots, captured
// markup, mapper output) are kept.
type ArtifactStore interface {
	Put(ctx context.Context, input PutArtifactInput) (*PutArtifactOutput, error)
	// PresignedURL turns a stored location into a fetchable URL. Backends
	// without presigning return the location unchanged.
	PresignedURL(ctx context.Context, location string, expirySeconds int64) (string, error)
}
