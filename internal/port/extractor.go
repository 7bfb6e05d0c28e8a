package port

import (
	"context"
	"encoding/json"

	"formpilot/internal/domain"
)

// ExtractInput carries the uploaded documents for one extraction call.
type ExtractInput struct {
	Documents []domain.SourceDocument
}

// ExtractOutput contains the structured record produced by an extractor.
type ExtractOutput struct {
	Record          *domain.CaseRecord
	ModelUsed       string
	RawJSON         json.RawMessage
	FieldProvenance map[string]string // which model provided each field (populated in dual extraction mode)
	SecondaryModel  string            // secondary model used (for audit trail in dual extraction mode)
}

// RecordExtractor abstracts multimodal LLM extraction of a case record from
// passport and representation-form documents.
type RecordExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
