package port

import (
	"context"
	"encoding/json"

	"formpilot/internal/domain"
)

// MapInput pairs the captured form markup with the record fields that still
// need a target element.
type MapInput struct {
	Markup string
	Fields []domain.FieldValue
}

// MapOutput contains the fill operations a mapper proposed.
type MapOutput struct {
	Operations []domain.FillOperation
	ModelUsed  string
	RawJSON    json.RawMessage
}

// FieldMapper proposes fill operations for fields the deterministic matcher
// could not place in the markup.
type FieldMapper interface {
	MapFields(ctx context.Context, input MapInput) (*MapOutput, error)
}
