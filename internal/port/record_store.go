package port

import (
	"context"

	"formpilot/internal/domain"
)

// RecordStore defines the contract for token-addressed record persistence.
// Records are transient: implementations may expire them, and Get on an
// expired or unknown token returns domain.ErrRecordNotFound.
type RecordStore interface {
	Save(ctx context.Context, rec *domain.StoredRecord) error
	Get(ctx context.Context, token string) (*domain.StoredRecord, error)
	Delete(ctx context.Context, token string) error
}
