// Package memory holds the in-process record store. Extracted records are
// transient by design: they live under an opaque token between the extract
// call and the populate call, expire on a TTL, and are never written to
// durable storage.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"formpilot/internal/domain"
)

// RecordStore keeps records in a TTL cache keyed by token. Each entry is
// scoped to its own token, so concurrent submissions never see each other's
// data.
type RecordStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewRecordStore creates a store whose entries expire after ttl. The janitor
// sweeps expired entries every cleanupInterval.
func NewRecordStore(ttl, cleanupInterval time.Duration) *RecordStore {
	return &RecordStore{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (s *RecordStore) Save(ctx context.Context, rec *domain.StoredRecord) error {
	if rec.ExpiresAt.IsZero() {
		rec.ExpiresAt = time.Now().Add(s.ttl)
	}
	s.cache.Set(rec.Token, rec, gocache.DefaultExpiration)
	return nil
}

func (s *RecordStore) Get(ctx context.Context, token string) (*domain.StoredRecord, error) {
	val, found := s.cache.Get(token)
	if !found {
		return nil, domain.ErrRecordNotFound
	}
	return val.(*domain.StoredRecord), nil
}

func (s *RecordStore) Delete(ctx context.Context, token string) error {
	s.cache.Delete(token)
	return nil
}
