package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/domain"
)

// MockRecordStore is a mock implementation of port.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Save(ctx context.Context, rec *domain.StoredRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordStore) Get(ctx context.Context, token string) (*domain.StoredRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredRecord), args.Error(1)
}

func (m *MockRecordStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
