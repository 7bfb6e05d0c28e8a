package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/domain"
	"formpilot/internal/service"
)

// MockRecordService is a mock implementation of service.RecordService.
type MockRecordService struct {
	mock.Mock
}

func (m *MockRecordService) Get(ctx context.Context, token string) (*domain.StoredRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredRecord), args.Error(1)
}

func (m *MockRecordService) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRecordService) Export(ctx context.Context, token, format string) (*service.ExportFile, error) {
	args := m.Called(ctx, token, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}
