package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/domain"
	"formpilot/internal/service"
)

// MockExtractService is a mock implementation of service.ExtractService.
type MockExtractService struct {
	mock.Mock
}

func (m *MockExtractService) ExtractFromUploads(ctx context.Context, uploads []service.DocumentUpload) (*service.ExtractResult, error) {
	args := m.Called(ctx, uploads)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractResult), args.Error(1)
}

func (m *MockExtractService) ExtractDocuments(ctx context.Context, docs []domain.SourceDocument) (*service.ExtractResult, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractResult), args.Error(1)
}
