package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/domain"
)

// MockPopulateService is a mock implementation of service.PopulateService.
type MockPopulateService struct {
	mock.Mock
}

func (m *MockPopulateService) Populate(ctx context.Context, req *domain.PopulateRequest) (*domain.SessionArtifact, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionArtifact), args.Error(1)
}
