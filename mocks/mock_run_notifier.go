package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/domain"
)

// MockRunNotifier is a mock implementation of port.RunNotifier.
type MockRunNotifier struct {
	mock.Mock
}

func (m *MockRunNotifier) SendRunSummary(ctx context.Context, artifact *domain.SessionArtifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}
