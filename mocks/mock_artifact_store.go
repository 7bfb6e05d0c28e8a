package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/port"
)

// MockArtifactStore is a mock implementation of port.ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Put(ctx context.Context, input port.PutArtifactInput) (*port.PutArtifactOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.PutArtifactOutput), args.Error(1)
}

func (m *MockArtifactStore) PresignedURL(ctx context.Context, location string, expirySeconds int64) (string, error) {
	args := m.Called(ctx, location, expirySeconds)
	return args.String(0), args.Error(1)
}
