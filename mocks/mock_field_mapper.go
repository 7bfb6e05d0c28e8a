package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/port"
)

// MockFieldMapper is a mock implementation of port.FieldMapper.
type MockFieldMapper struct {
	mock.Mock
}

func (m *MockFieldMapper) MapFields(ctx context.Context, input port.MapInput) (*port.MapOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.MapOutput), args.Error(1)
}
