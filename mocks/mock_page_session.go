package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"formpilot/internal/port"
)

// MockBrowserProvider is a mock implementation of port.BrowserProvider.
type MockBrowserProvider struct {
	mock.Mock
}

func (m *MockBrowserProvider) NewSession(ctx context.Context) (port.PageSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.PageSession), args.Error(1)
}

// MockPageSession is a mock implementation of port.PageSession.
type MockPageSession struct {
	mock.Mock
}

func (m *MockPageSession) Navigate(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockPageSession) Content(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPageSession) Count(ctx context.Context, selector string) (int, error) {
	args := m.Called(ctx, selector)
	return args.Int(0), args.Error(1)
}

func (m *MockPageSession) Fill(ctx context.Context, selector, value string) error {
	args := m.Called(ctx, selector, value)
	return args.Error(0)
}

func (m *MockPageSession) SelectOption(ctx context.Context, selector, value string) error {
	args := m.Called(ctx, selector, value)
	return args.Error(0)
}

func (m *MockPageSession) Check(ctx context.Context, selector string) error {
	args := m.Called(ctx, selector)
	return args.Error(0)
}

func (m *MockPageSession) Screenshot(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPageSession) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPageSession) SessionID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPageSession) ViewerURL() string {
	args := m.Called()
	return args.String(0)
}
