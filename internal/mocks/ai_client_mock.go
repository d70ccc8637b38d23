package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gamify-server/internal/ai"
)

// MockAIClient is a mock type for the AIClient type
type MockAIClient struct {
	mock.Mock
}

// GenerateText provides a mock function with given fields: ctx, userID, prompt, temperature
func (_m *MockAIClient) GenerateText(ctx context.Context, userID string, prompt string, temperature float32) (string, error) {
	ret := _m.Called(ctx, userID, prompt, temperature)

	var r0 string
	if rf, ok := ret.Get(0).(func(context.Context, string, string, float32) string); ok {
		r0 = rf(ctx, userID, prompt, temperature)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(string)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, string, float32) error); ok {
		r1 = rf(ctx, userID, prompt, temperature)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockAIClient creates a new instance of MockAIClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockAIClient(t interface {
	mock.TestingT
	Helper()
}) *MockAIClient {
	m := &MockAIClient{}
	m.Mock.Test(t)
	t.Helper()
	return m
}

var _ ai.AIClient = (*MockAIClient)(nil)
