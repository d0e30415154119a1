package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medgen/internal/port"
)

// MockSynthesizer is a mock implementation of port.Synthesizer.
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Complete(ctx context.Context, req port.SynthesisRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}
