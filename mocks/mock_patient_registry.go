package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medgen/internal/domain"
)

// MockPatientRegistry is a mock implementation of port.PatientRegistry.
type MockPatientRegistry struct {
	mock.Mock
}

func (m *MockPatientRegistry) FetchPatientRecord(ctx context.Context, patientID string) (*domain.PatientRecord, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PatientRecord), args.Error(1)
}
