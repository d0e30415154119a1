package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medgen/internal/domain"
)

// MockReportAuditRepo is a mock implementation of port.ReportAuditRepository.
type MockReportAuditRepo struct {
	mock.Mock
}

func (m *MockReportAuditRepo) Create(ctx context.Context, entry *domain.ReportAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockReportAuditRepo) ListByPatient(ctx context.Context, patientID string, offset, limit int) ([]domain.ReportAuditEntry, int, error) {
	args := m.Called(ctx, patientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportAuditEntry), args.Int(1), args.Error(2)
}
