package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medgen/internal/domain"
	"medgen/internal/service"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateReport(ctx context.Context, patientID string) (*domain.MedicalReport, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalReport), args.Error(1)
}

func (m *MockReportService) AnalyzeDocument(ctx context.Context, input *service.AnalyzeDocumentInput) (*domain.MedicalAnalysis, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalAnalysis), args.Error(1)
}

func (m *MockReportService) ListAudit(ctx context.Context, patientID string, offset, limit int) ([]domain.ReportAuditEntry, int, error) {
	args := m.Called(ctx, patientID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReportAuditEntry), args.Int(1), args.Error(2)
}

func (m *MockReportService) GetArchivedReport(ctx context.Context, patientID, timestamp string) (*domain.MedicalReport, error) {
	args := m.Called(ctx, patientID, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MedicalReport), args.Error(1)
}
