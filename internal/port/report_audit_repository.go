package port

import (
	"context"

	"medgen/internal/domain"
)

// ReportAuditRepository persists report generation outcomes.
type ReportAuditRepository interface {
	Create(ctx context.Context, entry *domain.ReportAuditEntry) error
	ListByPatient(ctx context.Context, patientID string, offset, limit int) ([]domain.ReportAuditEntry, int, error)
}
