package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"medgen/internal/domain"
	"medgen/internal/port"
)

type reportAuditRepo struct {
	db *sqlx.DB
}

// NewReportAuditRepo creates a new PostgreSQL-backed ReportAuditRepository.
func NewReportAuditRepo(db *sqlx.DB) port.ReportAuditRepository {
	return &reportAuditRepo{db: db}
}

func (r *reportAuditRepo) Create(ctx context.Context, entry *domain.ReportAuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO report_audit_log (id, patient_id, status, error_category, files_total, files_failed)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.PatientID, entry.Status, entry.ErrorCategory, entry.FilesTotal, entry.FilesFailed)
	if err != nil {
		return fmt.Errorf("reportAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *reportAuditRepo) ListByPatient(ctx context.Context, patientID string, offset, limit int) ([]domain.ReportAuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM report_audit_log WHERE patient_id = $1`,
		patientID)
	if err != nil {
		return nil, 0, fmt.Errorf("reportAuditRepo.ListByPatient count: %w", err)
	}

	var entries []domain.ReportAuditEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM report_audit_log
		 WHERE patient_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("reportAuditRepo.ListByPatient: %w", err)
	}
	return entries, total, nil
}
