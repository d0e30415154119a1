package port

import (
	"context"

	"medgen/internal/domain"
)

// PatientRegistry abstracts the external patient registration source.
type PatientRegistry interface {
	FetchPatientRecord(ctx context.Context, patientID string) (*domain.PatientRecord, error)
}
