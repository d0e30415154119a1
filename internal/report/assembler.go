// Package report assembles the final report object. Purely structural:
// no generative or I/O work happens here.
package report

import (
	"time"

	"medgen/internal/domain"
)

// Assemble combines the synthesis output with per-asset status and a
// generation timestamp. The analysis payload is carried through unmodified,
// dynamic sections included.
func Assemble(patientID string, assets []domain.RetrievedAsset, analysis *domain.MedicalAnalysis, now time.Time) *domain.MedicalReport {
	files := make([]domain.AnalyzedFile, 0, len(assets))
	for i := range assets {
		a := &assets[i]
		status := domain.FileStatusProcessed
		if !a.Retrieved() {
			status = domain.FileStatusError
		}
		files = append(files, domain.AnalyzedFile{
			FieldPath: a.FieldPath,
			URL:       a.URL,
			Kind:      a.Kind,
			Status:    status,
		})
	}

	return &domain.MedicalReport{
		PatientID:           patientID,
		FilesAnalyzed:       files,
		MedicalAnalysis:     analysis,
		GenerationTimestamp: now.UTC().Format(time.RFC3339),
	}
}
