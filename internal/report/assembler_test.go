package report_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medgen/internal/domain"
	"medgen/internal/report"
)

func TestAssemble(t *testing.T) {
	assets := []domain.RetrievedAsset{
		{
			AssetReference: domain.AssetReference{URL: "https://host/a.pdf", FieldPath: "report_url", Kind: domain.AssetKindPDF},
			LocalPath:      "/tmp/run/report_url_0.pdf",
		},
		{
			AssetReference: domain.AssetReference{URL: "https://host/b.png", FieldPath: "scans[0]", Kind: domain.AssetKindImage},
			RetrievalError: "fetching asset: status 500",
		},
	}
	analysis := domain.NewMedicalAnalysis()
	analysis.Set("patient_info", json.RawMessage(`{"name":"A"}`))
	now := time.Date(2026, 1, 10, 15, 4, 5, 0, time.FixedZone("IST", 5*3600+1800))

	rep := report.Assemble("patient-42", assets, analysis, now)

	assert.Equal(t, "patient-42", rep.PatientID)
	assert.Equal(t, "2026-01-10T09:34:05Z", rep.GenerationTimestamp)
	assert.Same(t, analysis, rep.MedicalAnalysis)

	require.Len(t, rep.FilesAnalyzed, 2)
	assert.Equal(t, "report_url", rep.FilesAnalyzed[0].FieldPath)
	assert.Equal(t, domain.FileStatusProcessed, rep.FilesAnalyzed[0].Status)
	assert.Equal(t, "scans[0]", rep.FilesAnalyzed[1].FieldPath)
	assert.Equal(t, domain.FileStatusError, rep.FilesAnalyzed[1].Status)
	assert.Equal(t, "https://host/b.png", rep.FilesAnalyzed[1].URL)
}

func TestAssemble_NoAssets(t *testing.T) {
	analysis := domain.NewMedicalAnalysis()

	rep := report.Assemble("patient-7", nil, analysis, time.Now())

	assert.NotNil(t, rep.FilesAnalyzed)
	assert.Empty(t, rep.FilesAnalyzed)
}
