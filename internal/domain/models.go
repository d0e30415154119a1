package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PatientRecord is the registration payload fetched from the collaborating
// registration source. The decoded form is walked by the resolver; the raw
// form is embedded verbatim into synthesis prompts. The record is read-only
// to the pipeline.
type PatientRecord struct {
	Raw  json.RawMessage
	Data any
}

// NewPatientRecord decodes a raw registration payload.
func NewPatientRecord(raw []byte) (*PatientRecord, error) {
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &PatientRecord{Raw: append(json.RawMessage(nil), raw...), Data: data}, nil
}

// PrettyJSON renders the record for inclusion in a prompt.
func (r *PatientRecord) PrettyJSON() string {
	buf, err := json.MarshalIndent(r.Data, "", "  ")
	if err != nil {
		return string(r.Raw)
	}
	return string(buf)
}

// AssetReference is a located pointer to an externally hosted document
// discovered inside a patient record. Immutable once created.
type AssetReference struct {
	URL       string    `json:"url"`
	FieldPath string    `json:"field_path"`
	Kind      AssetKind `json:"kind"`
}

// RetrievedAsset is an AssetReference after a fetch attempt. Exactly one of
// LocalPath / RetrievalError is populated.
type RetrievedAsset struct {
	AssetReference
	LocalPath      string
	RetrievalError string
}

// Retrieved reports whether the asset's bytes were fetched successfully.
func (a *RetrievedAsset) Retrieved() bool {
	return a.RetrievalError == "" && a.LocalPath != ""
}

// ExtractionFragment is the text yield of one asset. Text holds extracted
// content; Note holds a human-readable placeholder when extraction produced
// nothing (missing OCR backend, unreadable PDF, skipped asset).
type ExtractionFragment struct {
	FieldPath string
	Kind      AssetKind
	Text      string
	Note      string
}

// AnalyzedFile is the per-asset status entry reported to the caller.
type AnalyzedFile struct {
	FieldPath string     `json:"field_path"`
	URL       string     `json:"url"`
	Kind      AssetKind  `json:"kind"`
	Status    FileStatus `json:"status"`
}

// MedicalReport is the final per-request artifact. MedicalAnalysis carries
// the full Stage 2 payload unmodified, dynamic sections included.
type MedicalReport struct {
	PatientID           string           `json:"patient_id"`
	FilesAnalyzed       []AnalyzedFile   `json:"files_analyzed"`
	MedicalAnalysis     *MedicalAnalysis `json:"medical_analysis"`
	GenerationTimestamp string           `json:"generation_timestamp"`
}

// ReportAuditEntry records the outcome of one report generation request.
type ReportAuditEntry struct {
	ID            uuid.UUID    `db:"id" json:"id"`
	PatientID     string       `db:"patient_id" json:"patient_id"`
	Status        ReportStatus `db:"status" json:"status"`
	ErrorCategory string       `db:"error_category" json:"error_category"`
	FilesTotal    int          `db:"files_total" json:"files_total"`
	FilesFailed   int          `db:"files_failed" json:"files_failed"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}
