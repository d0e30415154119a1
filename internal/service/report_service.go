package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"medgen/internal/domain"
	"medgen/internal/extractor"
	"medgen/internal/port"
	"medgen/internal/report"
	"medgen/internal/resolver"
	"medgen/internal/retriever"
	"medgen/internal/synthesis"
)

// AnalyzeDocumentInput is the DTO for ad hoc single-document analysis.
type AnalyzeDocumentInput struct {
	FileName string
	Kind     domain.AssetKind
	File     io.Reader
	MaxBytes int64
}

// ReportService defines the report generation contract exposed to the
// endpoint layer.
type ReportService interface {
	GenerateReport(ctx context.Context, patientID string) (*domain.MedicalReport, error)
	AnalyzeDocument(ctx context.Context, input *AnalyzeDocumentInput) (*domain.MedicalAnalysis, error)
	ListAudit(ctx context.Context, patientID string, offset, limit int) ([]domain.ReportAuditEntry, int, error)
	GetArchivedReport(ctx context.Context, patientID, timestamp string) (*domain.MedicalReport, error)
}

type reportService struct {
	registry  port.PatientRegistry
	resolver  *resolver.Resolver
	retriever *retriever.Retriever
	extractor *extractor.Extractor
	orch      *synthesis.Orchestrator
	storage   port.ObjectStorage
	auditRepo port.ReportAuditRepository
	bucket    string
}

// NewReportService creates a ReportService. storage and auditRepo are
// optional; when nil, archival and audit logging are skipped.
func NewReportService(
	registry port.PatientRegistry,
	res *resolver.Resolver,
	ret *retriever.Retriever,
	ext *extractor.Extractor,
	orch *synthesis.Orchestrator,
	storage port.ObjectStorage,
	auditRepo port.ReportAuditRepository,
	bucket string,
) ReportService {
	return &reportService{
		registry:  registry,
		resolver:  res,
		retriever: ret,
		extractor: ext,
		orch:      orch,
		storage:   storage,
		auditRepo: auditRepo,
		bucket:    bucket,
	}
}

// GenerateReport runs the full pipeline for one patient: resolve references,
// retrieve assets, extract content, synthesize, assemble. Per-asset failures
// are isolated; record fetch and synthesis failures are fatal to the request.
func (s *reportService) GenerateReport(ctx context.Context, patientID string) (*domain.MedicalReport, error) {
	record, err := s.registry.FetchPatientRecord(ctx, patientID)
	if err != nil {
		s.audit(ctx, patientID, domain.ReportStatusFailed, errorCategory(err), 0, 0)
		return nil, err
	}

	refs := s.resolver.Resolve(record)

	run, err := s.retriever.NewRun()
	if err != nil {
		s.audit(ctx, patientID, domain.ReportStatusFailed, "scratch", len(refs), 0)
		return nil, fmt.Errorf("preparing scratch storage: %w", err)
	}
	defer func() {
		if err := run.Cleanup(); err != nil {
			log.Printf("reportService: scratch cleanup for run %s: %v", run.ID, err)
		}
	}()

	assets := s.retriever.RetrieveAll(ctx, run, refs)
	failed := 0
	for i := range assets {
		if !assets[i].Retrieved() {
			failed++
			log.Printf("reportService: asset %s failed: %s", assets[i].FieldPath, assets[i].RetrievalError)
		}
	}

	fragments := s.extractor.ExtractAll(ctx, assets)

	analysis, err := s.orch.AnalyzePatient(ctx, record, assets, fragments)
	if err != nil {
		s.audit(ctx, patientID, domain.ReportStatusFailed, errorCategory(err), len(assets), failed)
		return nil, err
	}

	rep := report.Assemble(patientID, assets, analysis, time.Now())

	s.archive(ctx, rep)
	s.audit(ctx, patientID, domain.ReportStatusCompleted, "", len(assets), failed)

	return rep, nil
}

// AnalyzeDocument runs the single-document variant over an uploaded file.
func (s *reportService) AnalyzeDocument(ctx context.Context, input *AnalyzeDocumentInput) (*domain.MedicalAnalysis, error) {
	if input.Kind != domain.AssetKindPDF && input.Kind != domain.AssetKindImage {
		return nil, domain.ErrUnsupportedFileType
	}

	run, err := s.retriever.NewRun()
	if err != nil {
		return nil, fmt.Errorf("preparing scratch storage: %w", err)
	}
	defer func() {
		if err := run.Cleanup(); err != nil {
			log.Printf("reportService: scratch cleanup for run %s: %v", run.ID, err)
		}
	}()

	ref := domain.AssetReference{
		URL:       input.FileName,
		FieldPath: input.FileName,
		Kind:      input.Kind,
	}
	path := filepath.Join(run.Dir, retriever.ScratchFilename(ref, 0))

	src := input.File
	if input.MaxBytes > 0 {
		src = io.LimitReader(src, input.MaxBytes)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("writing uploaded file: %w", err)
	}
	_, err = io.Copy(f, src)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("writing uploaded file: %w", err)
	}

	asset := domain.RetrievedAsset{AssetReference: ref, LocalPath: path}
	fragment := s.extractor.Extract(ctx, &asset)

	return s.orch.AnalyzeDocument(ctx, fragment, &asset)
}

// ListAudit returns the generation history for a patient, newest first.
// An unconfigured audit store yields an empty history.
func (s *reportService) ListAudit(ctx context.Context, patientID string, offset, limit int) ([]domain.ReportAuditEntry, int, error) {
	if s.auditRepo == nil {
		return []domain.ReportAuditEntry{}, 0, nil
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}
	return s.auditRepo.ListByPatient(ctx, patientID, offset, limit)
}

// GetArchivedReport fetches a previously archived report by its generation
// timestamp.
func (s *reportService) GetArchivedReport(ctx context.Context, patientID, timestamp string) (*domain.MedicalReport, error) {
	if s.storage == nil || s.bucket == "" {
		return nil, domain.ErrNotFound
	}
	key := archiveKey(patientID, timestamp)
	data, err := s.storage.Download(ctx, s.bucket, key)
	if err != nil {
		log.Printf("reportService: downloading archived report %s: %v", key, err)
		return nil, fmt.Errorf("%w: no archived report for %s at %s", domain.ErrNotFound, patientID, timestamp)
	}
	var rep domain.MedicalReport
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("decoding archived report %s: %w", key, err)
	}
	return &rep, nil
}

func archiveKey(patientID, timestamp string) string {
	return fmt.Sprintf("reports/%s/%s.json", patientID, timestamp)
}

// archive uploads the assembled report to object storage. Best-effort:
// archival failures are logged, never surfaced to the caller.
func (s *reportService) archive(ctx context.Context, rep *domain.MedicalReport) {
	if s.storage == nil || s.bucket == "" {
		return
	}
	payload, err := json.Marshal(rep)
	if err != nil {
		log.Printf("reportService: marshaling report for archive: %v", err)
		return
	}
	key := archiveKey(rep.PatientID, rep.GenerationTimestamp)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(payload),
		ContentType: "application/json",
	}); err != nil {
		log.Printf("reportService: archiving report for %s: %v", rep.PatientID, err)
	}
}

// audit records a generation outcome. Failures are logged but never block
// business logic.
func (s *reportService) audit(ctx context.Context, patientID string, status domain.ReportStatus, category string, total, failed int) {
	if s.auditRepo == nil {
		return
	}
	entry := &domain.ReportAuditEntry{
		ID:            uuid.New(),
		PatientID:     patientID,
		Status:        status,
		ErrorCategory: category,
		FilesTotal:    total,
		FilesFailed:   failed,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("reportService: writing audit entry for %s: %v", patientID, err)
	}
}

// errorCategory maps a pipeline error to its audit taxonomy bucket.
func errorCategory(err error) string {
	switch {
	case errors.Is(err, domain.ErrRecordFetch):
		return "record_fetch"
	case errors.Is(err, domain.ErrSynthesisParse):
		return "synthesis_parse"
	case errors.Is(err, domain.ErrSynthesisService):
		return "synthesis_service"
	default:
		return "internal"
	}
}
