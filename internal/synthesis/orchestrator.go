// Package synthesis drives the two-stage generative protocol: Stage 1 pulls
// everything out of the source material (multimodal, tolerant of noise),
// Stage 2 shapes it into the strict hybrid-schema report. The stages are
// deliberately separate calls; collapsing them would force one prompt to do
// open-ended discovery and closed-schema compliance at once.
package synthesis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"medgen/internal/domain"
	"medgen/internal/port"
)

// Orchestrator runs the two synthesis stages against a Synthesizer.
type Orchestrator struct {
	llm             port.Synthesizer
	temperature     float32
	stage1MaxTokens int
	stage2MaxTokens int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTemperature overrides the sampling temperature for both stages.
func WithTemperature(t float32) Option {
	return func(o *Orchestrator) { o.temperature = t }
}

// WithMaxTokens overrides the per-stage output budgets.
func WithMaxTokens(stage1, stage2 int) Option {
	return func(o *Orchestrator) {
		if stage1 > 0 {
			o.stage1MaxTokens = stage1
		}
		if stage2 > 0 {
			o.stage2MaxTokens = stage2
		}
	}
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(llm port.Synthesizer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		llm:             llm,
		temperature:     0.2,
		stage1MaxTokens: 4000,
		stage2MaxTokens: 8000,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// AnalyzePatient runs both stages over a patient record and its extracted
// document content. Image assets are passed inline to Stage 1 in addition to
// any OCR text, since OCR may be imperfect or absent.
func (o *Orchestrator) AnalyzePatient(ctx context.Context, record *domain.PatientRecord, assets []domain.RetrievedAsset, fragments []domain.ExtractionFragment) (*domain.MedicalAnalysis, error) {
	recordJSON := record.PrettyJSON()
	images := loadInlineImages(assets)

	extracted, err := o.llm.Complete(ctx, port.SynthesisRequest{
		System:      stage1SystemPrompt(),
		Prompt:      stage1Prompt(recordJSON, RenderFragments(fragments)),
		Images:      images,
		Temperature: o.temperature,
		MaxTokens:   o.stage1MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: stage 1: %v", domain.ErrSynthesisService, err)
	}

	return o.structureReport(ctx, port.SynthesisRequest{
		System:      stage2SystemPrompt(),
		Prompt:      stage2Prompt(extracted, recordJSON),
		Temperature: o.temperature,
		MaxTokens:   o.stage2MaxTokens,
		ForceJSON:   true,
	}, domain.MandatoryPatientSections)
}

// AnalyzeDocument runs the single-document variant of the protocol. The
// mandatory key set is document-centric; the dynamic-laboratory-section
// behavior and strict-JSON contract are the same.
func (o *Orchestrator) AnalyzeDocument(ctx context.Context, fragment domain.ExtractionFragment, asset *domain.RetrievedAsset) (*domain.MedicalAnalysis, error) {
	var images []port.InlineImage
	if asset != nil && fragment.Kind == domain.AssetKindImage {
		images = loadInlineImages([]domain.RetrievedAsset{*asset})
	}

	extracted, err := o.llm.Complete(ctx, port.SynthesisRequest{
		System:      documentSystemPrompt(),
		Prompt:      documentStage1Prompt(RenderFragments([]domain.ExtractionFragment{fragment})),
		Images:      images,
		Temperature: o.temperature,
		MaxTokens:   o.stage1MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: stage 1: %v", domain.ErrSynthesisService, err)
	}

	return o.structureReport(ctx, port.SynthesisRequest{
		System:      documentStage2SystemPrompt(),
		Prompt:      documentStage2Prompt(extracted),
		Temperature: o.temperature,
		MaxTokens:   o.stage2MaxTokens,
		ForceJSON:   true,
	}, domain.MandatoryDocumentSections)
}

// structureReport executes Stage 2 and enforces the hybrid-schema contract:
// the payload must be strict JSON, and every mandatory key must be present
// (backfilled with null if the model dropped one despite instructions).
func (o *Orchestrator) structureReport(ctx context.Context, req port.SynthesisRequest, mandatory []string) (*domain.MedicalAnalysis, error) {
	raw, err := o.llm.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: stage 2: %v", domain.ErrSynthesisService, err)
	}

	analysis := domain.NewMedicalAnalysis()
	if err := json.Unmarshal([]byte(raw), analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisParse, err)
	}
	analysis.EnsureSections(mandatory)
	return analysis, nil
}

// loadInlineImages reads successfully retrieved image assets for inline
// embedding. Unreadable files are logged and skipped; they are already
// represented by their extraction fragment.
func loadInlineImages(assets []domain.RetrievedAsset) []port.InlineImage {
	var images []port.InlineImage
	for i := range assets {
		a := &assets[i]
		if a.Kind != domain.AssetKindImage || !a.Retrieved() {
			continue
		}
		data, err := os.ReadFile(a.LocalPath)
		if err != nil {
			log.Printf("synthesis: reading image %s: %v", a.FieldPath, err)
			continue
		}
		images = append(images, port.InlineImage{
			MIME: http.DetectContentType(data),
			Data: data,
		})
	}
	return images
}
