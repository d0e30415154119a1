// Package extractor converts retrieved assets into plain-text fragments.
// Extraction never fails a pipeline run: a missing backend or an unreadable
// file degrades to a fragment whose Note says what happened.
package extractor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"medgen/internal/config"
	"medgen/internal/domain"
)

const (
	noteOCRUnavailable  = "OCR not available"
	noteOCRNoText       = "OCR produced no text"
	noteNoPDFText       = "no text extracted from PDF"
	noteSkippedKind     = "skipped: unsupported asset kind"
	noteSkippedRetrieve = "skipped: retrieval failed"
)

// Extractor turns retrieved assets into extraction fragments.
type Extractor struct {
	ocr         OCREngine
	concurrency int
}

// New creates an Extractor with the given OCR engine.
func New(cfg *config.ExtractorConfig, ocr OCREngine) *Extractor {
	if ocr == nil || !cfg.OCREnabled {
		ocr = NoOCR{}
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Extractor{ocr: ocr, concurrency: concurrency}
}

// OCRAvailable reports whether the image recognition backend is usable.
func (e *Extractor) OCRAvailable() bool {
	return e.ocr.Available()
}

// ExtractAll produces one fragment per asset, in asset order. Extraction of
// independent assets runs on a bounded worker pool since PDF parsing and OCR
// are CPU and I/O heavy.
func (e *Extractor) ExtractAll(ctx context.Context, assets []domain.RetrievedAsset) []domain.ExtractionFragment {
	fragments := make([]domain.ExtractionFragment, len(assets))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup
	for i := range assets {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fragments[i] = e.Extract(ctx, &assets[i])
		}(i)
	}
	wg.Wait()

	return fragments
}

// Extract produces the fragment for a single asset.
func (e *Extractor) Extract(ctx context.Context, asset *domain.RetrievedAsset) domain.ExtractionFragment {
	frag := domain.ExtractionFragment{
		FieldPath: asset.FieldPath,
		Kind:      asset.Kind,
	}

	if !asset.Retrieved() {
		frag.Note = fmt.Sprintf("%s: %s", noteSkippedRetrieve, asset.RetrievalError)
		return frag
	}

	switch asset.Kind {
	case domain.AssetKindPDF:
		text, err := pdfText(asset.LocalPath)
		if err != nil {
			// PDF parse failures mean "no text available", not fatal.
			log.Printf("extractor: pdf extraction failed for %s: %v", asset.FieldPath, err)
			frag.Note = noteNoPDFText
			return frag
		}
		if strings.TrimSpace(text) == "" {
			frag.Note = noteNoPDFText
			return frag
		}
		frag.Text = text

	case domain.AssetKindImage:
		if !e.ocr.Available() {
			frag.Note = noteOCRUnavailable
			return frag
		}
		text, err := e.ocr.Recognize(ctx, asset.LocalPath)
		if err != nil {
			log.Printf("extractor: ocr failed for %s: %v", asset.FieldPath, err)
			frag.Note = noteOCRUnavailable
			return frag
		}
		if strings.TrimSpace(text) == "" {
			frag.Note = noteOCRNoText
			return frag
		}
		frag.Text = text

	default:
		frag.Note = noteSkippedKind
	}

	return frag
}
