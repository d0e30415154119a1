package extractor_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medgen/internal/config"
	"medgen/internal/domain"
	"medgen/internal/extractor"
)

type stubOCR struct {
	available bool
	text      string
	err       error
}

func (s stubOCR) Available() bool { return s.available }

func (s stubOCR) Recognize(context.Context, string) (string, error) {
	return s.text, s.err
}

func newExtractor(ocr extractor.OCREngine) *extractor.Extractor {
	return extractor.New(&config.ExtractorConfig{Concurrency: 2, OCREnabled: true}, ocr)
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExtract_RetrievalFailureSkipped(t *testing.T) {
	e := newExtractor(stubOCR{available: true, text: "irrelevant"})
	asset := domain.RetrievedAsset{
		AssetReference: domain.AssetReference{FieldPath: "report_url", Kind: domain.AssetKindPDF},
		RetrievalError: "fetching asset: status 500",
	}

	frag := e.Extract(context.Background(), &asset)

	assert.Equal(t, "report_url", frag.FieldPath)
	assert.Empty(t, frag.Text)
	assert.Contains(t, frag.Note, "retrieval failed")
	assert.Contains(t, frag.Note, "status 500")
}

func TestExtract_UnreadablePDFDegrades(t *testing.T) {
	e := newExtractor(extractor.NoOCR{})
	asset := domain.RetrievedAsset{
		AssetReference: domain.AssetReference{FieldPath: "labs", Kind: domain.AssetKindPDF},
		LocalPath:      writeTempFile(t, "garbage.pdf", "this is not a pdf"),
	}

	frag := e.Extract(context.Background(), &asset)

	assert.Empty(t, frag.Text)
	assert.Equal(t, "no text extracted from PDF", frag.Note)
}

func TestExtract_ImageWithoutOCR(t *testing.T) {
	e := newExtractor(stubOCR{available: false})
	asset := domain.RetrievedAsset{
		AssetReference: domain.AssetReference{FieldPath: "scan", Kind: domain.AssetKindImage},
		LocalPath:      writeTempFile(t, "scan.img", "png bytes"),
	}

	frag := e.Extract(context.Background(), &asset)

	assert.Empty(t, frag.Text)
	assert.Equal(t, "OCR not available", frag.Note)
}

func TestExtract_ImageOCRSuccess(t *testing.T) {
	e := newExtractor(stubOCR{available: true, text: "Hemoglobin 13.2 g/dL"})
	asset := domain.RetrievedAsset{
		AssetReference: domain.AssetReference{FieldPath: "scan", Kind: domain.AssetKindImage},
		LocalPath:      writeTempFile(t, "scan.img", "png bytes"),
	}

	frag := e.Extract(context.Background(), &asset)

	assert.Equal(t, "Hemoglobin 13.2 g/dL", frag.Text)
	assert.Empty(t, frag.Note)
}

func TestExtract_ImageOCREmptyOutput(t *testing.T) {
	e := newExtractor(stubOCR{available: true, text: "  \n "})
	asset := domain.RetrievedAsset{
		AssetReference: domain.AssetReference{FieldPath: "scan", Kind: domain.AssetKindImage},
		LocalPath:      writeTempFile(t, "scan.img", "png bytes"),
	}

	frag := e.Extract(context.Background(), &asset)

	assert.Empty(t, frag.Text)
	assert.Equal(t, "OCR produced no text", frag.Note)
}

func TestExtract_UnknownKindSkipped(t *testing.T) {
	e := newExtractor(extractor.NoOCR{})
	asset := domain.RetrievedAsset{
		AssetReference: domain.AssetReference{FieldPath: "blob", Kind: domain.AssetKindUnknown},
		LocalPath:      writeTempFile(t, "blob.bin", "???"),
	}

	frag := e.Extract(context.Background(), &asset)

	assert.Empty(t, frag.Text)
	assert.Equal(t, "skipped: unsupported asset kind", frag.Note)
}

func TestExtractAll_OrderAndCompletion(t *testing.T) {
	// Every backend degraded: the batch still completes with one fragment per
	// asset, in order.
	e := newExtractor(stubOCR{available: false})
	assets := []domain.RetrievedAsset{
		{AssetReference: domain.AssetReference{FieldPath: "a", Kind: domain.AssetKindImage}, LocalPath: writeTempFile(t, "a.img", "x")},
		{AssetReference: domain.AssetReference{FieldPath: "b", Kind: domain.AssetKindPDF}, RetrievalError: "timeout"},
		{AssetReference: domain.AssetReference{FieldPath: "c", Kind: domain.AssetKindUnknown}, LocalPath: writeTempFile(t, "c.bin", "x")},
	}

	frags := e.ExtractAll(context.Background(), assets)

	require.Len(t, frags, 3)
	assert.Equal(t, "a", frags[0].FieldPath)
	assert.Equal(t, "b", frags[1].FieldPath)
	assert.Equal(t, "c", frags[2].FieldPath)
	for _, frag := range frags {
		assert.Empty(t, frag.Text)
		assert.NotEmpty(t, frag.Note)
	}
}

func TestNew_DisabledOCRForcesNoOCR(t *testing.T) {
	e := extractor.New(&config.ExtractorConfig{OCREnabled: false}, stubOCR{available: true})
	assert.False(t, e.OCRAvailable())
}

func TestNoOCR(t *testing.T) {
	var n extractor.NoOCR
	assert.False(t, n.Available())
	_, err := n.Recognize(context.Background(), "x")
	assert.Error(t, err)
}
