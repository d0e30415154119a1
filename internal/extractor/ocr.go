package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// OCREngine abstracts optical character recognition over a local image file.
// Availability is probed once at construction; an unavailable engine is a
// degraded mode, never an error.
type OCREngine interface {
	Available() bool
	Recognize(ctx context.Context, path string) (string, error)
}

// TesseractOCR shells out to the tesseract binary. The binary is looked up
// once; if it is not installed the engine reports unavailable and the
// pipeline carries on without image text.
type TesseractOCR struct {
	bin string
}

// NewTesseractOCR probes for the given tesseract binary (or "tesseract" if
// empty) on PATH.
func NewTesseractOCR(bin string) *TesseractOCR {
	if bin == "" {
		bin = "tesseract"
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return &TesseractOCR{}
	}
	return &TesseractOCR{bin: resolved}
}

func (t *TesseractOCR) Available() bool {
	return t != nil && t.bin != ""
}

func (t *TesseractOCR) Recognize(ctx context.Context, path string) (string, error) {
	if !t.Available() {
		return "", fmt.Errorf("tesseract binary not found")
	}
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.bin, path, "stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %v: %s", err, stderr.String())
	}
	return stdout.String(), nil
}

// NoOCR is the explicitly-disabled engine.
type NoOCR struct{}

func (NoOCR) Available() bool { return false }

func (NoOCR) Recognize(context.Context, string) (string, error) {
	return "", fmt.Errorf("ocr disabled")
}
