// Package retriever fetches referenced assets into per-run scratch storage.
// Failures are isolated per asset: a timeout or bad status marks that asset
// as errored and never aborts the batch.
package retriever

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"medgen/internal/config"
	"medgen/internal/domain"
)

// Run is a request-scoped scratch directory. Every asset downloaded for one
// report generation lands under Dir; Cleanup removes the whole directory.
type Run struct {
	ID  string
	Dir string
}

// Cleanup removes the run's scratch directory and everything in it.
func (r *Run) Cleanup() error {
	if r == nil || r.Dir == "" {
		return nil
	}
	return os.RemoveAll(r.Dir)
}

// Retriever downloads asset bytes over HTTPS with a bounded timeout.
type Retriever struct {
	client      *http.Client
	scratchRoot string
	concurrency int
	maxBytes    int64
}

// New creates a Retriever from config. An empty scratch dir falls back to
// the OS temp directory.
func New(cfg *config.RetrieverConfig) *Retriever {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	maxBytes := cfg.MaxAssetMB * 1024 * 1024
	if maxBytes <= 0 {
		maxBytes = 25 * 1024 * 1024
	}
	return &Retriever{
		client:      &http.Client{Timeout: timeout},
		scratchRoot: cfg.ScratchDir,
		concurrency: concurrency,
		maxBytes:    maxBytes,
	}
}

// NewRun creates a fresh scratch directory for one report generation.
func (r *Retriever) NewRun() (*Run, error) {
	runID := uuid.New().String()
	dir, err := os.MkdirTemp(r.scratchRoot, "medgen-run-"+runID[:8]+"-")
	if err != nil {
		return nil, fmt.Errorf("creating run scratch dir: %w", err)
	}
	return &Run{ID: runID, Dir: dir}, nil
}

// RetrieveAll fetches every reference concurrently, bounded by the configured
// concurrency. Results are returned in reference order regardless of
// completion order.
func (r *Retriever) RetrieveAll(ctx context.Context, run *Run, refs []domain.AssetReference) []domain.RetrievedAsset {
	assets := make([]domain.RetrievedAsset, len(refs))

	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup
	for i := range refs {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			assets[i] = r.retrieve(ctx, run, refs[i], i)
		}(i)
	}
	wg.Wait()

	return assets
}

func (r *Retriever) retrieve(ctx context.Context, run *Run, ref domain.AssetReference, index int) domain.RetrievedAsset {
	asset := domain.RetrievedAsset{AssetReference: ref}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref.URL, nil)
	if err != nil {
		asset.RetrievalError = fmt.Sprintf("building request: %v", err)
		return asset
	}

	resp, err := r.client.Do(req)
	if err != nil {
		asset.RetrievalError = fmt.Sprintf("fetching asset: %v", err)
		return asset
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		asset.RetrievalError = fmt.Sprintf("fetching asset: status %d", resp.StatusCode)
		return asset
	}

	path := filepath.Join(run.Dir, ScratchFilename(ref, index))
	f, err := os.Create(path)
	if err != nil {
		asset.RetrievalError = fmt.Sprintf("creating scratch file: %v", err)
		return asset
	}
	// Read one byte past the cap so an oversized asset is detected rather
	// than silently truncated into a corrupt file.
	n, err := io.Copy(f, io.LimitReader(resp.Body, r.maxBytes+1))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		asset.RetrievalError = fmt.Sprintf("writing scratch file: %v", err)
		return asset
	}
	if n > r.maxBytes {
		_ = os.Remove(path)
		asset.RetrievalError = fmt.Sprintf("asset exceeds %d byte limit", r.maxBytes)
		return asset
	}

	asset.LocalPath = path
	return asset
}

// ScratchFilename derives a collision-free scratch filename from the
// reference's field path, its index within the run, and its kind.
func ScratchFilename(ref domain.AssetReference, index int) string {
	return fmt.Sprintf("%s_%d.%s", sanitizeFieldPath(ref.FieldPath), index, extensionFor(ref.Kind))
}

func sanitizeFieldPath(path string) string {
	replacer := strings.NewReplacer(".", "_", "[", "_", "]", "", "/", "_", "\\", "_")
	s := replacer.Replace(path)
	if s == "" {
		s = "asset"
	}
	return s
}

func extensionFor(kind domain.AssetKind) string {
	switch kind {
	case domain.AssetKindPDF:
		return "pdf"
	case domain.AssetKindImage:
		return "img"
	default:
		return "bin"
	}
}
