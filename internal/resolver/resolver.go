// Package resolver discovers asset references embedded in a patient
// registration record. It is a pure function of the input structure: no
// network, no I/O, no mutation of the record.
package resolver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"medgen/internal/domain"
)

// maxDepth bounds recursion. Registration records are JSON documents and
// therefore acyclic, but a hostile or buggy source should not blow the stack.
const maxDepth = 64

var pdfMarkers = []string{".pdf", "/pdf/"}

var imageMarkers = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", "/image/"}

// Resolver walks a registration payload and yields references to externally
// hosted assets, identified by hosting-provider markers in string leaves.
type Resolver struct {
	hostMarkers []string
}

// New creates a Resolver matching the given hosting-provider URL markers.
func New(hostMarkers ...string) *Resolver {
	if len(hostMarkers) == 0 {
		hostMarkers = []string{"cloudinary.com"}
	}
	return &Resolver{hostMarkers: hostMarkers}
}

// Resolve returns the references found in the record, in document order:
// object keys as they appear in the raw payload, sequences by index. The raw
// bytes are walked directly since decoded maps lose key order.
func (r *Resolver) Resolve(record *domain.PatientRecord) []domain.AssetReference {
	if record == nil || len(record.Raw) == 0 {
		return nil
	}
	var refs []domain.AssetReference
	dec := json.NewDecoder(bytes.NewReader(record.Raw))
	if err := r.walk(dec, "", 0, &refs); err != nil {
		// Raw was validated at decode time; a malformed payload cannot
		// reach here.
		return refs
	}
	return refs
}

func (r *Resolver) walk(dec *json.Decoder, path string, depth int, refs *[]domain.AssetReference) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := keyTok.(string)
				if !ok {
					return fmt.Errorf("expected object key, got %v", keyTok)
				}
				childPath := key
				if path != "" {
					childPath = path + "." + key
				}
				if err := r.walkChild(dec, childPath, depth, refs); err != nil {
					return err
				}
			}
			_, err = dec.Token()
			return err
		case '[':
			for i := 0; dec.More(); i++ {
				childPath := fmt.Sprintf("%s[%d]", path, i)
				if err := r.walkChild(dec, childPath, depth, refs); err != nil {
					return err
				}
			}
			_, err = dec.Token()
			return err
		}
	case string:
		if r.matchesHost(t) {
			*refs = append(*refs, domain.AssetReference{
				URL:       t,
				FieldPath: path,
				Kind:      InferKind(t),
			})
		}
	}
	return nil
}

// walkChild descends into one value, or skips it wholesale once the depth
// bound is reached.
func (r *Resolver) walkChild(dec *json.Decoder, path string, depth int, refs *[]domain.AssetReference) error {
	if depth >= maxDepth {
		var skip json.RawMessage
		return dec.Decode(&skip)
	}
	return r.walk(dec, path, depth+1, refs)
}

func (r *Resolver) matchesHost(s string) bool {
	for _, marker := range r.hostMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// InferKind guesses an asset's kind from substrings of its URL.
func InferKind(url string) domain.AssetKind {
	lower := strings.ToLower(url)
	for _, m := range pdfMarkers {
		if strings.Contains(lower, m) {
			return domain.AssetKindPDF
		}
	}
	for _, m := range imageMarkers {
		if strings.Contains(lower, m) {
			return domain.AssetKindImage
		}
	}
	return domain.AssetKindUnknown
}
