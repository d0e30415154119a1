package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MandatoryPatientSections are the top-level keys every patient analysis must
// carry, even when empty. Laboratory categories live as dynamic subsection
// keys under laboratory_results.
var MandatoryPatientSections = []string{
	"patient_info",
	"examination_findings",
	"laboratory_results",
	"risk_stratification",
	"key_calculations",
	"individualized_diet_plan",
	"exercise_physiotherapy_plan",
	"management_advice_triggers",
	"red_flags_emergency_return",
	"follow_up_plan",
	"integrated_report_summary",
}

// MandatoryDocumentSections is the document-centric key set for the
// single-document analysis variant.
var MandatoryDocumentSections = []string{
	"document_info",
	"patient_info",
	"laboratory_results",
	"clinical_findings",
	"calculations",
	"interpretations",
	"recommendations",
	"integrated_summary",
}

// MedicalAnalysis is the hybrid-schema synthesis output: a fixed mandatory
// key set plus content-derived keys whose names are not known in advance.
// It is an insertion-ordered map of section name to raw JSON so that dynamic
// sections survive round trips byte-for-byte and in order.
type MedicalAnalysis struct {
	keys     []string
	sections map[string]json.RawMessage
}

// NewMedicalAnalysis creates an empty analysis.
func NewMedicalAnalysis() *MedicalAnalysis {
	return &MedicalAnalysis{sections: make(map[string]json.RawMessage)}
}

// Set inserts or replaces a section, preserving first-insertion order.
func (a *MedicalAnalysis) Set(key string, value json.RawMessage) {
	if a.sections == nil {
		a.sections = make(map[string]json.RawMessage)
	}
	if _, ok := a.sections[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.sections[key] = value
}

// Get returns a section's raw JSON.
func (a *MedicalAnalysis) Get(key string) (json.RawMessage, bool) {
	v, ok := a.sections[key]
	return v, ok
}

// Keys returns all section names in order.
func (a *MedicalAnalysis) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Len returns the number of sections.
func (a *MedicalAnalysis) Len() int {
	return len(a.keys)
}

// EnsureSections backfills any missing key from the given set with JSON null.
// Mandatory sections are never omitted, only empty.
func (a *MedicalAnalysis) EnsureSections(mandatory []string) {
	for _, key := range mandatory {
		if _, ok := a.sections[key]; !ok {
			a.Set(key, json.RawMessage("null"))
		}
	}
}

// HasSections reports whether every key in the given set is present.
func (a *MedicalAnalysis) HasSections(keys []string) bool {
	for _, key := range keys {
		if _, ok := a.sections[key]; !ok {
			return false
		}
	}
	return true
}

// LabCategories lists the dynamic subsection keys under laboratory_results,
// in document order. Keys beginning with an underscore and the bookkeeping
// lists the generator emits alongside the categories are not categories.
func (a *MedicalAnalysis) LabCategories() []string {
	raw, ok := a.sections["laboratory_results"]
	if !ok {
		return nil
	}
	keys, values, err := decodeOrderedObject(raw)
	if err != nil {
		return nil
	}
	_ = values
	var cats []string
	for _, k := range keys {
		switch k {
		case "lab_categories_identified", "abnormal_findings_summary", "critical_values", "test_date":
			continue
		}
		if len(k) > 0 && k[0] == '_' {
			continue
		}
		cats = append(cats, k)
	}
	return cats
}

// MarshalJSON emits sections in insertion order.
func (a MedicalAnalysis) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		v := a.sections[key]
		if len(v) == 0 {
			v = json.RawMessage("null")
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order. Anything other
// than a top-level object is rejected.
func (a *MedicalAnalysis) UnmarshalJSON(data []byte) error {
	keys, values, err := decodeOrderedObject(data)
	if err != nil {
		return err
	}
	a.keys = keys
	a.sections = values
	return nil
}

func decodeOrderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var keys []string
	values := make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, err
		}
		if _, seen := values[key]; !seen {
			keys = append(keys, key)
		}
		values[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return keys, values, nil
}
