package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medgen/internal/domain"
)

func TestMedicalAnalysis_RoundTripPreservesOrder(t *testing.T) {
	payload := `{"patient_info":{"name":"A"},"zeta_section":1,"laboratory_results":{"lipid_profile":{"ldl":"130"}},"alpha_section":true}`

	var a domain.MedicalAnalysis
	require.NoError(t, json.Unmarshal([]byte(payload), &a))

	assert.Equal(t, []string{"patient_info", "zeta_section", "laboratory_results", "alpha_section"}, a.Keys())

	out, err := json.Marshal(&a)
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(out))

	// Key order must also survive re-marshalling, not just content.
	var again domain.MedicalAnalysis
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, a.Keys(), again.Keys())
}

func TestMedicalAnalysis_RejectsNonObject(t *testing.T) {
	var a domain.MedicalAnalysis
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`"text"`), &a))
}

func TestMedicalAnalysis_EnsureSections(t *testing.T) {
	a := domain.NewMedicalAnalysis()
	a.Set("patient_info", json.RawMessage(`{"name":"A"}`))
	a.Set("custom_findings", json.RawMessage(`"x"`))

	a.EnsureSections(domain.MandatoryPatientSections)

	assert.True(t, a.HasSections(domain.MandatoryPatientSections))
	assert.Equal(t, len(domain.MandatoryPatientSections)+1, a.Len())

	// Present sections keep their value; backfilled ones are null.
	v, ok := a.Get("patient_info")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"A"}`, string(v))
	v, ok = a.Get("follow_up_plan")
	require.True(t, ok)
	assert.Equal(t, "null", string(v))

	// Dynamic sections come before the backfilled tail.
	keys := a.Keys()
	assert.Equal(t, "patient_info", keys[0])
	assert.Equal(t, "custom_findings", keys[1])
}

func TestMedicalAnalysis_SetReplacesWithoutReordering(t *testing.T) {
	a := domain.NewMedicalAnalysis()
	a.Set("first", json.RawMessage(`1`))
	a.Set("second", json.RawMessage(`2`))
	a.Set("first", json.RawMessage(`10`))

	assert.Equal(t, []string{"first", "second"}, a.Keys())
	v, _ := a.Get("first")
	assert.Equal(t, "10", string(v))
}

func TestMedicalAnalysis_LabCategories(t *testing.T) {
	a := domain.NewMedicalAnalysis()
	a.Set("laboratory_results", json.RawMessage(`{
		"test_date": "2026-01-10",
		"lipid_profile": {"ldl": "130 mg/dL"},
		"renal_function": {"creatinine": "1.1 mg/dL"},
		"_note": "dynamic",
		"lab_categories_identified": ["lipid_profile", "renal_function"],
		"abnormal_findings_summary": [],
		"critical_values": []
	}`))

	assert.Equal(t, []string{"lipid_profile", "renal_function"}, a.LabCategories())
}

func TestMedicalAnalysis_LabCategoriesMissingSection(t *testing.T) {
	a := domain.NewMedicalAnalysis()
	assert.Nil(t, a.LabCategories())

	a.Set("laboratory_results", json.RawMessage(`null`))
	assert.Nil(t, a.LabCategories())
}
