package synthesis

import (
	"fmt"
	"strings"

	"medgen/internal/domain"
)

// RenderFragments concatenates extraction fragments for presentation to the
// generative stage, in resolver order. Fragments without text contribute
// their placeholder note so the model knows the asset existed.
func RenderFragments(fragments []domain.ExtractionFragment) string {
	var b strings.Builder
	for _, f := range fragments {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		switch {
		case f.Text != "":
			fmt.Fprintf(&b, "--- Text from %s (%s) ---\n%s", f.FieldPath, strings.ToUpper(string(f.Kind)), f.Text)
		default:
			fmt.Fprintf(&b, "--- File included: %s (%s) ---", f.FieldPath, f.Note)
		}
	}
	return b.String()
}

func stage1SystemPrompt() string {
	return fmt.Sprintf(`You are an expert medical data extraction assistant with OCR analysis capabilities.

%s

EXTRACTION PROTOCOL:
1. Extract ALL patient demographics, biometrics, vitals
2. Identify ALL laboratory test categories present (e.g., CBC, LFT, RFT, Lipid Profile, Thyroid, HbA1c, Electrolytes, Hormones, Tumor Markers, etc.)
3. Extract ALL lab values with units and reference ranges
4. Extract ALL physical examination findings
5. Extract ALL medical history and comorbidities
6. Extract ALL substance use history with quantities
7. Extract ALL lifestyle data (occupation, activity, sleep, diet, steps)
8. Extract ALL lower limb vascular findings
9. Extract ALL medications and allergies

IMPORTANT: For lab results, identify the EXACT test categories present in the documents, don't assume standard categories.`, medicalGuidelines)
}

func stage1Prompt(recordJSON, extractedText string) string {
	return fmt.Sprintf(`Extract ALL medical information from these sources:

PATIENT REGISTRATION DATA:
%s

EXTRACTED TEXT FROM ALL FILES (PDF & OCR):
%s

Provide comprehensive extraction with:
1. Complete patient demographics
2. IDENTIFIED LAB TEST CATEGORIES (list exactly what lab sections exist)
3. All lab values organized by their actual categories
4. All vital signs and anthropometric data
5. Complete medical and substance use history
6. Physical examination findings
7. Lifestyle assessment data
8. Current medications and allergies

Return detailed JSON with actual lab categories found.`, recordJSON, extractedText)
}

func stage2SystemPrompt() string {
	return "You are an expert medical report generator with comprehensive knowledge of international clinical guidelines. " +
		"You excel at creating detailed, evidence-based reports with accurate calculations and practical recommendations. " +
		"You adapt lab result sections dynamically based on actual test results present."
}

func stage2Prompt(extractedData, recordJSON string) string {
	return fmt.Sprintf(`Generate a COMPREHENSIVE medical report with MANDATORY core sections and DYNAMIC lab sections.

%s

EXTRACTED DATA:
%s

PATIENT REGISTRATION:
%s

Generate JSON following this EXACT structure:

%s

CRITICAL INSTRUCTIONS:
1. **CALCULATE ALL METRICS** where data exists using exact formulas
2. **MANDATORY SECTIONS**: Every top-level key in the structure above MUST be present. Use empty or null values where data is absent - never omit a key, never substitute placeholder prose
3. **DYNAMIC LAB SECTIONS**: Create lab subsections under "laboratory_results" ONLY for categories actually found in the documents. Do NOT invent categories that are not present in the source material
4. **COMPLETE DIET PLAN**: Provide specific foods, portions, timing, macros for each meal
5. **DETAILED EXERCISE PLAN**: Include specific exercises, duration, frequency, modifications
6. **USE ACTUAL DATA**: No placeholders - extract from OCR/PDF text
7. **PULSE GRADING**: Use SVS scale (0, 1+, 2+, 3+) for all documented pulses
8. **RISK STRATIFICATION**: Separate arterial, venous, lymphatic, diabetic foot risks
9. **REFERRALS**: List specific specialties with clear reasons
10. **RED FLAGS**: Comprehensive list of emergency signs

Return ONLY valid JSON, no markdown.`, medicalGuidelines, extractedData, recordJSON, reportSchemaSkeleton)
}

func documentSystemPrompt() string {
	return fmt.Sprintf(`You are an expert medical data extraction assistant with OCR capabilities.

%s

Extract ALL medical information from this single document, identifying actual lab test categories present.`, medicalGuidelines)
}

func documentStage2SystemPrompt() string {
	return "You are an expert medical document analyzer. You create focused analyses of individual medical documents " +
		"with dynamic lab sections based on actual document content, flagging abnormal and critical values."
}

func documentStage1Prompt(extractedText string) string {
	return fmt.Sprintf(`Extract comprehensive medical data from this document:

EXTRACTED TEXT (OCR/PDF):
%s

Include:
- Patient demographics if present
- ALL lab test categories identified (exact names)
- All lab values with units and ranges
- Vital signs and measurements
- Clinical findings
- Any diagnoses or recommendations

Return detailed JSON with identified lab categories.`, extractedText)
}

func documentStage2Prompt(extractedData string) string {
	return fmt.Sprintf(`Based on this single document, generate a focused medical analysis with dynamic lab sections.

%s

EXTRACTED DATA:
%s

Generate a JSON object with ALL of these top-level keys (use null where data is absent - never omit a key):
1. "document_info": type, date, source
2. "patient_info": if available from document
3. "laboratory_results": DYNAMIC - create subsections for each actual lab category found
4. "clinical_findings": any examination findings
5. "calculations": perform BMI, etc. if height/weight present
6. "interpretations": clinical significance of findings
7. "recommendations": based on results
8. "integrated_summary": key findings and next steps

IMPORTANT:
- Create lab subsections dynamically based on actual categories in the document; do NOT invent categories not present
- Use exact formulas for any calculations possible
- Flag abnormal/critical values
- Provide clinical interpretations

Return ONLY valid JSON.`, medicalGuidelines, extractedData)
}
