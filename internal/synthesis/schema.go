package synthesis

// reportSchemaSkeleton is the Stage 2 output contract shown to the model:
// fixed mandatory sections plus dynamic laboratory subsections. Static
// configuration knowledge, referenced as injected context.
const reportSchemaSkeleton = `{
  "patient_info": {
    "name": "string",
    "age": 0,
    "gender": "Male/Female/Other",
    "occupation": "string",
    "occupation_activity_classification": "Sedentary/Intermediate/Active",
    "address": {"area": "", "locality": "", "city": "", "state": ""},
    "contact": "string",
    "dietary_preference": "Vegetarian/Non-vegetarian/Vegan/Eggetarian",
    "allergies": ["list"],
    "presenting_complaints": "free text"
  },

  "examination_findings": {
    "general_appearance": "string",
    "cardiovascular": "string",
    "respiratory": "string",
    "abdominal": "string",
    "neurological": "string",
    "musculoskeletal": {
      "joint_issues": ["list"],
      "previous_fractures": ["list"],
      "mobility_limitations": ["list"],
      "deformities": ["list"]
    },
    "lower_limb_vascular_assessment": {
      "pulse_grading_svs": {
        "femoral": {"left": "0/1+/2+/3+", "right": "0/1+/2+/3+", "notes": ""},
        "popliteal": {"left": "0/1+/2+/3+", "right": "0/1+/2+/3+", "notes": ""},
        "anterior_tibial": {"left": "0/1+/2+/3+", "right": "0/1+/2+/3+", "notes": ""},
        "posterior_tibial": {"left": "0/1+/2+/3+", "right": "0/1+/2+/3+", "notes": ""},
        "dorsalis_pedis": {"left": "0/1+/2+/3+", "right": "0/1+/2+/3+", "notes": ""}
      },
      "arterial_findings": {
        "intermittent_claudication": false,
        "claudication_distance_meters": 0,
        "rest_pain": false,
        "skin_changes": ["list"],
        "rutherford_classification": "Class 0-6 with rationale"
      },
      "venous_findings": {
        "varicose_veins": false,
        "edema": "None/Pitting/Brawny",
        "skin_changes": ["list"]
      },
      "diabetic_foot_assessment": {
        "neuropathy": false,
        "ulcers": ["list with details"],
        "deformities": ["list"],
        "infection_signs": false
      }
    },
    "other_findings": "string"
  },

  "laboratory_results": {
    "_note": "DYNAMIC SECTION - Include ONLY lab categories found in actual reports",
    "_instructions": "Create subsections for each lab test category identified (e.g., complete_blood_count, liver_function_tests, renal_function_tests, lipid_profile, thyroid_function, hba1c, electrolytes, etc.). Each test entry carries value, unit, reference_range, status.",
    "lab_categories_identified": ["list of actual categories found"],
    "abnormal_findings_summary": ["list all abnormal results with clinical significance"],
    "critical_values": ["list any critical/urgent findings"]
  },

  "risk_stratification": {
    "components": [
      {
        "category": "ARTERIAL/VENOUS/DIABETIC_FOOT/CARDIOVASCULAR/METABOLIC",
        "risk_level": "Low/Mild/Moderate/High/Critical",
        "findings": ["list specific findings"],
        "rationale": "clinical reasoning"
      }
    ],
    "overall_risk_assessment": "string with comprehensive summary"
  },

  "key_calculations": {
    "bmi": {"value": 0, "who": "string", "indian": "string"},
    "bmr_mifflin_st_jeor": {"value": 0, "unit": "kcal/day"},
    "tdee": {
      "sedentary": 0,
      "current_activity_level": 0,
      "activity_level_used": "string"
    },
    "calorie_deficit_needed": {
      "current_bmi_category": "string",
      "target_daily_calories": 0,
      "deficit_amount": 0,
      "expected_weight_loss": "0.5-1 kg/week"
    },
    "total_tobacco_risk": "Low/Moderate/High",
    "cardiovascular_risk_score": "if applicable"
  },

  "individualized_diet_plan": {
    "target_calories": 0,
    "unit": "kcal/day",
    "type": "Vegetarian/Non-vegetarian",
    "macronutrient_distribution": {
      "protein": {"grams": 0, "range_gkg": "1.2-2.0", "percentage": "15-20%"},
      "carbohydrates": {"grams": 0, "percentage": "45-65%"},
      "fat": {"grams": 0, "percentage": "20-35%"}
    },
    "fluid_intake": {"target_liters": 0, "schedule": "string"},
    "meals": [
      {
        "meal_name": "Breakfast",
        "time": "7:00 AM",
        "foods": "Detailed food list with portions",
        "calories": 0,
        "protein": "Xg",
        "carbs": "Xg",
        "fat": "Xg"
      }
    ],
    "daily_totals": {"calories": 0, "protein": "Xg", "carbs": "Xg", "fat": "Xg"},
    "notes": ["portion adjustments, allergies considered, dietary preference honored"],
    "weekly_variation": "Rotate proteins, vary vegetables, alternate grains for variety"
  },

  "exercise_physiotherapy_plan": {
    "considerations": {
      "mobility_limitations": ["list"],
      "joint_issues": ["list"],
      "contraindications": ["list"],
      "current_fitness_level": "Sedentary/Beginner/Intermediate"
    },
    "recommended_program": [
      {
        "activity_type": "Walking Program",
        "description": "string",
        "frequency": "string",
        "intensity": "string",
        "duration": "string",
        "progression": "string",
        "modifications": "string"
      }
    ],
    "warm_up": "string",
    "cool_down": "string",
    "safety_precautions": ["list"]
  },

  "management_advice_triggers": {
    "diabetes": {"status": "Uncontrolled/Controlled/Not present", "action": "string"},
    "hypertension": {"status": "string", "action": "string"},
    "foot_care": {"status": "At risk/Ulcer present/Normal", "action": "string"},
    "tobacco_cessation": {"status": "Active use/Former/Never", "action": "string"},
    "medication_adherence": {"status": "string", "action": "string"},
    "wound_care": {"present": false, "action": "string"},
    "lifestyle_modifications": ["list"]
  },

  "red_flags_emergency_return": {
    "seek_immediate_medical_attention_if": ["comprehensive list of emergency signs"]
  },

  "follow_up_plan": {
    "next_appointment": "Timeframe (e.g., 2 weeks, 1 month)",
    "specialty_clinic_referrals": [
      {"clinic": "string", "reason": "string", "urgency": "Immediate/Routine"}
    ],
    "investigations_required": [
      {"test": "string", "timing": "string", "indication": "string"}
    ],
    "medication_review": "string",
    "self_monitoring": ["list"]
  },

  "integrated_report_summary": {
    "patient": {"demographics": "string", "dietary_preference": "string"},
    "main_problems": "primary diagnoses and key concerns",
    "critical_findings": "urgent findings or null",
    "care_plan_summary": ["list"],
    "advice": "string",
    "advisor": "AI Medical Assistant",
    "supervising_physician": "Report to be reviewed and co-signed by attending physician",
    "data_quality_assessment": "Complete/Partial data available, extraction quality"
  }
}`
