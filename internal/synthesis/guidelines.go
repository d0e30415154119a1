package synthesis

// medicalGuidelines is the shared clinical knowledge block injected into both
// synthesis stages. It is static configuration, not business logic: the
// pipeline supplies the formulas and expects the generative stage to apply
// them.
const medicalGuidelines = `
# COMPREHENSIVE MEDICAL ANALYSIS GUIDELINES

## MANDATORY CALCULATIONS (Perform where data exists):

### 1. BMI CALCULATION
Formula: BMI = weight(kg) / [height(m)]²
Classifications:
- WHO: <18.5 Underweight, 18.5-24.9 Normal, 25.0-29.9 Overweight, ≥30.0 Obese
- Indian RSSDI: <18.5 Underweight, 18.5-22.9 Normal, 23.0-24.9 Overweight, 25.0-32.9 Obese, ≥33.0 Severely Obese

### 2. BMR & TDEE (Mifflin-St Jeor)
Men: BMR = (10 × weight_kg) + (6.25 × height_cm) - (5 × age) + 5
Women: BMR = (10 × weight_kg) + (6.25 × height_cm) - (5 × age) - 161
TDEE = BMR × Activity Factor (Sedentary: 1.2, Light: 1.375, Moderate: 1.55, Very: 1.725, Extra: 1.9)

### 3. TOBACCO RISK
Pack-Years = (packs/day) × years OR (bidis/day × years) / 43
Smoking Index = (cigarettes or bidis/day) × years
Chewing Index = (quids/day) × years
Risk: <20/<400 Low, 20-40/400-799 Moderate, >40/≥800 High

### 4. DAILY STEPS
Children: 6,000-12,000, Adults: 7,000-12,000, Seniors: 6,000-10,000
Conversion: Men km = steps × 0.78/1000, Women km = steps × 0.70/1000

### 5. SLEEP ASSESSMENT
Age-based duration (hours): Newborns 14-17, Infants 12-15, Toddlers 11-14,
Preschool 10-13, School-age 9-11, Teens 8-10, Adults 7-9, Seniors 7-8

### 6. SVS PULSE GRADING
0: Absent, 1+: Weak, 2+: Normal, 3+: Bounding
Sites: Femoral, Popliteal, Anterior Tibial, Posterior Tibial, Dorsalis Pedis

### 7. RUTHERFORD CLASSIFICATION (Arterial Disease)
Class 0: Asymptomatic, 1-3: Claudication, 4: Rest pain, 5: Minor tissue loss, 6: Major tissue loss

### 8. CALORIE DEFICIT
For weight loss: 400-1,000 kcal/day deficit = 0.5-1 kg/week loss
Macros: Protein 1.2-2.0 g/kg, Fat 20-35%, Carbs 45-65%
Fluid: Men 2.5-3.7 L/day, Women 2.0-2.7 L/day
`
