package assessment

const generalAdvice = "Keep up your current healthy habits! Regular exercise and a balanced diet remain essential."

var adviceByFactor = map[RiskFactor]string{
	HighSystolicBP:        "**Blood pressure:** Cut back on sodium (salt) and eat potassium-rich vegetables such as spinach and bananas.",
	HighFastingBloodSugar: "**Blood sugar:** Replace refined carbohydrates (white bread, sugar) with whole grains and fibre-rich meals.",
	HighBMI:               "**Weight:** Start with at least 30 minutes of aerobic exercise (brisk walking, jogging) three times a week.",
	SmokingHabit:          "**Lifestyle:** Quitting smoking is the first step in preventing every chronic disease. Make a plan to quit today.",
}

// Recommend maps factors to advice in canonical order.
func Recommend(factors FactorSet) []string {
	if len(factors) == 0 {
		return []string{generalAdvice}
	}
	recs := make([]string, 0, len(factors))
	for _, f := range canonicalFactors {
		if factors.Has(f) {
			recs = append(recs, adviceByFactor[f])
		}
	}
	return recs
}
