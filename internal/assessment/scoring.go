package assessment

// Score applies the fixed rule table to a validated input.
//
// The metabolic score averages the hypertension and diabetes sums before either is
// capped at 100, so it can exceed the mean of the public scores.
func Score(in BiometricInput) (RiskScoreSet, FactorSet) {
	factors := FactorSet{}

	hypertension := 0.0
	switch {
	case in.SystolicBP >= 140:
		hypertension += 50
		factors.Add(HighSystolicBP)
	case in.SystolicBP >= 130:
		hypertension += 30
		factors.Add(HighSystolicBP)
	}
	if in.Age > 40 {
		hypertension += float64(in.Age-40) * 0.8
	}
	if in.BMI >= 25 {
		hypertension += (in.BMI - 25) * 2
		factors.Add(HighBMI)
	}

	diabetes := 0.0
	switch {
	case in.BloodSugar >= 126:
		diabetes += 60
		factors.Add(HighFastingBloodSugar)
	case in.BloodSugar >= 100:
		diabetes += 40
		factors.Add(HighFastingBloodSugar)
	}
	if in.BMI >= 25 {
		diabetes += (in.BMI - 25) * 2.5
		factors.Add(HighBMI)
	}

	metabolic := (hypertension + diabetes) / 2
	if in.IsSmoker {
		metabolic += 15
		factors.Add(SmokingHabit)
	}

	return RiskScoreSet{
		Hypertension: clamp(hypertension),
		Diabetes:     clamp(diabetes),
		Metabolic:    clamp(metabolic),
	}, factors
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
