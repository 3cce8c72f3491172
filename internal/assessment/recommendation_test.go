package assessment_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-risk-analyzer/internal/assessment"
)

func TestRecommend_EmptySetGivesGeneralAdvice(t *testing.T) {
	recs := assessment.Recommend(assessment.FactorSet{})

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "healthy habits")
}

func TestRecommend_CanonicalOrder(t *testing.T) {
	factors := assessment.FactorSet{}
	// Added out of order on purpose.
	factors.Add(assessment.SmokingHabit)
	factors.Add(assessment.HighBMI)
	factors.Add(assessment.HighSystolicBP)

	recs := assessment.Recommend(factors)

	require.Len(t, recs, 3)
	assert.True(t, strings.HasPrefix(recs[0], "**Blood pressure:**"))
	assert.True(t, strings.HasPrefix(recs[1], "**Weight:**"))
	assert.True(t, strings.HasPrefix(recs[2], "**Lifestyle:**"))
}

func TestRecommend_OnePerFactor(t *testing.T) {
	factors := assessment.FactorSet{}
	factors.Add(assessment.HighFastingBloodSugar)
	factors.Add(assessment.HighFastingBloodSugar)

	recs := assessment.Recommend(factors)

	require.Len(t, recs, 1)
	assert.True(t, strings.HasPrefix(recs[0], "**Blood sugar:**"))
}

func TestResultFor_RebuildsFactorsFromRecord(t *testing.T) {
	rec := assessment.AnalysisRecord{
		Age: 45, BMI: 28, SystolicBP: 145, BloodSugar: 130, IsSmoker: true,
		HypertensionScore: 60, DiabetesScore: 67.5, MetabolicScore: 78.75,
	}

	res := assessment.ResultFor(rec)

	assert.Equal(t, 78.75, res.Scores.Metabolic)
	assert.Len(t, res.Factors, 4)
	assert.Len(t, res.Recommendations, 4)
	assert.Equal(t, assessment.LevelDanger, res.Level)
}
