package assessment

import (
	"time"

	"github.com/google/uuid"
)

// DefaultName is stored when the request carries no display name.
const DefaultName = "User"

type RiskFactor string

const (
	HighSystolicBP        RiskFactor = "High systolic blood pressure"
	HighBMI               RiskFactor = "High BMI"
	HighFastingBloodSugar RiskFactor = "High fasting blood sugar"
	SmokingHabit          RiskFactor = "Smoking habit"
)

// canonicalFactors is the order factors are reported and mapped to advice.
var canonicalFactors = []RiskFactor{
	HighSystolicBP,
	HighFastingBloodSugar,
	HighBMI,
	SmokingHabit,
}

// FactorSet holds each risk factor at most once.
type FactorSet map[RiskFactor]struct{}

func (s FactorSet) Add(f RiskFactor) {
	s[f] = struct{}{}
}

func (s FactorSet) Has(f RiskFactor) bool {
	_, ok := s[f]
	return ok
}

// List returns the members in canonical order.
func (s FactorSet) List() []RiskFactor {
	out := make([]RiskFactor, 0, len(s))
	for _, f := range canonicalFactors {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

type RiskLevel string

const (
	LevelSafe    RiskLevel = "safe"
	LevelCaution RiskLevel = "caution"
	LevelDanger  RiskLevel = "danger"
)

// LevelFor buckets the metabolic score into the overall status shown to users.
func LevelFor(metabolic float64) RiskLevel {
	switch {
	case metabolic >= 70:
		return LevelDanger
	case metabolic >= 40:
		return LevelCaution
	default:
		return LevelSafe
	}
}

// BiometricInput is a validated assessment request.
type BiometricInput struct {
	Name       string
	Age        int
	BMI        float64
	SystolicBP int
	BloodSugar int
	IsSmoker   bool
}

type RiskScoreSet struct {
	Hypertension float64 `json:"hypertension"`
	Diabetes     float64 `json:"diabetes"`
	Metabolic    float64 `json:"metabolic"`
}

// AnalysisRecord is the persisted outcome of one assessment. Records are never updated.
type AnalysisRecord struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Age               int       `json:"age" db:"age"`
	BMI               float64   `json:"bmi" db:"bmi"`
	SystolicBP        int       `json:"systolic_bp" db:"systolic_bp"`
	BloodSugar        int       `json:"blood_sugar" db:"blood_sugar"`
	IsSmoker          bool      `json:"is_smoker" db:"is_smoker"`
	MetabolicScore    float64   `json:"metabolic_score" db:"metabolic_score"`
	HypertensionScore float64   `json:"hypertension_score" db:"hypertension_score"`
	DiabetesScore     float64   `json:"diabetes_score" db:"diabetes_score"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Result is what an assessment returns to the caller.
type Result struct {
	ID              uuid.UUID    `json:"id"`
	Scores          RiskScoreSet `json:"scores"`
	Factors         []RiskFactor `json:"factors"`
	Recommendations []string     `json:"recommendations"`
	Level           RiskLevel    `json:"risk_level"`
}

// RecordFilter narrows a count. Nil fields match everything; age bounds are inclusive.
type RecordFilter struct {
	IsSmoker *bool
	MinAge   *int
	MaxAge   *int
}

func (f RecordFilter) Matches(r AnalysisRecord) bool {
	if f.IsSmoker != nil && r.IsSmoker != *f.IsSmoker {
		return false
	}
	if f.MinAge != nil && r.Age < *f.MinAge {
		return false
	}
	if f.MaxAge != nil && r.Age > *f.MaxAge {
		return false
	}
	return true
}

func (r AnalysisRecord) Input() BiometricInput {
	return BiometricInput{
		Name:       r.Name,
		Age:        r.Age,
		BMI:        r.BMI,
		SystolicBP: r.SystolicBP,
		BloodSugar: r.BloodSugar,
		IsSmoker:   r.IsSmoker,
	}
}

// ResultFor rebuilds the response for a stored record. Factors and advice are
// re-derived from the stored inputs; scores are taken as stored.
func ResultFor(r AnalysisRecord) Result {
	_, factors := Score(r.Input())
	return Result{
		ID: r.ID,
		Scores: RiskScoreSet{
			Hypertension: r.HypertensionScore,
			Diabetes:     r.DiabetesScore,
			Metabolic:    r.MetabolicScore,
		},
		Factors:         factors.List(),
		Recommendations: Recommend(factors),
		Level:           LevelFor(r.MetabolicScore),
	}
}
