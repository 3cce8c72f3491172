package dashboard

import "health-risk-analyzer/internal/assessment"

// AgeLabels name the histogram buckets: <30, 30–39, 40–49, 50–59, 60+.
var AgeLabels = []string{"under 30", "30s", "40s", "50s", "60 and over"}

type SmokerDist struct {
	Smokers    int `json:"smokers"`
	NonSmokers int `json:"non_smokers"`
}

type AgeDist struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type RiskCorrelation struct {
	BMI            []float64 `json:"bmi"`
	MetabolicScore []float64 `json:"metabolic_score"`
}

// Summary is recomputed on every request and never stored.
type Summary struct {
	TotalUsers        int             `json:"total_users"`
	AvgMetabolicScore float64         `json:"avg_metabolic_score"`
	AvgAge            float64         `json:"avg_age"`
	SmokerDist        SmokerDist      `json:"smoker_dist"`
	AgeDist           AgeDist         `json:"age_dist"`
	RiskCorrelation   RiskCorrelation `json:"risk_correlation"`
}

// Aggregate summarises the given records. An empty input yields zero means.
func Aggregate(records []assessment.AnalysisRecord) Summary {
	s := Summary{
		TotalUsers: len(records),
		AgeDist: AgeDist{
			Labels: append([]string(nil), AgeLabels...),
			Data:   make([]int, len(AgeLabels)),
		},
		RiskCorrelation: RiskCorrelation{
			BMI:            make([]float64, 0, len(records)),
			MetabolicScore: make([]float64, 0, len(records)),
		},
	}

	var metabolicSum, ageSum float64
	for _, r := range records {
		metabolicSum += r.MetabolicScore
		ageSum += float64(r.Age)

		if r.IsSmoker {
			s.SmokerDist.Smokers++
		} else {
			s.SmokerDist.NonSmokers++
		}
		s.AgeDist.Data[ageBucket(r.Age)]++

		s.RiskCorrelation.BMI = append(s.RiskCorrelation.BMI, r.BMI)
		s.RiskCorrelation.MetabolicScore = append(s.RiskCorrelation.MetabolicScore, r.MetabolicScore)
	}

	if n := len(records); n > 0 {
		s.AvgMetabolicScore = metabolicSum / float64(n)
		s.AvgAge = ageSum / float64(n)
	}
	return s
}

func ageBucket(age int) int {
	switch {
	case age < 30:
		return 0
	case age <= 39:
		return 1
	case age <= 49:
		return 2
	case age <= 59:
		return 3
	default:
		return 4
	}
}
