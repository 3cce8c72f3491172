package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_AssessmentCompleted(t *testing.T) {
	m := New()

	m.AssessmentCompleted("danger", []string{"High BMI", "Smoking habit"}, 10*time.Millisecond)
	m.AssessmentCompleted("safe", nil, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.assessments.WithLabelValues("danger")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.assessments.WithLabelValues("safe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.factors.WithLabelValues("High BMI")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestMetrics_ValidationFailed(t *testing.T) {
	m := New()

	m.ValidationFailed("bmi")
	m.ValidationFailed("bmi")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejected.WithLabelValues("bmi")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ValidationFailed("age")

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `health_assessment_validation_errors_total{field="age"} 1`)
}
