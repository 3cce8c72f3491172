package assessment_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-risk-analyzer/internal/assessment"
	"health-risk-analyzer/internal/platform/web"
)

func newTestRouter(repo assessment.Repository) http.Handler {
	h := assessment.NewHandler(assessment.NewService(repo, discardLogger()), discardLogger())
	r := chi.NewRouter()
	assessment.RegisterRoutes(r, h)
	return r
}

func TestHandler_Analyze(t *testing.T) {
	t.Run("returns scores, factors and recommendations", func(t *testing.T) {
		router := newTestRouter(assessment.NewMemoryRepository())
		body := `{"name":"Kim","age":45,"bmi":"28","systolic_bp":145,"blood_sugar":130,"is_smoker":1}`

		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var resp struct {
			ID              string             `json:"id"`
			Scores          map[string]float64 `json:"scores"`
			Factors         []string           `json:"factors"`
			Recommendations []string           `json:"recommendations"`
			Level           string             `json:"risk_level"`
		}
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.InDelta(t, 60, resp.Scores["hypertension"], 1e-9)
		assert.InDelta(t, 67.5, resp.Scores["diabetes"], 1e-9)
		assert.InDelta(t, 78.75, resp.Scores["metabolic"], 1e-9)
		assert.Equal(t, []string{
			"High systolic blood pressure",
			"High fasting blood sugar",
			"High BMI",
			"Smoking habit",
		}, resp.Factors)
		assert.Len(t, resp.Recommendations, 4)
		assert.Equal(t, "danger", resp.Level)
		_, err := uuid.Parse(resp.ID)
		assert.NoError(t, err)
	})

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "malformed json", body: `{"age":`},
		{name: "not an object", body: `[1,2,3]`},
		{name: "unknown key", body: `{"age":1,"bmi":20,"systolic_bp":1,"blood_sugar":1,"is_smoker":0,"weight":80}`, field: "weight"},
		{name: "missing field", body: `{"age":30,"bmi":20,"systolic_bp":120,"is_smoker":0}`, field: "blood_sugar"},
		{name: "systolic beyond column range", body: `{"age":30,"bmi":20,"systolic_bp":1e19,"blood_sugar":90,"is_smoker":0}`, field: "systolic_bp"},
		{name: "non-numeric field", body: `{"age":"old","bmi":20,"systolic_bp":120,"blood_sugar":90,"is_smoker":0}`, field: "age"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(assessment.NewMemoryRepository())

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var resp web.ErrorBody
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestHandler_GetRecord(t *testing.T) {
	repo := assessment.NewMemoryRepository()
	router := newTestRouter(repo)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/analyze",
		strings.NewReader(`{"age":25,"bmi":21,"systolic_bp":110,"blood_sugar":85,"is_smoker":0}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	var created assessment.Result
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	t.Run("found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyses/"+created.ID.String(), nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var rec assessment.AnalysisRecord
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&rec))
		assert.Equal(t, created.ID, rec.ID)
		assert.Equal(t, assessment.DefaultName, rec.Name)
		assert.False(t, rec.IsSmoker)
	})

	t.Run("not found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyses/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/analyses/42", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
