package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service's Prometheus collectors.
type Metrics struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	factors     *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	duration    prometheus.Histogram
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "health_assessments_total",
			Help: "Completed assessments by overall risk level.",
		}, []string{"level"}),
		factors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "health_risk_factors_total",
			Help: "Risk factors triggered across assessments.",
		}, []string{"factor"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "health_assessment_validation_errors_total",
			Help: "Assessment requests rejected by input validation.",
		}, []string{"field"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "health_assessment_duration_seconds",
			Help:    "Time spent handling an assessment, including any configured delay.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.assessments,
		m.factors,
		m.rejected,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) AssessmentCompleted(level string, factors []string, elapsed time.Duration) {
	m.assessments.WithLabelValues(level).Inc()
	for _, f := range factors {
		m.factors.WithLabelValues(f).Inc()
	}
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) ValidationFailed(field string) {
	m.rejected.WithLabelValues(field).Inc()
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
