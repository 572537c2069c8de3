package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for comfort assessments.
type Metrics struct {
	Assessments      *prometheus.CounterVec // labels: sensation
	AssessmentErrors *prometheus.CounterVec // labels: reason={out_of_range,invalid_selection,predict,invalid_prediction}
	PredictDuration  prometheus.Histogram
	PMV              prometheus.Histogram
	ModelLoaded      prometheus.Gauge

	// Prediction cache metrics.
	PredictionCache *prometheus.CounterVec // labels: result={hit,miss}

	// Assessment event stream metrics.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error}
	EventsEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Assessments,
		m.AssessmentErrors,
		m.PredictDuration,
		m.PMV,
		m.ModelLoaded,
		m.PredictionCache,
		m.EventsPublished,
		m.EventsEnabled,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pmv",
			Name:      "assessments_total",
			Help:      "Completed assessments by thermal sensation.",
		}, []string{"sensation"}),
		AssessmentErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pmv",
			Name:      "assessment_errors_total",
			Help:      "Failed assessments by reason.",
		}, []string{"reason"}),
		PredictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pmv",
			Name:      "predict_duration_seconds",
			Help:      "Duration of a single model prediction.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		PMV: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pmv",
			Name:      "predicted_value",
			Help:      "Distribution of predicted PMV values.",
			Buckets:   []float64{-3, -2, -1, 0, 1, 2, 3},
		}),
		ModelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pmv",
			Name:      "model_loaded",
			Help:      "1 when a predictor is attached, 0 otherwise.",
		}),
		PredictionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pmv",
			Name:      "prediction_cache_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pmv",
			Name:      "events_published_total",
			Help:      "Assessment events written to the event stream by outcome.",
		}, []string{"outcome"}),
		EventsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pmv",
			Name:      "events_enabled",
			Help:      "1 when assessment events are published, 0 otherwise.",
		}),
	}
}
