package metrics

import "github.com/prometheus/client_golang/prometheus"

// Intent extraction Prometheus metrics.
var (
	ExtractionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bazaarsearch",
			Name:      "extraction_requests_total",
			Help:      "Total number of intent extraction requests",
		},
		[]string{"model", "status"},
	)

	ExtractionRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bazaarsearch",
			Name:      "extraction_request_duration_seconds",
			Help:      "Intent extraction request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		},
		[]string{"model"},
	)

	ExtractionFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bazaarsearch",
			Name:      "extraction_fallbacks_total",
			Help:      "Queries where extraction failed and the planner applied its failure policy",
		},
		[]string{"policy"},
	)
)

var extMetricsRegistered bool

// RegisterExtractionMetrics registers Prometheus extraction metrics. Must be called once from main.
func RegisterExtractionMetrics() {
	if extMetricsRegistered {
		return
	}
	prometheus.MustRegister(ExtractionRequestsTotal)
	prometheus.MustRegister(ExtractionRequestDuration)
	prometheus.MustRegister(ExtractionFallbacksTotal)
	extMetricsRegistered = true
}
