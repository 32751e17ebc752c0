package metrics

import (
	"net/http"
	"time"

	"github.com/cuemby/nebula/pkg/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Client API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_api_requests_total",
			Help: "Total number of Client API operations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nebula_api_request_duration_seconds",
			Help:    "Client API operation duration in seconds, by operation.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Validation engine metrics
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_validations_total",
			Help: "Total number of chain validations by outcome.",
		},
		[]string{"outcome"},
	)

	ValidationChainDepth = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nebula_validation_chain_depth",
			Help:    "Depth reached while walking a certificate/document chain.",
			Buckets: []float64{0, 1, 2, 4, 8, 12, 16},
		},
	)

	// Queue metrics
	QueueEnqueuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_queue_enqueued_total",
			Help: "Total number of messages enqueued, by queue id.",
		},
		[]string{"queue"},
	)

	QueueDequeuedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_queue_dequeued_total",
			Help: "Total number of messages dequeued, by queue id.",
		},
		[]string{"queue"},
	)

	// Repository metrics
	RepositoryErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nebula_repository_errors_total",
			Help: "Total number of repository errors by namespace and kind.",
		},
		[]string{"namespace", "kind"},
	)
)

func init() {
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
	prometheus.MustRegister(ValidationsTotal)
	prometheus.MustRegister(ValidationChainDepth)
	prometheus.MustRegister(QueueEnqueuedTotal)
	prometheus.MustRegister(QueueDequeuedTotal)
	prometheus.MustRegister(RepositoryErrorsTotal)

	for _, c := range cache.Collectors() {
		prometheus.MustRegister(c)
	}
}

// Handler returns the Prometheus HTTP handler for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	duration := time.Since(t.start).Seconds()
	histogram.Observe(duration)
}

// ObserveDurationVec records the duration to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	duration := time.Since(t.start).Seconds()
	histogram.WithLabelValues(labels...).Observe(duration)
}

// Duration returns the elapsed time since timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
