package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submissions tracks place-order outcomes.
type Submissions struct {
	accepted prometheus.Counter
	rejected *prometheus.CounterVec
	failed   prometheus.Counter
	duration prometheus.Histogram
}

func NewSubmissions() *Submissions {
	return NewSubmissionsWith(prometheus.DefaultRegisterer)
}

// NewSubmissionsWith lets tests pass a fresh registry.
func NewSubmissionsWith(reg prometheus.Registerer) *Submissions {
	f := promauto.With(reg)
	return &Submissions{
		accepted: f.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_accepted_total",
			Help: "Orders committed successfully",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_orders_rejected_total",
			Help: "Orders rejected before commit",
		}, []string{"reason"}),
		failed: f.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_failed_total",
			Help: "Orders failed on infrastructure errors",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "storefront_order_submit_duration_seconds",
			Help:    "End-to-end duration of order submission",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Submissions) ObserveAccepted(d time.Duration) {
	m.accepted.Inc()
	m.duration.Observe(d.Seconds())
}

// reason: "validation" or "conflict"
func (m *Submissions) ObserveRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *Submissions) ObserveFailed() {
	m.failed.Inc()
}
