package transport

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeTimeout  = "timeout"
	outcomeNetwork  = "network"
	outcomeCanceled = "canceled"
)

// Metrics counts HTTP attempts. A nil *Metrics records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the learnkit_http_* collectors on reg. A nil reg
// leaves the collectors unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "learnkit",
			Subsystem: "http",
			Name:      "attempts_total",
			Help:      "HTTP attempts by method and outcome.",
		}, []string{"method", "outcome"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "learnkit",
			Subsystem: "http",
			Name:      "retries_total",
			Help:      "Attempts re-sent after a transient failure.",
		}, []string{"method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "learnkit",
			Subsystem: "http",
			Name:      "attempt_duration_seconds",
			Help:      "Wall time of a single HTTP attempt.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.attempts, m.retries, m.duration} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) observe(method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) retry(method string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(method).Inc()
}
