// SPDX-License-Identifier: MIT

package regression

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "lvframe"

// Solve outcomes used as the "outcome" label.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Metrics holds Prometheus collectors for the regression solver.
type Metrics struct {
	solves    *prometheus.CounterVec
	duration  prometheus.Histogram
	truncated prometheus.Histogram
	systems   prometheus.Counter
}

// NewMetrics creates the solver collectors and registers them with reg.
// A nil reg leaves them unregistered (useful in tests).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "regression",
			Name:      "solves_total",
			Help:      "Regression solves by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "regression",
			Name:      "solve_duration_seconds",
			Help:      "Wall time of Solve, including lazy system assembly and decomposition.",
			Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		truncated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "regression",
			Name:      "truncated_singular_values",
			Help:      "Singular values of the augmented matrix treated as zero per solve.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32},
		}),
		systems: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "regression",
			Name:      "systems_built_total",
			Help:      "Augmented systems assembled (cache misses).",
		}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.solves, m.duration, m.truncated, m.systems} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// observeSolve records one solve. Safe on a nil receiver.
func (m *Metrics) observeSolve(start time.Time, truncated int, err error) {
	if m == nil {
		return
	}
	m.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.solves.WithLabelValues(outcomeError).Inc()

		return
	}
	m.solves.WithLabelValues(outcomeOK).Inc()
	m.truncated.Observe(float64(truncated))
}

// observeSystem records one system assembly. Safe on a nil receiver.
func (m *Metrics) observeSystem() {
	if m == nil {
		return
	}
	m.systems.Inc()
}
