// SPDX-License-Identifier: MIT

package regression

import (
	"io"
	"log/slog"

	"github.com/katalvlaran/lvframe/svd"
)

const panicThresholdInvalid = "regression: WithSingularValueThreshold: threshold must be finite and >= machine epsilon"

// Option configures a Solver. Safe to apply repeatedly.
// Constructors panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective Solver configuration after applying Option
// setters; public entry points accept ...Option.
type Options struct {
	logger    *slog.Logger
	metrics   *Metrics
	threshold float64 // 0 ⇒ svd.DefaultThreshold
}

// WithLogger enables debug tracing of system assembly, decomposition and
// solves. A nil logger keeps the default, which discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records solve counts and timings into m.
func WithMetrics(m *Metrics) Option {
	return func(o *Options) { o.metrics = m }
}

// WithSingularValueThreshold fixes the singular-value threshold instead of
// the adaptive default. It panics unless t is finite and ≥ machine epsilon.
func WithSingularValueThreshold(t float64) Option {
	if err := svd.ValidateThreshold(t); err != nil {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = t }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
