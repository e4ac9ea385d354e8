// SPDX-License-Identifier: MIT

package regression

import "github.com/prometheus/client_golang/prometheus/testutil"

// Test bridge: read collector values from regression_test without widening
// the production API.

// SolvesTotal returns the solve counter for one outcome ("ok" or "error").
func (m *Metrics) SolvesTotal(outcome string) float64 {
	return testutil.ToFloat64(m.solves.WithLabelValues(outcome))
}

// SystemsBuilt returns the system assembly counter.
func (m *Metrics) SystemsBuilt() float64 {
	return testutil.ToFloat64(m.systems)
}
