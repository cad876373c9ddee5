// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package semaphore

import "github.com/prometheus/client_golang/prometheus"

// NewMetrics constructs and registers the two instruments consumed by
// Instrument: a gauge for outstanding permits and a counter for failed
// operations.  Both results satisfy Adder and can be passed directly to
// WithPermits and WithFailures.
func NewMetrics(r prometheus.Registerer, namespace, subsystem string) (permits prometheus.Gauge, failures prometheus.Counter, err error) {
	permits = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "permits",
		Help:      "the number of permits signaled but not yet consumed",
	})

	failures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "failures",
		Help:      "the number of semaphore operations rejected by the platform",
	})

	for _, c := range []prometheus.Collector{permits, failures} {
		if err = r.Register(c); err != nil {
			return nil, nil, err
		}
	}

	return
}
