// Copyright (C) 2024-2026, Pricing Frontier Ltd. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics collects the generation pipeline's Prometheus collectors
// in one place, registered under a single namespace.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/PricingFrontier/synthetic-insurance-data/utils/wrappers"
)

type Metrics struct {
	quotesGenerated prometheus.Counter
	batchSeconds    prometheus.Histogram
	buildSeconds    prometheus.Gauge
	rowsSkipped     *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
}

func New(namespace string, registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		quotesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_generated",
			Help:      "number of quote records composed",
		}),
		batchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_seconds",
			Help:      "wall time of each generate batch",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
		buildSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_build_seconds",
			Help:      "wall time of the last index build",
		}),
		rowsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_skipped",
			Help:      "table rows dropped while loading and indexing",
		}, []string{"table"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_applied",
			Help:      "conditional draws answered by a fallback policy",
		}, []string{"attribute"}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		registerer.Register(m.quotesGenerated),
		registerer.Register(m.batchSeconds),
		registerer.Register(m.buildSeconds),
		registerer.Register(m.rowsSkipped),
		registerer.Register(m.fallbacks),
	)
	return m, errs.Err
}

func (m *Metrics) QuotesGenerated(n int) {
	m.quotesGenerated.Add(float64(n))
}

func (m *Metrics) ObserveBatch(d time.Duration) {
	m.batchSeconds.Observe(d.Seconds())
}

func (m *Metrics) ObserveBuild(d time.Duration) {
	m.buildSeconds.Set(d.Seconds())
}

func (m *Metrics) RowsSkipped(table string, n int) {
	if n > 0 {
		m.rowsSkipped.WithLabelValues(table).Add(float64(n))
	}
}

func (m *Metrics) FallbackApplied(attribute string) {
	m.fallbacks.WithLabelValues(attribute).Inc()
}
