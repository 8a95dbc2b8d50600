// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package indelve

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instrumentation for an Indelve instance,
// grounded in cmd/cie/index.go's promhttp.Handler() wiring. Metrics is
// optional: a nil *Metrics disables instrumentation everywhere it is
// used, so tests and short-lived CLI invocations that never pass
// WithMetrics pay nothing for it.
type Metrics struct {
	// ProviderLoadTotal counts provider construction attempts by
	// outcome ("loaded", "unknown", "load_error").
	ProviderLoadTotal *prometheus.CounterVec
	// IndexRecords reports the current record count of each provider
	// that exposes one (see the sizedIndex interface).
	IndexRecords *prometheus.GaugeVec
	// SearchDuration records per-provider Search latency.
	SearchDuration *prometheus.HistogramVec
}

// NewMetrics builds and registers the indelve_* metric families against
// reg. Pass prometheus.DefaultRegisterer to expose them on the process's
// default /metrics handler, or a fresh prometheus.NewRegistry() in tests
// to avoid colliding with other registrations.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProviderLoadTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indelve_provider_load_total",
			Help: "Outcomes of provider construction attempts, labeled by provider name and outcome.",
		}, []string{"provider", "outcome"}),
		IndexRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "indelve_provider_index_records",
			Help: "Number of records currently held by a provider's index.",
		}, []string{"provider"}),
		SearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indelve_search_duration_seconds",
			Help:    "Search call latency per provider.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	reg.MustRegister(m.ProviderLoadTotal, m.IndexRecords, m.SearchDuration)
	return m
}

func (m *Metrics) observeLoad(provider, outcome string) {
	if m == nil {
		return
	}
	m.ProviderLoadTotal.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) observeIndexSize(provider string, n int) {
	if m == nil {
		return
	}
	m.IndexRecords.WithLabelValues(provider).Set(float64(n))
}

func (m *Metrics) observeSearchDuration(provider string, d time.Duration) {
	if m == nil {
		return
	}
	m.SearchDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// sizedIndex is implemented by providers that can report their current
// index size (today, only pkg/appsprovider.Provider). Providers that
// don't implement it simply never update IndexRecords.
type sizedIndex interface {
	IndexSize() int
}
