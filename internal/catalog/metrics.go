package catalog

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	reasonUnavailable = "unavailable"
	reasonMalformed   = "malformed"
	reasonOther       = "other"
)

type LoadMetrics struct {
	Entries  prometheus.Gauge
	Failures *prometheus.CounterVec
	Duration prometheus.Histogram
}

func NewLoadMetrics(reg *prometheus.Registry) *LoadMetrics {
	m := &LoadMetrics{
		Entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_entries",
			Help: "Entries in the currently served catalog snapshot",
		}),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_load_failures_total",
				Help: "Failed catalog loads by reason",
			},
			[]string{"reason"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "catalog_load_duration_seconds",
			Help: "Catalog load latency",
		}),
	}

	reg.MustRegister(m.Entries, m.Failures, m.Duration)
	return m
}

func (m *LoadMetrics) observe(snap *Snapshot, err error, d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.Observe(d.Seconds())

	if err != nil {
		m.Failures.WithLabelValues(failureReason(err)).Inc()
		return
	}
	m.Entries.Set(float64(snap.Len()))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrMalformedData):
		return reasonMalformed
	case errors.Is(err, ErrSourceUnavailable):
		return reasonUnavailable
	default:
		return reasonOther
	}
}
