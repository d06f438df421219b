// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EncodesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vite_encodes_total",
		Help: "Encode requests by outcome.",
	}, []string{"status"})

	DecodesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vite_decodes_total",
		Help: "Decode requests by outcome.",
	}, []string{"status"})

	RedirectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vite_redirects_total",
		Help: "Short link resolution attempts by outcome.",
	}, []string{"status"})

	RedirectDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "vite_redirect_duration_seconds",
		Help:    "Time from request receipt to redirect response.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
	})

	LinksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vite_links_total",
		Help: "Total number of links in the store.",
	})
)

// Outcome labels shared by the counters above.
const (
	StatusOK       = "ok"
	StatusText     = "text"
	StatusZero     = "zero"
	StatusInvalid  = "invalid"
	StatusNotFound = "not_found"
	StatusError    = "error"
)
