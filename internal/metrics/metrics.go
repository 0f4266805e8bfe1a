// Package metrics exposes Prometheus metrics for the order service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/orderlines/pkg/orderapi"
)

const namespace = "orderlines"

// Outcome labels for ItemsAdded. The accepted outcomes are the ones AddItem
// reports to clients.
const (
	OutcomeAppended = orderapi.OutcomeAppended
	OutcomeMerged   = orderapi.OutcomeMerged
	OutcomeRejected = "rejected"
)

// Metrics holds the service collectors. A nil *Metrics records nothing.
type Metrics struct {
	ItemsAdded *prometheus.CounterVec
	Requests   *prometheus.CounterVec
	DurationMS *prometheus.HistogramVec
	registry   *prometheus.Registry
}

// New creates the collectors and registers them, plus the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	itemsAdded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_added_total",
		Help:      "AddItem calls by outcome.",
	}, []string{"outcome"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "Total number of RPC requests.",
	}, []string{"procedure", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_ms",
		Help:      "RPC latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	}, []string{"procedure"})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		itemsAdded,
		requests,
		duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		ItemsAdded: itemsAdded,
		Requests:   requests,
		DurationMS: duration,
		registry:   registry,
	}
}

// ItemAdded counts one AddItem call with the given outcome.
func (m *Metrics) ItemAdded(outcome string) {
	if m == nil {
		return
	}
	m.ItemsAdded.WithLabelValues(outcome).Inc()
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, durationMS float64) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(procedure, code).Inc()
	m.DurationMS.WithLabelValues(procedure).Observe(durationMS)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
