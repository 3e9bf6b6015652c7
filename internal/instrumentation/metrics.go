package instrumentation

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contains all Prometheus metrics for the agents tool server.
type Metrics struct {
	ToolCalls        *prometheus.CounterVec
	CatalogLatencyMs prometheus.Histogram
	AgentsReturned   prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewMetrics creates the metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		// Tool calls by tool and outcome
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "agently_tool_calls_total",
			Help: "Total number of tool calls by tool name and outcome",
		}, []string{"tool", "outcome"}),

		// Catalog round trip
		CatalogLatencyMs: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "agently_catalog_request_duration_ms",
			Help:    "Time spent on the Agently catalog request in milliseconds",
			Buckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}),

		AgentsReturned: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "agently_catalog_agents_returned",
			Help:    "Number of agents returned per catalog page",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 40, 50},
		}),

		gatherer: reg,
	}
}

// RecordToolCall increments the tool call counter.
func (m *Metrics) RecordToolCall(tool, outcome string) {
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

// RecordCatalogLatency records the duration of one catalog request.
func (m *Metrics) RecordCatalogLatency(latencyMs float64) {
	m.CatalogLatencyMs.Observe(latencyMs)
}

// RecordAgentsReturned records the size of a returned page.
func (m *Metrics) RecordAgentsReturned(count int) {
	m.AgentsReturned.Observe(float64(count))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
