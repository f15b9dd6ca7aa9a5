// Package metrics exposes Prometheus collectors for desktop captures and
// tool calls.
package metrics

import (
	"net/http"
	"time"

	"github.com/mj1618/windows-mcp/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Capture outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeTimeout     = "timeout"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	Captures        *prometheus.CounterVec
	CaptureDuration prometheus.Histogram
	Elements        *prometheus.GaugeVec
	ToolCalls       *prometheus.CounterVec
	ToolDuration    *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates collectors on a private registry, so several servers (or
// tests) can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Captures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "windows_mcp_captures_total",
				Help: "Desktop state captures by outcome",
			},
			[]string{"outcome"},
		),
		CaptureDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "windows_mcp_capture_duration_seconds",
				Help:    "Time to assemble a desktop state",
				Buckets: []float64{.05, .1, .25, .5, 1, 2, 4, 8, 16},
			},
		),
		Elements: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "windows_mcp_snapshot_elements",
				Help: "Elements in the most recent snapshot by partition",
			},
			[]string{"partition"},
		),
		ToolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "windows_mcp_tool_calls_total",
				Help: "MCP tool calls by tool and outcome",
			},
			[]string{"tool", "outcome"},
		),
		ToolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "windows_mcp_tool_duration_seconds",
				Help:    "MCP tool call latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		registry: reg,
	}
}

// ObserveCapture records one capture. snap may be nil when the capture failed.
func (m *Metrics) ObserveCapture(d time.Duration, outcome string, snap *model.TreeSnapshot) {
	if m == nil {
		return
	}
	m.Captures.WithLabelValues(outcome).Inc()
	m.CaptureDuration.Observe(d.Seconds())
	if snap != nil {
		m.Elements.WithLabelValues(string(model.PartitionInteractive)).Set(float64(len(snap.Interactive)))
		m.Elements.WithLabelValues(string(model.PartitionInformative)).Set(float64(len(snap.Informative)))
		m.Elements.WithLabelValues(string(model.PartitionScrollable)).Set(float64(len(snap.Scrollable)))
	}
}

// ObserveTool records one tool call.
func (m *Metrics) ObserveTool(tool string, d time.Duration, failed bool) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if failed {
		outcome = OutcomeError
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
	m.ToolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
