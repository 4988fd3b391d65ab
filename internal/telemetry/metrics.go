// Package telemetry wires structured logging and Prometheus metrics for
// mstgraphd, following the ambient stack the rest of the corpus reaches
// for rather than hand-rolled counters or a bespoke log format.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the full set of Prometheus collectors mstgraphd exposes. It
// implements server.Metrics (ClientConnected/ClientDisconnected) so it
// can be passed directly to either front-end.
type Metrics struct {
	registry *prometheus.Registry

	connectedClients prometheus.Gauge
	stageQueueDepth  *prometheus.GaugeVec
	leaderPromotions prometheus.Counter
	commandLatency   *prometheus.HistogramVec
	mstBuildDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry (not the global
// default one, so tests can spin up multiple independent Metrics).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		connectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mstgraphd_connected_clients",
			Help: "Number of currently connected client sessions.",
		}),
		stageQueueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mstgraphd_pipeline_stage_queue_depth",
			Help: "Pending task count per Pipeline ActiveObject stage.",
		}, []string{"stage"}),
		leaderPromotions: factory.NewCounter(prometheus.CounterOpts{
			Name: "mstgraphd_lf_leader_promotions_total",
			Help: "Total number of Leader-Follower leadership handoffs.",
		}),
		commandLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mstgraphd_command_latency_seconds",
			Help:    "Latency of a single client command, by command kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
		mstBuildDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mstgraphd_mst_build_duration_seconds",
			Help:    "Time to build an MST, by strategy.",
			Buckets: prometheus.DefBuckets,
		}, []string{"strategy"}),
	}
}

// ClientConnected implements server.Metrics.
func (m *Metrics) ClientConnected() { m.connectedClients.Inc() }

// ClientDisconnected implements server.Metrics.
func (m *Metrics) ClientDisconnected() { m.connectedClients.Dec() }

// ObserveStageQueueDepth records a Pipeline stage's current queue depth.
func (m *Metrics) ObserveStageQueueDepth(stage string, depth int) {
	m.stageQueueDepth.WithLabelValues(stage).Set(float64(depth))
}

// RecordLeaderPromotion increments the LF handoff counter.
func (m *Metrics) RecordLeaderPromotion() { m.leaderPromotions.Inc() }

// ObserveCommandLatency records how long one command took to serve.
func (m *Metrics) ObserveCommandLatency(command string, d time.Duration) {
	m.commandLatency.WithLabelValues(command).Observe(d.Seconds())
}

// ObserveMSTBuildDuration records how long Prim/Kruskal took to run.
func (m *Metrics) ObserveMSTBuildDuration(strategy string, d time.Duration) {
	m.mstBuildDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
