// Package metrics provides the centralized Prometheus metrics registry for
// Lineup Lab.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	SimulationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "simulations_total",
		Help:      "Total number of simulation batches submitted",
	})
	SimulationErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "simulation_errors_total",
		Help:      "Total number of failed simulation batches",
	})
	GamesSimulatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "games_simulated_total",
		Help:      "Total number of games requested across all batches",
	})
	LineupsSavedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "lineups_saved_total",
		Help:      "Total number of lineups saved",
	})
	LineupsDeletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "lineups_deleted_total",
		Help:      "Total number of lineups deleted",
	})
	SelectionLimitRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "selection_limit_rejections_total",
		Help:      "Total number of selection attempts rejected by the 9-player cap",
	})
	RosterSyncsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "roster_syncs_total",
		Help:      "Total number of roster sync runs by outcome",
	}, []string{"team", "status"})
)

// Gauge metrics
var (
	RosterPlayersSynced = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "lineup_lab",
		Name:      "roster_players_synced",
		Help:      "Number of players in the latest roster snapshot per team",
	}, []string{"team"})
	OracleCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "lineup_lab",
		Name:      "oracle_cache_hit_ratio",
		Help:      "Hit ratio of the simulation result cache",
	})
)

// Histogram and error metrics for the oracle boundary
var (
	OracleRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lineup_lab",
		Name:      "oracle_request_duration_seconds",
		Help:      "Latency of simulation oracle requests",
		Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
	}, []string{"operation"})
	OracleErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lineup_lab",
		Name:      "oracle_errors_total",
		Help:      "Total number of oracle request failures by operation and reason",
	}, []string{"operation", "reason"})
)

// Registry returns the shared metrics registry, registering all metrics on
// first use.
func Registry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			SimulationsTotal,
			SimulationErrorsTotal,
			GamesSimulatedTotal,
			LineupsSavedTotal,
			LineupsDeletedTotal,
			SelectionLimitRejectionsTotal,
			RosterSyncsTotal,
			RosterPlayersSynced,
			OracleCacheHitRatio,
			OracleRequestDuration,
			OracleErrorsTotal,
		)
	})
	return registry
}

// Handler returns the HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry(), promhttp.HandlerOpts{})
}
