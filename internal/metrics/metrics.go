package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type moduleMetrics struct {
	storeSavesTotal    *prometheus.CounterVec
	storeRestoresTotal prometheus.Counter

	aliasOpsTotal       *prometheus.CounterVec
	aliasCount          prometheus.Gauge
	orphansRemovedTotal prometheus.Counter

	sessionCount      prometheus.Gauge
	sessionListsTotal prometheus.Counter
}

var (
	metricsOnce sync.Once
	metricsInst *moduleMetrics
	registry    *prometheus.Registry
)

func getMetrics() *moduleMetrics {
	metricsOnce.Do(func() {
		m := &moduleMetrics{
			storeSavesTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "store_saves_total",
					Help: "Total alias store save attempts by outcome.",
				},
				[]string{"outcome"},
			),
			storeRestoresTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "store_restores_total",
					Help: "Total backup restores after failed saves.",
				},
			),
			aliasOpsTotal: prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Name: "alias_ops_total",
					Help: "Total alias operations by operation and status.",
				},
				[]string{"op", "status"},
			),
			aliasCount: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "alias_count",
					Help: "Current number of stored aliases.",
				},
			),
			orphansRemovedTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "orphans_removed_total",
					Help: "Total orphaned aliases removed by cleanup.",
				},
			),
			sessionCount: prometheus.NewGauge(
				prometheus.GaugeOpts{
					Name: "session_count",
					Help: "Session files seen by the most recent enumeration.",
				},
			),
			sessionListsTotal: prometheus.NewCounter(
				prometheus.CounterOpts{
					Name: "session_lists_total",
					Help: "Total session directory enumerations.",
				},
			),
		}

		registry = prometheus.NewRegistry()
		registry.MustRegister(
			m.storeSavesTotal,
			m.storeRestoresTotal,
			m.aliasOpsTotal,
			m.aliasCount,
			m.orphansRemovedTotal,
			m.sessionCount,
			m.sessionListsTotal,
		)

		metricsInst = m
	})
	return metricsInst
}

// EnsureRegistered forces metric registration. Safe to call repeatedly.
func EnsureRegistered() {
	getMetrics()
}

func outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// RecordStoreSave counts one save attempt.
func RecordStoreSave(ok bool) {
	getMetrics().storeSavesTotal.WithLabelValues(outcome(ok)).Inc()
}

// RecordStoreRestore counts one backup restore.
func RecordStoreRestore() {
	getMetrics().storeRestoresTotal.Inc()
}

// RecordAliasOp counts one alias operation.
func RecordAliasOp(op string, ok bool) {
	getMetrics().aliasOpsTotal.WithLabelValues(op, outcome(ok)).Inc()
}

// SetAliasCount updates the stored-alias gauge.
func SetAliasCount(n int) {
	getMetrics().aliasCount.Set(float64(n))
}

// AddOrphansRemoved counts aliases removed by orphan cleanup.
func AddOrphansRemoved(n int) {
	getMetrics().orphansRemovedTotal.Add(float64(n))
}

// SetSessionCount updates the session-file gauge.
func SetSessionCount(n int) {
	getMetrics().sessionCount.Set(float64(n))
}

// RecordSessionList counts one directory enumeration.
func RecordSessionList() {
	getMetrics().sessionListsTotal.Inc()
}

// Handler exposes the registry for scraping.
func Handler() http.Handler {
	getMetrics()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
