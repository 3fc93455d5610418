// Package metrics provides Prometheus collectors for database queries and
// HTTP requests
package metrics

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// QueryMetrics records the outcome of every store query. It satisfies
// store.QueryObserver.
type QueryMetrics struct {
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec

	collectors []prometheus.Collector
}

// NewQueryMetrics creates and registers query metrics
func NewQueryMetrics(registry *prometheus.Registry) (*QueryMetrics, error) {
	m := &QueryMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *QueryMetrics) initMetrics() {
	m.queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hansard_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"}, // operation: sessions.list, joiner.speakers; status: success, error
	)

	m.queryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hansard_db_query_duration_seconds",
			Help:    "Time taken for database queries",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"operation"},
	)

	m.collectors = []prometheus.Collector{m.queriesTotal, m.queryDuration}
}

// Describe implements the Collector interface
func (m *QueryMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *QueryMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// ObserveQuery records one query. Absent rows are not failures.
func (m *QueryMetrics) ObserveQuery(operation string, elapsed time.Duration, err error) {
	status := statusSuccess
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		status = statusError
	}
	m.queriesTotal.WithLabelValues(operation, status).Inc()
	m.queryDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RegisterPool exposes connection pool gauges read from stats on each scrape
func RegisterPool(registry *prometheus.Registry, stats func() sql.DBStats) error {
	gauges := []prometheus.Collector{
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "hansard_db_connections_open",
			Help: "Number of open database connections",
		}, func() float64 { return float64(stats().OpenConnections) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "hansard_db_connections_in_use",
			Help: "Number of database connections currently in use",
		}, func() float64 { return float64(stats().InUse) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "hansard_db_connections_max",
			Help: "Maximum number of open database connections",
		}, func() float64 { return float64(stats().MaxOpenConnections) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "hansard_db_connection_waits_total",
			Help: "Total number of times a query waited for a free connection",
		}, func() float64 { return float64(stats().WaitCount) }),
	}

	for _, g := range gauges {
		if err := registry.Register(g); err != nil {
			return err
		}
	}
	return nil
}
