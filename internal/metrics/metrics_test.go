package metrics

import (
	"database/sql"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveQuery(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewQueryMetrics(registry)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		err    error
		status string
	}{
		{"success", nil, statusSuccess},
		{"no rows is not a failure", sql.ErrNoRows, statusSuccess},
		{"failure", errors.New("connection reset"), statusError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			op := "sessions." + tc.name
			m.ObserveQuery(op, 3*time.Millisecond, tc.err)

			count := testutil.ToFloat64(m.queriesTotal.WithLabelValues(op, tc.status))
			assert.Equal(t, float64(1), count)
		})
	}

	assert.Equal(t, 3, testutil.CollectAndCount(m.queryDuration))
}

func TestNewQueryMetricsRejectsDuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()
	_, err := NewQueryMetrics(registry)
	require.NoError(t, err)

	_, err = NewQueryMetrics(registry)
	assert.Error(t, err)
}

func TestRegisterPool(t *testing.T) {
	registry := prometheus.NewRegistry()
	stats := func() sql.DBStats {
		return sql.DBStats{MaxOpenConnections: 10, OpenConnections: 4, InUse: 1, WaitCount: 7}
	}
	require.NoError(t, RegisterPool(registry, stats))

	families, err := registry.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			if g := metric.GetGauge(); g != nil {
				values[f.GetName()] = g.GetValue()
			}
			if c := metric.GetCounter(); c != nil {
				values[f.GetName()] = c.GetValue()
			}
		}
	}

	assert.Equal(t, map[string]float64{
		"hansard_db_connections_open":       4,
		"hansard_db_connections_in_use":     1,
		"hansard_db_connections_max":        10,
		"hansard_db_connection_waits_total": 7,
	}, values)
}

func TestMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	m, err := NewHTTPMetrics(registry)
	require.NoError(t, err)

	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/api/sessions/:id", func(c *fiber.Ctx) error {
		if c.Params("id") == "missing" {
			return fiber.ErrNotFound
		}
		return c.SendString("ok")
	})

	for _, path := range []string{"/api/sessions/S1", "/api/sessions/S2", "/api/sessions/missing"} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		_ = resp.Body.Close()
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/sessions/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/sessions/:id", "404")))
}
