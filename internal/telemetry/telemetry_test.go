package telemetry

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rgehrsitz/drivefit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RequestsTotal.WithLabelValues("/api/vehicles", "GET", "200").Inc()
	a.RequestsTotal.WithLabelValues("/api/vehicles", "GET", "200").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(a.RequestsTotal.WithLabelValues("/api/vehicles", "GET", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.RequestsTotal.WithLabelValues("/api/vehicles", "GET", "200")))
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.CalculationErrors.WithLabelValues("affordability", "validation").Inc()
	m.Recommendations.WithLabelValues("rules", "generated").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `drivefit_calculation_errors_total{error_type="validation",operation="affordability"} 1`)
	assert.Contains(t, string(body), "drivefit_recommendations_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestInitTracing(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled", func(t *testing.T) {
		tr, err := InitTracing(ctx, config.TracingConfig{}, "test")
		require.NoError(t, err)
		assert.NotNil(t, tr.Tracer)
		assert.NoError(t, tr.Shutdown(ctx))
	})

	t.Run("enabled without exporter", func(t *testing.T) {
		tr, err := InitTracing(ctx, config.TracingConfig{Enabled: true, ServiceName: "drivefit-test"}, "test")
		require.NoError(t, err)

		_, span := tr.Tracer.Start(ctx, "unit")
		assert.True(t, span.SpanContext().IsValid())
		span.End()
		assert.NoError(t, tr.Shutdown(ctx))
	})
}
