package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel(t *testing.T) {
	testCases := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"ERROR": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}

	for env, want := range testCases {
		t.Run(env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", env)
			assert.Equal(t, want, LogLevel())
		})
	}
}

func TestNewLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, slog.LevelInfo, "text").Info("hello", "system", "PRODES")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "system=PRODES")

	buf.Reset()
	NewLogger(&buf, slog.LevelInfo, "json").Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	NewLogger(&buf, slog.LevelWarn, "json").Info("hidden")
	assert.Empty(t, buf.String())
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo, "json")

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	FromContext(ctx).Info("x", "system", "TerraClass_AMZ")
	assert.Contains(t, buf.String(), `"system":"TerraClass_AMZ"`)
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lccs_client_requests_total",
		Help: "Total HTTP requests sent to LCCS-WS",
	}, []string{"method", "code"})
	other := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "other_total",
		Help: "Unrelated",
	})
	reg.MustRegister(requests, other)
	requests.WithLabelValues("GET", "200").Add(2)
	other.Inc()

	var buf bytes.Buffer
	require.NoError(t, WriteMetrics(&buf, reg, ClientMetricsPrefix))

	out := buf.String()
	assert.Contains(t, out, "# TYPE lccs_client_requests_total counter")
	assert.Contains(t, out, `lccs_client_requests_total{code="200",method="GET"} 2`)
	assert.NotContains(t, out, "other_total")

	buf.Reset()
	require.NoError(t, WriteMetrics(&buf, reg, ""))
	assert.Contains(t, buf.String(), "other_total 1")
}
