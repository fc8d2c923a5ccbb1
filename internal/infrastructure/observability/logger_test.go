package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/noop"
)

func TestInitLogger_ProductionWritesServiceField(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "ratings-service", "production")

	log.Info().Str("placeId", "peru-cook").Msg("rating stored")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "ratings-service", line["service"])
	assert.Equal(t, "peru-cook", line["placeId"])
	assert.Equal(t, "rating stored", line["message"])
}

func TestLoggerFromContext_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "auth-service", "production")

	logger := LoggerFromContext(context.Background())
	logger.Info().Msg("no span")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.NotContains(t, line, "trace_id")
}

func TestRecordHelpers_NilMetricsAreNoops(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRequestMetric(context.Background(), nil, "GET", "/api/health", 200, 0)
		RecordStoreMetric(context.Background(), nil, "ratings", "list", 0)
		RecordCacheHit(context.Background(), nil, "k")
		RecordCacheMiss(context.Background(), nil, "k")
	})
}

func TestInitMetrics_WithGlobalNoopProvider(t *testing.T) {
	metrics, err := InitMetrics()
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		RecordRequestMetric(context.Background(), metrics, "GET", "/api/health", 200, 0)
	})
}

func TestOTelHook_KeepsLocalOutput(t *testing.T) {
	var buf bytes.Buffer
	initLogger(&buf, "notifications-service", "production")
	attachLogExport(noop.NewLoggerProvider().Logger("test"))

	assert.NotPanics(t, func() {
		log.Warn().Str("user_id", "u1").Msg("Failed to notify favorite")
	})
	assert.Contains(t, buf.String(), "Failed to notify favorite")
	assert.Equal(t, otellog.SeverityWarn, severityOf(zerolog.WarnLevel))
	assert.Equal(t, otellog.SeverityFatal, severityOf(zerolog.PanicLevel))
}
