package observability

import (
	"testing"

	"github.com/smallbiznis/tradedesk/internal/config"
	"github.com/stretchr/testify/assert"
)

func clearObservabilityEnv(t *testing.T) {
	for _, key := range []string{
		"LOG_LEVEL", "LOG_FORMAT", "DEPLOYMENT_ENV", "SERVICE_VERSION",
		"OTEL_ENABLED", "OTEL_SAMPLING_RATIO", "OTEL_EXPORTER_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_PROTOCOL", "OTEL_EXPORTER_OTLP_TRACES_PROTOCOL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigProductionDefaults(t *testing.T) {
	clearObservabilityEnv(t)

	cfg := LoadConfig(config.Config{AppName: "", Environment: "production", OTLPEndpoint: "collector:4317"})

	assert.Equal(t, "tradedesk", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "collector:4317", cfg.OtelExporterEndpoint)
	assert.Equal(t, "grpc", cfg.OtelExporterProtocol)
	assert.False(t, cfg.OtelEnabled)
	assert.Equal(t, 0.1, cfg.OtelSamplingRatio)
	assert.False(t, cfg.Debug())
}

func TestLoadConfigDevelopmentSamplesEverything(t *testing.T) {
	clearObservabilityEnv(t)
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "HTTP")

	cfg := LoadConfig(config.Config{AppName: "tradedesk", Environment: "development"})

	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 1.0, cfg.OtelSamplingRatio)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)
	assert.True(t, cfg.OtelEnabled)
	assert.True(t, cfg.Debug())
}

func TestLoadConfigSamplingOverride(t *testing.T) {
	clearObservabilityEnv(t)
	t.Setenv("OTEL_SAMPLING_RATIO", "0.25")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "http")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")

	cfg := LoadConfig(config.Config{Environment: "production"})

	assert.Equal(t, 0.25, cfg.OtelSamplingRatio)
	assert.Equal(t, "http", cfg.OtelExporterProtocol)

	t.Setenv("OTEL_SAMPLING_RATIO", "often")
	assert.Equal(t, 0.1, LoadConfig(config.Config{Environment: "production"}).OtelSamplingRatio)
}

func TestDebugInDevelopment(t *testing.T) {
	assert.True(t, Config{Environment: "development"}.Debug())
	assert.True(t, Config{Environment: "production", LogLevel: "debug"}.Debug())
}
