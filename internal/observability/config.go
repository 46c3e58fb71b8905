package observability

import (
	"os"
	"strings"

	"github.com/shockerli/cvt"
	"github.com/smallbiznis/tradedesk/internal/config"
)

const (
	defaultServiceName      = "tradedesk"
	productionSamplingRatio = 0.1
)

// Config holds observability configuration derived from environment variables.
type Config struct {
	ServiceName string
	Environment string
	Version     string

	LogLevel  string
	LogFormat string

	OtelEnabled          bool
	OtelExporterEndpoint string
	OtelExporterProtocol string
	OtelSamplingRatio    float64
}

// LoadConfig layers the LOG_* and OTEL_* variables over the application
// config. Outside production every trace is sampled and logs default to the
// console encoder.
func LoadConfig(cfg config.Config) Config {
	out := Config{
		ServiceName:          firstNonEmpty(cfg.AppName, defaultServiceName),
		Environment:          firstNonEmpty(os.Getenv("DEPLOYMENT_ENV"), cfg.Environment),
		Version:              firstNonEmpty(os.Getenv("SERVICE_VERSION"), cfg.AppVersion),
		LogLevel:             lower(firstNonEmpty(os.Getenv("LOG_LEVEL"), "info")),
		OtelEnabled:          envFlag("OTEL_ENABLED"),
		OtelExporterEndpoint: firstNonEmpty(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"), cfg.OTLPEndpoint),
		OtelExporterProtocol: lower(firstNonEmpty(
			os.Getenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL"),
			os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL"),
			"grpc",
		)),
	}

	defaultFormat, defaultRatio := "console", 1.0
	if cfg.IsProduction() || strings.EqualFold(out.Environment, "production") {
		defaultFormat, defaultRatio = "json", productionSamplingRatio
	}
	out.LogFormat = lower(firstNonEmpty(os.Getenv("LOG_FORMAT"), defaultFormat))

	out.OtelSamplingRatio = defaultRatio
	if raw := strings.TrimSpace(os.Getenv("OTEL_SAMPLING_RATIO")); raw != "" {
		if ratio, err := cvt.Float64E(raw); err == nil {
			out.OtelSamplingRatio = ratio
		}
	}

	return out
}

// Debug turns on stack traces and verbose request logs.
func (c Config) Debug() bool {
	if lower(c.LogLevel) == "debug" {
		return true
	}
	switch lower(c.Environment) {
	case "dev", "development", "local", "test":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func lower(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func envFlag(key string) bool {
	switch lower(os.Getenv(key)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
