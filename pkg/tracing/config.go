package tracing

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"
)

// Config holds the tracing configuration
type Config struct {
	// Service configuration
	ServiceName    string
	ServiceVersion string
	Environment    string

	// OpenTelemetry configuration. An empty endpoint disables export.
	OTLPExporterEndpoint string
	OTLPExporterInsecure bool
	// TracesExporter selects "otlp" (default) or "stdout".
	TracesExporter string

	SamplingRatio float64

	// AWS specific
	CloudRegion  string
	FunctionName string
}

// NewConfig creates a new tracing configuration from environment variables
func NewConfig(serviceName string) *Config {
	return &Config{
		ServiceName:          getEnv("OTEL_SERVICE_NAME", serviceName),
		ServiceVersion:       getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		OTLPExporterEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTLPExporterInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		TracesExporter:       strings.ToLower(getEnv("OTEL_TRACES_EXPORTER", ExporterOTLP)),
		SamplingRatio:        getEnvFloat("OTEL_TRACE_SAMPLE_RATIO", 1.0),
		CloudRegion:          getEnv("AWS_REGION", ""),
		FunctionName:         getEnv("AWS_LAMBDA_FUNCTION_NAME", ""),
	}
}

// Enabled reports whether spans are exported anywhere.
func (c *Config) Enabled() bool {
	if c.TracesExporter == ExporterStdout {
		return true
	}
	return c.OTLPExporterEndpoint != ""
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return &ConfigError{Field: "ServiceName", Message: "service name cannot be empty"}
	}
	if c.TracesExporter != ExporterOTLP && c.TracesExporter != ExporterStdout {
		return &ConfigError{Field: "TracesExporter", Message: "unsupported exporter " + c.TracesExporter}
	}
	if c.SamplingRatio < 0 || c.SamplingRatio > 1 {
		return &ConfigError{Field: "SamplingRatio", Message: "sampling ratio must be between 0 and 1"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
