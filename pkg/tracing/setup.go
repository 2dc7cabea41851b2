package tracing

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// SetupTracing initializes OpenTelemetry for the given service.
// Without an OTLP endpoint the global no-op provider is left in place.
func SetupTracing(ctx context.Context, serviceName string, logger *slog.Logger) (ShutdownFunc, error) {
	config := NewConfig(serviceName)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	if !config.Enabled() {
		logger.Debug("Tracing export disabled, no OTLP endpoint configured")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := newExporter(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	resourceAttrs := []attribute.KeyValue{
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
		semconv.DeploymentEnvironment(config.Environment),
		semconv.CloudProviderAWS,
		attribute.String("service.namespace", "pipenotify"),
	}
	if config.CloudRegion != "" {
		resourceAttrs = append(resourceAttrs, semconv.CloudRegion(config.CloudRegion))
	}
	if config.FunctionName != "" {
		resourceAttrs = append(resourceAttrs, semconv.FaaSName(config.FunctionName))
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(resourceAttrs...),
		resource.WithHost(),
		resource.WithProcess(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(
			sdktrace.TraceIDRatioBased(config.SamplingRatio),
		)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("TracerProvider initialized",
		slog.String("service", config.ServiceName),
		slog.String("exporter", config.TracesExporter),
		slog.String("endpoint", config.OTLPExporterEndpoint))
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, config *Config) (sdktrace.SpanExporter, error) {
	if config.TracesExporter == ExporterStdout {
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(config.OTLPExporterEndpoint)}
	if config.OTLPExporterInsecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	return otlptracegrpc.New(ctx, opts...)
}
