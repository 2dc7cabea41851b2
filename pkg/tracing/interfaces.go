package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracerInterface defines the methods for tracing
type TracerInterface interface {
	StartServerSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
	StartClientSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span)
	RecordError(span trace.Span, err error)
	AddAttributes(span trace.Span, attrs ...attribute.KeyValue)
	AddMessagingAttributes(span trace.Span, system, destination, operation string)
	AddHTTPClientAttributes(span trace.Span, method, host string, statusCode int)
	AddKafkaAttributes(span trace.Span, topic, operation string, partition int32, offset int64)
}

// ConfigInterface defines the methods for configuration
type ConfigInterface interface {
	Validate() error
}

var (
	_ TracerInterface = (*Tracer)(nil)
	_ ConfigInterface = (*Config)(nil)
)
