package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// newOTLPExporter creates an OTLP/HTTP exporter. OTEL_EXPORTER_OTLP_ENDPOINT
// overrides the exporter's default endpoint.
func newOTLPExporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	var opts []otlptracehttp.Option
	if endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); endpoint != "" {
		opts = append(opts,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(), // collectors reached through the env var are plain HTTP
		)
	}
	return otlptracehttp.New(ctx, opts...)
}

// otlpRequested reports whether the environment asks for OTLP export.
func otlpRequested() bool {
	return os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != ""
}
