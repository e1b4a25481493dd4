// Package trace wires OpenTelemetry span export for the swipe menu's
// transitions.
package trace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"swipemenu/internal/config"
)

const tracerName = "swipemenu"

// Provider owns the tracer provider and whatever the exporter writes to.
type Provider struct {
	provider *sdktrace.TracerProvider // nil when disabled
	tracer   oteltrace.Tracer
	out      io.Closer
}

// Setup builds a provider for cfg. Exporter "otlp", or any exporter other
// than "stdout" when OTEL_EXPORTER_OTLP_ENDPOINT is set, exports over
// OTLP/HTTP. "stdout" writes JSON spans to cfg.File. Anything else is a no-op.
func Setup(ctx context.Context, cfg config.TraceConfig) (*Provider, error) {
	var (
		exporter sdktrace.SpanExporter
		out      io.Closer
		err      error
	)
	switch {
	case cfg.Exporter == "stdout":
		if cfg.File == "" {
			return nil, errors.New("trace.file is required for the stdout exporter")
		}
		f, ferr := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if ferr != nil {
			return nil, fmt.Errorf("open trace file: %w", ferr)
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(f))
		if err != nil {
			f.Close()
		}
		out = f
	case cfg.Exporter == "otlp" || otlpRequested():
		exporter, err = newOTLPExporter(ctx)
	default:
		return Disabled(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("create %s trace exporter: %w", cfg.Exporter, err)
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "swipemenu"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(tracerName),
		out:      out,
	}, nil
}

// Disabled returns a provider whose tracer records nothing.
func Disabled() *Provider {
	return &Provider{tracer: noop.NewTracerProvider().Tracer(tracerName)}
}

// Tracer returns the tracer handed to the swipe menu.
func (p *Provider) Tracer() oteltrace.Tracer { return p.tracer }

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool { return p.provider != nil }

// Shutdown flushes pending spans and closes the exporter's output.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	err := p.provider.Shutdown(ctx)
	if p.out != nil {
		err = errors.Join(err, p.out.Close())
	}
	return err
}
