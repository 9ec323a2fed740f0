package telemetry

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/drivefit/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracing holds the tracer used for request spans
type Tracing struct {
	Tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// InitTracing configures OpenTelemetry. When tracing is disabled the global
// no-op provider is used. With tracing enabled and no endpoint, spans are
// recorded but not exported.
func InitTracing(ctx context.Context, cfg config.TracingConfig, version string) (*Tracing, error) {
	name := cfg.ServiceName
	if name == "" {
		name = config.DefaultServiceName
	}
	if !cfg.Enabled {
		return &Tracing{Tracer: otel.Tracer(name)}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", name),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		exporterOpts := []otlptracehttp.Option{}
		if strings.HasPrefix(endpoint, "http://") {
			exporterOpts = append(exporterOpts, otlptracehttp.WithInsecure())
		}
		endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpoint(endpoint))

		exporter, err := otlptracehttp.New(ctx, exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	return &Tracing{Tracer: tp.Tracer(name), provider: tp}, nil
}

// Shutdown flushes pending spans
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
