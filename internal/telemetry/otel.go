// Package telemetry sets up OpenTelemetry tracing and metrics.
package telemetry

import (
	"context"
	"errors"

	"github.com/joeshaw/envdecode"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the application's tracer and meter.
const InstrumentationName = "recipedia"

// OtelConfig is read from the standard OTEL_* variables.
type OtelConfig struct {
	Endpoint       string `env:"OTEL_EXPORTER_OTLP_ENDPOINT,default=localhost:4317"`
	ServiceVersion string `env:"OTEL_SERVICE_VERSION,default=0.1.0"`
	ServiceName    string `env:"OTEL_SERVICE_NAME,default=recipedia"`
	DeployEnv      string `env:"OTEL_DEPLOY_ENV,default=development"`
}

// Shutdown flushes and stops the providers.
type Shutdown func(ctx context.Context) error

// Providers holds the tracer and meter the application instruments with.
type Providers struct {
	Tracer   trace.Tracer
	Meter    metric.Meter
	Shutdown Shutdown
}

// Noop returns providers that record nothing.
func Noop() Providers {
	return Providers{
		Tracer:   tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		Meter:    metricnoop.NewMeterProvider().Meter(InstrumentationName),
		Shutdown: func(context.Context) error { return nil },
	}
}

// Init returns no-op providers unless enabled, in which case it configures
// OTLP gRPC exporters for traces and metrics and registers them globally.
func Init(ctx context.Context, enabled bool) (Providers, error) {
	if !enabled {
		return Noop(), nil
	}

	var cfg OtelConfig
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Providers{}, err
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.DeployEnv),
	)

	traceExporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(otlptracegrpc.WithEndpoint(cfg.Endpoint)))
	if err != nil {
		return Providers{}, err
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(cfg.Endpoint))
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		return Providers{}, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	shutdown := func(ctx context.Context) error {
		err := errors.Join(
			tracerProvider.Shutdown(ctx),
			meterProvider.Shutdown(ctx),
		)
		if err != nil && err.Error() == "gRPC exporter is shutdown" {
			return nil
		}
		return err
	}

	return Providers{
		Tracer:   tracerProvider.Tracer(InstrumentationName),
		Meter:    meterProvider.Meter(InstrumentationName),
		Shutdown: shutdown,
	}, nil
}
