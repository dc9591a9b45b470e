// Package instrument wires OpenTelemetry tracing, metrics, and logging, and
// carries the per-request correlation ID through contexts.
package instrument

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Instrumentation hands out tracers and meters for dependency injection.
type Instrumentation interface {
	Tracer(name string) trace.Tracer
	Meter(name string) metric.Meter
	Shutdown(ctx context.Context) error
}

// Config drives OpenTelemetry initialization.
type Config struct {
	// Enabled toggles the OTLP pipeline; when false a noop is returned.
	Enabled bool
	// ServiceName becomes the service.name resource attribute.
	ServiceName string
	// ServiceVersion becomes the service.version resource attribute.
	ServiceVersion string
	// Environment names the deployment environment.
	Environment string
	// OTLPEndpoint is the collector address for all three signals.
	OTLPEndpoint string
	// OTLPSecure enables TLS towards the collector.
	OTLPSecure bool
	// TraceSampleRatio is the parent-based sampling probability.
	TraceSampleRatio float64
	// MetricsInterval is the periodic metric export interval.
	MetricsInterval time.Duration
	// MaskFields lists log attribute names whose values are redacted.
	MaskFields []string
}

type otelInstrumentation struct {
	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
	logs    *sdklog.LoggerProvider
}

// New initializes the OTLP exporters and the global slog logger. When cfg is
// nil or disabled, a noop implementation is returned and logging falls back
// to stdout only.
func New(ctx context.Context, cfg *Config) (Instrumentation, error) {
	if cfg == nil || !cfg.Enabled {
		return NewNoop(), nil
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("env", cfg.Environment),
	))
	if err != nil {
		return nil, err
	}

	traceOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint)}
	metricOpts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint)}
	logOpts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.OTLPEndpoint)}
	if !cfg.OTLPSecure {
		traceOpts = append(traceOpts, otlptracegrpc.WithInsecure())
		metricOpts = append(metricOpts, otlpmetricgrpc.WithInsecure())
		logOpts = append(logOpts, otlploggrpc.WithInsecure())
	}

	traceExporter, err := otlptracegrpc.New(ctx, traceOpts...)
	if err != nil {
		return nil, err
	}
	metricExporter, err := otlpmetricgrpc.New(ctx, metricOpts...)
	if err != nil {
		return nil, err
	}
	logExporter, err := otlploggrpc.New(ctx, logOpts...)
	if err != nil {
		return nil, err
	}

	ratio := min(max(cfg.TraceSampleRatio, 0), 1)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithBatcher(traceExporter),
	)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
			metricExporter,
			sdkmetric.WithInterval(cfg.MetricsInterval),
		)),
	)

	lp := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)

	initLogging(cfg.ServiceName, lp, cfg.MaskFields)

	return &otelInstrumentation{traces: tp, metrics: mp, logs: lp}, nil
}

// Tracer returns a named tracer.
func (o *otelInstrumentation) Tracer(name string) trace.Tracer {
	return o.traces.Tracer(name)
}

// Meter returns a named meter.
func (o *otelInstrumentation) Meter(name string) metric.Meter {
	return o.metrics.Meter(name)
}

// Shutdown flushes and stops all three providers.
func (o *otelInstrumentation) Shutdown(ctx context.Context) error {
	return errors.Join(
		o.traces.Shutdown(ctx),
		o.metrics.Shutdown(ctx),
		o.logs.Shutdown(ctx),
	)
}

// NewNoop returns an implementation that records nothing. Used in tests and
// when instrumentation is disabled.
func NewNoop() Instrumentation {
	return &noopInstrumentation{
		traces:  tracenoop.NewTracerProvider(),
		metrics: metricnoop.NewMeterProvider(),
	}
}

type noopInstrumentation struct {
	traces  trace.TracerProvider
	metrics metric.MeterProvider
}

func (n *noopInstrumentation) Tracer(name string) trace.Tracer {
	return n.traces.Tracer(name)
}

func (n *noopInstrumentation) Meter(name string) metric.Meter {
	return n.metrics.Meter(name)
}

func (n *noopInstrumentation) Shutdown(context.Context) error {
	return nil
}
