package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// endpoint is where one signal is exported to, grpc wins when both urls are set.
type endpoint struct {
	GrpcEndpoint string            `json:"grpc_endpoint"`
	HttpEndpoint string            `json:"http_endpoint"`
	Headers      map[string]string `json:"headers"`
}

func (e endpoint) protocol() string {
	if e.GrpcEndpoint != "" {
		return "grpc"
	}
	return "http"
}

func (e endpoint) url() string {
	if e.GrpcEndpoint != "" {
		return e.GrpcEndpoint
	}
	return e.HttpEndpoint
}

// config is the contents of telemetry.json5.
//
//	{
//	  otlp: {
//	    traces: { http_endpoint: "http://localhost:4318/v1/traces" },
//	    metrics: { grpc_endpoint: "http://localhost:4317" },
//	  },
//	  trace_sample_ratio: 0.25,
//	}
type config struct {
	Otlp struct {
		Traces  endpoint `json:"traces"`
		Metrics endpoint `json:"metrics"`
	} `json:"otlp"`
	// TraceSampleRatio of 0 keeps every trace.
	TraceSampleRatio float64 `json:"trace_sample_ratio"`
	// MetricIntervalSeconds of 0 means 30 seconds.
	MetricIntervalSeconds int `json:"metric_interval_seconds"`
}

func (c config) sampler() trace.Sampler {
	if c.TraceSampleRatio <= 0 || c.TraceSampleRatio >= 1 {
		return trace.AlwaysSample()
	}
	return trace.ParentBased(trace.TraceIDRatioBased(c.TraceSampleRatio))
}

func (c config) metricInterval() time.Duration {
	if c.MetricIntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.MetricIntervalSeconds) * time.Second
}

func newResource(serviceName string) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		),
	)
}

func newTraceProvider(ctx context.Context, r *resource.Resource, c config) (*trace.TracerProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	e := c.Otlp.Traces
	var (
		exporter trace.SpanExporter
		err      error
	)
	switch e.protocol() {
	case "grpc":
		exporter, err = otlptracegrpc.New(
			ctx,
			otlptracegrpc.WithEndpointURL(e.url()),
			otlptracegrpc.WithHeaders(e.Headers),
		)
	default:
		exporter, err = otlptracehttp.New(
			ctx,
			otlptracehttp.WithEndpointURL(e.url()),
			otlptracehttp.WithHeaders(e.Headers),
		)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "create %s trace exporter", e.protocol())
	}
	slog.InfoContext(ctx, "trace export initialized", "type", e.protocol(), "endpoint", e.url())

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(r),
		trace.WithSampler(c.sampler()),
	), nil
}

func newMetricProvider(ctx context.Context, r *resource.Resource, c config) (*metric.MeterProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	e := c.Otlp.Metrics
	var (
		exporter metric.Exporter
		err      error
	)
	switch e.protocol() {
	case "grpc":
		exporter, err = otlpmetricgrpc.New(
			ctx,
			otlpmetricgrpc.WithEndpointURL(e.url()),
			otlpmetricgrpc.WithHeaders(e.Headers),
		)
	default:
		exporter, err = otlpmetrichttp.New(
			ctx,
			otlpmetrichttp.WithEndpointURL(e.url()),
			otlpmetrichttp.WithHeaders(e.Headers),
		)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "create %s metric exporter", e.protocol())
	}
	slog.InfoContext(ctx, "metric export initialized", "type", e.protocol(), "endpoint", e.url())

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(c.metricInterval()))),
		metric.WithResource(r),
	), nil
}
