package telemetry

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/trace"
)

var (
	tracerProvider *trace.TracerProvider
	meterProvider  *metric.MeterProvider
)

// Setup installs global trace and meter providers exporting to the endpoints
// in `c`. A signal without an endpoint is left on the otel no-op provider.
func Setup(ctx context.Context, serviceName string, c config) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return errors.Wrap(err, "create resource")
	}

	if c.Otlp.Traces.url() != "" {
		tp, err := newTraceProvider(ctx, r, c)
		if err != nil {
			return err
		}
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})
		tracerProvider = tp
	}

	if c.Otlp.Metrics.url() != "" {
		mp, err := newMetricProvider(ctx, r, c)
		if err != nil {
			return err
		}
		otel.SetMeterProvider(mp)
		meterProvider = mp
	}

	return nil
}

// Shutdown flushes and stops whatever Setup installed.
func Shutdown(ctx context.Context) error {
	var err error
	if tracerProvider != nil {
		err = errors.CombineErrors(err, errors.Wrap(tracerProvider.Shutdown(ctx), "shutdown tracer provider"))
	}
	if meterProvider != nil {
		err = errors.CombineErrors(err, errors.Wrap(meterProvider.Shutdown(ctx), "shutdown meter provider"))
	}
	return err
}
