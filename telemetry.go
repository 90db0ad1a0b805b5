package polyglot

import (
	"context"
	"errors"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// tracer is the package-level tracer used by all instrumented code.
// Initialized to a noop tracer so library consumers can call RunSync
// without InitTelemetry. When InitTelemetry is called, this is replaced.
var tracer trace.Tracer = noop.NewTracerProvider().Tracer("polyglot")

var (
	translationsCounter metric.Int64Counter
	prunedCounter       metric.Int64Counter
)

func init() {
	setMeter(metricnoop.NewMeterProvider().Meter("polyglot"))
}

// setMeter (re)creates the instruments on m.
func setMeter(m metric.Meter) {
	translationsCounter, _ = m.Int64Counter("polyglot.translations",
		metric.WithDescription("Strings translated into a destination locale"))
	prunedCounter, _ = m.Int64Counter("polyglot.keys_pruned",
		metric.WithDescription("Stale keys deleted from a locale file"))
}

func recordTranslation(ctx context.Context, provider, lang string) {
	translationsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("lang", lang),
	))
}

func recordPruned(ctx context.Context, lang string, n int) {
	if n == 0 {
		return
	}
	prunedCounter.Add(ctx, int64(n), metric.WithAttributes(attribute.String("lang", lang)))
}

// InitTelemetry sets up the OpenTelemetry tracer and meter providers.
// If OTEL_EXPORTER_OTLP_ENDPOINT is set, it creates OTLP HTTP exporters.
// Otherwise the noop providers stay in place.
// Returns a shutdown function that flushes and closes the exporters.
func InitTelemetry(serviceName, ver string) func(context.Context) error {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return func(context.Context) error { return nil }
	}

	res, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ver),
		),
	)

	var shutdowns []func(context.Context) error

	// Exporter creation failures keep the noop providers so the CLI is not blocked.
	if exp, err := otlptracehttp.New(context.Background()); err == nil {
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(serviceName)
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	if exp, err := otlpmetrichttp.New(context.Background()); err == nil {
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(mp)
		setMeter(mp.Meter(serviceName))
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}
}
