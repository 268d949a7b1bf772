// internal/common/observability/observability.go
package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"startup-analyst/internal/common/logger"
)

type Observability struct {
	meterProvider    *metric.MeterProvider
	tracerProvider   *sdktrace.TracerProvider
	meter            otelmetric.Meter
	tracer           trace.Tracer
	analysisCounter  otelmetric.Int64Counter
	analysisDuration otelmetric.Float64Histogram
}

// New wires the otel meter to the prometheus exporter and sets up an SDK tracer.
// A failing exporter leaves the meter side disabled; spans still work.
func New(serviceName string, log logger.Logger) *Observability {
	tp := sdktrace.NewTracerProvider()
	o := &Observability{
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
	}

	exporter, err := prometheus.New()
	if err != nil {
		log.Warn("failed to create prometheus exporter", map[string]interface{}{"error": err.Error()})
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	analysisCounter, _ := meter.Int64Counter(
		"analyses.processed",
		otelmetric.WithDescription("Number of analyses processed"),
	)

	analysisDuration, _ := meter.Float64Histogram(
		"analyses.duration",
		otelmetric.WithDescription("Analysis pipeline duration"),
		otelmetric.WithUnit("ms"),
	)

	o.meterProvider = provider
	o.meter = meter
	o.analysisCounter = analysisCounter
	o.analysisDuration = analysisDuration
	return o
}

// StartSpan opens a span named after a pipeline phase or agent slot.
// Safe on a nil receiver.
func (o *Observability) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := noop.NewTracerProvider().Tracer("")
	if o != nil && o.tracer != nil {
		tracer = o.tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func (o *Observability) RecordAnalysisProcessed(ctx context.Context, status string) {
	if o != nil && o.analysisCounter != nil {
		o.analysisCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordAnalysisDuration(ctx context.Context, duration time.Duration, status string) {
	if o != nil && o.analysisDuration != nil {
		o.analysisDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		_ = o.meterProvider.Shutdown(ctx)
	}
	if o.tracerProvider != nil {
		_ = o.tracerProvider.Shutdown(ctx)
	}
}
