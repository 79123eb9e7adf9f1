package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xraph/rotawatch"

// Tracer provides OpenTelemetry tracing for rotawatch. A nil *Tracer starts
// no-op spans.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a tracer from the global provider.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

func (t *Tracer) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if t == nil {
		// A span from an empty context is a no-op and never ends the caller's span.
		return ctx, trace.SpanFromContext(context.Background())
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// StartCheckSpan starts a span for one scheduler check.
func (t *Tracer) StartCheckSpan(ctx context.Context) (context.Context, trace.Span) {
	return t.start(ctx, "rotawatch.check")
}

// StartRunSpan starts a span for a pipeline run.
func (t *Tracer) StartRunSpan(ctx context.Context, runID, rotationID string) (context.Context, trace.Span) {
	return t.start(ctx, "rotawatch.run",
		attribute.String("rotawatch.run_id", runID),
		attribute.String("rotawatch.rotation_id", rotationID),
	)
}

// EndRunSpan ends a run span with its final status.
func (t *Tracer) EndRunSpan(span trace.Span, status string, err error) {
	span.SetAttributes(attribute.String("rotawatch.status", status))
	End(span, err)
}

// StartDeliverySpan starts a span for a webhook upload.
func (t *Tracer) StartDeliverySpan(ctx context.Context, deliveryID, target string) (context.Context, trace.Span) {
	return t.start(ctx, "rotawatch.delivery",
		attribute.String("rotawatch.delivery_id", deliveryID),
		attribute.String("rotawatch.target", target),
	)
}

// EndDeliverySpan ends a delivery span with result attributes.
func (t *Tracer) EndDeliverySpan(span trace.Span, statusCode, latencyMs int, errMsg string) {
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.Int("rotawatch.latency_ms", latencyMs),
	)
	if errMsg != "" {
		span.SetAttributes(attribute.String("rotawatch.error", errMsg))
		span.SetStatus(codes.Error, errMsg)
	}
	span.End()
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
