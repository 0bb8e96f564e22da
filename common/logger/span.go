package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "pulse-cli"

// SpanContext pairs a span with the context that carries it.
type SpanContext struct {
	ctx  context.Context
	span trace.Span
}

// StartSpan starts a child span of ctx. The run id, service and command from
// the context's LogFields are copied onto the span so traces and logs of one
// invocation can be joined.
//
//	sc := logger.StartSpan(ctx, "transport.jira.request")
//	defer sc.End()
//	ctx = sc.Context()
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) *SpanContext {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name, opts...)
	span.SetAttributes(fieldAttributes(GetLogFields(ctx))...)
	return &SpanContext{ctx: ctx, span: span}
}

func fieldAttributes(f LogFields) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if f.RunID != nil {
		attrs = append(attrs, attribute.Int64("pulse.run_id", *f.RunID))
	}
	if f.Service != nil {
		attrs = append(attrs, attribute.String("pulse.service", *f.Service))
	}
	if f.Command != nil {
		attrs = append(attrs, attribute.String("pulse.command", *f.Command))
	}
	return attrs
}

func (sc *SpanContext) Context() context.Context {
	return sc.ctx
}

// End is safe to call more than once.
func (sc *SpanContext) End() {
	if sc.span != nil {
		sc.span.End()
	}
}

// RecordError records err and marks the span failed.
func (sc *SpanContext) RecordError(err error) {
	if sc.span != nil && err != nil {
		sc.span.RecordError(err)
		sc.span.SetStatus(codes.Error, err.Error())
	}
}

func (sc *SpanContext) SetAttributes(attrs ...attribute.KeyValue) {
	if sc.span != nil {
		sc.span.SetAttributes(attrs...)
	}
}
