package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Mulraeng/Vim-doc-editor/internal/tracing"
)

func spanAttrs(s tracetest.SpanStub) map[string]string {
	m := make(map[string]string)
	for _, kv := range s.Attributes {
		m[string(kv.Key)] = kv.Value.Emit()
	}
	return m
}

func TestHandleKey_RecordsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	e, _ := newTestEngine(t, Config{Tracer: tp.Tracer("test")}, "abc")
	run(t, e, "dz")

	spans := exp.GetSpans()
	require.Len(t, spans, 2)
	for _, s := range spans {
		require.Equal(t, tracing.SpanHandleKey, s.Name)
	}

	first := spanAttrs(spans[0])
	require.Equal(t, "d", first[tracing.AttrKey])
	require.Equal(t, "NORMAL", first[tracing.AttrMode])
	require.Equal(t, "buffered", first[tracing.AttrOutcome])

	second := spanAttrs(spans[1])
	require.Equal(t, "ignored", second[tracing.AttrOutcome])
}

func TestHandleKey_SpanEventOnModeChange(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	e, _ := newTestEngine(t, Config{Tracer: tp.Tracer("test")}, "abc")
	run(t, e, "i")

	spans := exp.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "insert.before", spanAttrs(spans[0])[tracing.AttrCommand])
	require.Len(t, spans[0].Events, 1)
	require.Equal(t, tracing.EventModeChanged, spans[0].Events[0].Name)
	require.Contains(t, spans[0].Events[0].Attributes, attribute.String("to", "INSERT"))
}
