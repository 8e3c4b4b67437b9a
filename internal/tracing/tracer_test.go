package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{Exporter: "file"}, "test")
	require.NoError(t, err)
	require.False(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), SpanHandleKey)
	require.False(t, span.SpanContext().IsValid(), "no-op spans carry no context")
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProvider_FileExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces", "traces.jsonl")

	p, err := NewProvider(Config{Enabled: true, Exporter: "file", FilePath: path, SampleRate: 1}, "1.2.3")
	require.NoError(t, err)
	require.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), SpanHandleKey)
	require.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, p.Shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"name":"engine.handle_key"`)
	require.Contains(t, string(data), `"service.version":"1.2.3"`)
}

func TestExporters(t *testing.T) {
	require.Equal(t, []string{"file", "none", "otlp", "stdout"}, Exporters())
}

func TestNewProvider_Exporters(t *testing.T) {
	for _, exporter := range []string{"stdout", "none", ""} {
		t.Run(exporter, func(t *testing.T) {
			p, err := NewProvider(Config{Enabled: true, Exporter: exporter}, "test")
			require.NoError(t, err)
			require.True(t, p.Enabled())
			require.NoError(t, p.Shutdown(context.Background()))
		})
	}
}

func TestNewProvider_Errors(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "file"}, "test")
	require.ErrorContains(t, err, "creating file exporter: file_path required")

	_, err = NewProvider(Config{Enabled: true, Exporter: "zipkin"}, "test")
	require.ErrorContains(t, err, "unsupported exporter type: zipkin")
}
