// Package tracing records OpenTelemetry spans around release mutations and
// exports them to a JSONL file or stderr.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter names.
const (
	ExporterNone   = "none"
	ExporterFile   = "file"
	ExporterStdout = "stdout"
)

// DefaultFilePath is where the file exporter writes when no path is set.
const DefaultFilePath = "traces.jsonl"

// DefaultServiceName identifies releasedesk in exported spans.
const DefaultServiceName = "releasedesk"

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active. When false, a no-op
	// tracer is returned.
	Enabled bool

	// Exporter is "none", "file" or "stdout". Empty means "file".
	Exporter string

	// FilePath is the output file for the "file" exporter.
	FilePath string

	// SampleRate is the fraction of traces kept, in (0, 1]. Zero means 1.
	SampleRate float64

	// ServiceName defaults to DefaultServiceName.
	ServiceName string

	// Writer receives "stdout" exporter output. Defaults to os.Stderr so
	// spans never land on the terminal the UI draws on.
	Writer io.Writer
}

// DefaultConfig returns tracing disabled, with the file exporter selected.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Exporter:    ExporterFile,
		FilePath:    DefaultFilePath,
		SampleRate:  1.0,
		ServiceName: DefaultServiceName,
	}
}

// Provider owns the tracer provider and hands out its tracer.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider builds a provider for cfg. When tracing is disabled the
// provider is a no-op with nothing to flush.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	}

	var exporter sdktrace.SpanExporter
	switch cfg.Exporter {
	case ExporterFile, "":
		path := cfg.FilePath
		if path == "" {
			path = DefaultFilePath
		}
		fe, err := NewFileExporter(path)
		if err != nil {
			return nil, fmt.Errorf("create file exporter: %w", err)
		}
		exporter = fe
	case ExporterStdout:
		w := cfg.Writer
		if w == nil {
			w = os.Stderr
		}
		se, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		exporter = se
	case ExporterNone:
		// Spans are still created, so ids are available, but go nowhere.
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
		enabled:  true,
	}, nil
}

// Tracer returns the tracer. It is safe to use when tracing is disabled.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
