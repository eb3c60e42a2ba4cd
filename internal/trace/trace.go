package trace

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "insider-sentiment"

var (
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
	enabled        bool
)

// Config selects whether and where enrichment spans are exported.
// The zero value disables tracing.
type Config struct {
	Enabled bool
	Pretty  bool
	Version string
	Output  io.Writer // stderr when nil; stdout carries the run summary
}

// LoadConfigFromEnv reads LOG_TRACING_ENABLED and LOG_TRACING_PRETTY.
func LoadConfigFromEnv(version string) Config {
	return Config{
		Enabled: getEnv("LOG_TRACING_ENABLED", "false") == "true",
		Pretty:  getEnv("LOG_TRACING_PRETTY", "true") == "true",
		Version: version,
	}
}

// Init configures tracing from the environment.
func Init(version string) error {
	return InitWithConfig(LoadConfigFromEnv(version))
}

// InitWithConfig installs a stdout span exporter. On error tracing stays off
// and StartSpan hands back the parent span.
func InitWithConfig(cfg Config) error {
	enabled = false
	if !cfg.Enabled {
		return nil
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := []stdouttrace.Option{stdouttrace.WithWriter(out)}
	if cfg.Pretty {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return err
	}

	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	tracer = tracerProvider.Tracer(serviceName)
	enabled = true
	return nil
}

// Shutdown flushes pending spans and turns tracing off.
func Shutdown(ctx context.Context) error {
	enabled = false
	if tracerProvider == nil {
		return nil
	}
	tp := tracerProvider
	tracerProvider = nil
	return tp.Shutdown(ctx)
}

func StartSpan(ctx context.Context, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !enabled || tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, spanName, opts...)
}

func Enabled() bool {
	return enabled
}

// GetTraceFields returns the hex trace and span IDs of the span in ctx.
func GetTraceFields(ctx context.Context) (traceID, spanID string, ok bool) {
	if !enabled {
		return "", "", false
	}
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
