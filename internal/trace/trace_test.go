package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestDisabledByDefault(t *testing.T) {
	t.Setenv("LOG_TRACING_ENABLED", "")
	if err := Init("test"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Enabled() {
		t.Fatal("tracing should be off unless LOG_TRACING_ENABLED=true")
	}

	parent := context.Background()
	ctx, span := StartSpan(parent, "enrich.Row")
	if ctx != parent || span.SpanContext().IsValid() {
		t.Error("disabled StartSpan should return the parent context and a no-op span")
	}
	if _, _, ok := GetTraceFields(ctx); ok {
		t.Error("no trace fields expected while disabled")
	}
}

func TestSpansExportedOnShutdown(t *testing.T) {
	var buf bytes.Buffer
	if err := InitWithConfig(Config{Enabled: true, Version: "1.2.3", Output: &buf}); err != nil {
		t.Fatalf("InitWithConfig: %v", err)
	}

	ctx, span := StartSpan(context.Background(), "enrich.Row")
	traceID, spanID, ok := GetTraceFields(ctx)
	if !ok || len(traceID) != 32 || len(spanID) != 16 {
		t.Errorf("GetTraceFields = %q, %q, %v", traceID, spanID, ok)
	}
	span.End()

	if err := Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	if Enabled() {
		t.Error("Shutdown should disable tracing")
	}

	out := buf.String()
	for _, want := range []string{`"enrich.Row"`, traceID, serviceName, "1.2.3"} {
		if !strings.Contains(out, want) {
			t.Errorf("exported spans missing %q:\n%s", want, out)
		}
	}
}
