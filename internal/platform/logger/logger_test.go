package logger

import (
	"bytes"
	"context"
	"testing"

	"lineload/internal/platform/testkit"
)

// Init is once-only per process, so all assertions share one buffer.
func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "test", Writer: &buf})

	t.Run("root fields", func(t *testing.T) {
		buf.Reset()
		Get().Info().Msg("hello")
		testkit.MustContain(t, buf.String(), `"hello"`)
		testkit.MustContain(t, buf.String(), `"service":"test"`)
	})

	t.Run("named component", func(t *testing.T) {
		buf.Reset()
		Named("solver").Info().Msg("named")
		testkit.MustContain(t, buf.String(), `"component":"solver"`)
	})

	t.Run("context enrichment", func(t *testing.T) {
		ctx := WithRequest(context.Background(), "req-123")
		ctx = WithRun(ctx, "run-456")
		buf.Reset()
		C(ctx).Info().Msg("scoped")
		testkit.MustContain(t, buf.String(), `"request_id":"req-123"`)
		testkit.MustContain(t, buf.String(), `"run_id":"run-456"`)
	})
}

func TestParseLevelFallsBackToDebug(t *testing.T) {
	if got := parseLevel("nonsense"); got.String() != "debug" {
		t.Fatalf("parseLevel = %s, want debug", got)
	}
}
