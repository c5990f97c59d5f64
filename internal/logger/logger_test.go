package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestJSONLoggerWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelDebug)
	log.Info("plan accepted", "strategy", "strategy_x", "sram_bytes", 49152)

	out := buf.String()
	if !strings.Contains(out, `"msg":"plan accepted"`) {
		t.Fatalf("missing message: %s", out)
	}
	if !strings.Contains(out, `"strategy":"strategy_x"`) {
		t.Fatalf("missing attr: %s", out)
	}
}

func TestJSONLoggerLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelWarn)
	log.Debug("dropped")
	log.Info("dropped too")
	if buf.Len() != 0 {
		t.Fatalf("expected below-level records to be dropped: %s", buf.String())
	}
	log.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatal("error record missing")
	}
}

func TestWithAddsAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo).With("operator", "convolution")
	log.Info("searching")
	if !strings.Contains(buf.String(), `"operator":"convolution"`) {
		t.Fatalf("With attr missing: %s", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := JSON(&buf, slog.LevelInfo)
	ctx := WithContext(context.Background(), log)
	if FromContext(ctx) != log {
		t.Fatal("context did not return the attached logger")
	}
	if FromContext(context.Background()) == nil {
		t.Fatal("expected fallback logger")
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
