package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"verbose":  zapcore.InfoLevel,
		"":         zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Fatalf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLoggerTo(&buf, normalizeLevel(" WARN "))

	log.Infow("recipe_saved", "id", "abc")
	log.Warnw("recipe_event_append_failed", "id", "abc")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "recipe_saved") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "recipe_event_append_failed") || !strings.Contains(out, "WARN") {
		t.Fatalf("expected warn line, got %q", out)
	}
}

func TestGetReturnsSingleton(t *testing.T) {
	a := Get(DebugLevel)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("Get should return the same instance")
	}
}
