package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		out slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.out {
			t.Errorf("parseLevel(%q)=%v want %v", tt.in, got, tt.out)
		}
	}
}

func TestInitAndWithContext(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "debug", "json")
	if defaultLogger == nil {
		t.Fatalf("defaultLogger not initialized")
	}

	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID=%q", got)
	}
	WithContext(ctx).Info("dispatch started", "city", "colaba")

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("expected request id in output, got %s", buf.String())
	}

	Info("info message", "k", "v")
	Warn("warn message")
	Error("error message")
	Debug("debug message")
	if strings.Count(buf.String(), "\n") != 5 {
		t.Errorf("expected 5 log lines, got %q", buf.String())
	}
}

func TestWithContext_NoRequestID(t *testing.T) {
	Init("error", "text")
	if WithContext(context.Background()) == nil {
		t.Fatalf("WithContext returned nil")
	}
}
