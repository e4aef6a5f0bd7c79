package ccraster

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger must be disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	Logger().Debug("test message", "key", "value")
	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("log output missing message: %q", buf.String())
	}

	// Passing nil restores the silent default.
	SetLogger(nil)
	buf.Reset()
	Logger().Error("should not appear")
	if buf.Len() != 0 {
		t.Errorf("nil logger still wrote output: %q", buf.String())
	}
}

func TestPassConfigLogsSelection(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	if _, err := NewPassConfig(PrimitiveTriangles, WindCrossProduct, StaticCaps{PrimitiveRestart: true}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "pass configured") || !strings.Contains(out, "StripWithRestart") {
		t.Errorf("configuration was not logged: %q", out)
	}
}
