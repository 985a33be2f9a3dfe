package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"showroom/internal/logging"
)

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewComponentLoggerNilBase(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "scene")
	// Must not panic and must stay silent.
	logger.Info("ignored")
}

func TestConsoleHandlerLiftsComponent(t *testing.T) {
	var buf bytes.Buffer
	handler := logging.NewConsoleHandler(&buf, slog.LevelInfo)
	logger := logging.NewComponentLogger(slog.New(handler), "fidelity")

	logger.Info("verdict cached",
		logging.String(logging.FieldAssetURL, "https://cdn.example/rose.glb"),
		logging.Float64("score", 97.5),
	)

	line := buf.String()
	if !strings.Contains(line, "[fidelity]") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "verdict cached") {
		t.Fatalf("expected message, got %q", line)
	}
	if !strings.Contains(line, "asset_url=https://cdn.example/rose.glb") {
		t.Fatalf("expected asset_url attribute, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should not repeat as key=value, got %q", line)
	}
}

func TestConsoleHandlerQuotesSpacedValues(t *testing.T) {
	var buf bytes.Buffer
	handler := logging.NewConsoleHandler(&buf, slog.LevelInfo)
	slog.New(handler).Info("placed", logging.String("name", "Love Hurts Tee"))

	if !strings.Contains(buf.String(), `name="Love Hurts Tee"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestNoopHandlerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger should report disabled at every level")
	}
}
