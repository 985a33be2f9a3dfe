package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showroom/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Scene.FrameRate != 60 {
		t.Fatalf("expected default frame rate, got %d", cfg.Scene.FrameRate)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := `
[fidelity]
endpoint = "https://fidelity.example/api/"
request_timeout = 0

[scene]
frame_rate = 30
background_color = "#B76E79"

[logging]
level = "DEBUG"
format = "json"
output_paths = ["stdout", "  ", "./showroom.log"]
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Fidelity.Endpoint != "https://fidelity.example/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Fidelity.Endpoint)
	}
	if cfg.Fidelity.RequestTimeout != 10 {
		t.Fatalf("expected zero timeout replaced with default, got %d", cfg.Fidelity.RequestTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowered level, got %q", cfg.Logging.Level)
	}
	if cfg.Scene.FrameRate != 30 {
		t.Fatalf("expected frame rate 30, got %d", cfg.Scene.FrameRate)
	}
	if len(cfg.Logging.OutputPaths) != 2 {
		t.Fatalf("expected blank output path dropped, got %v", cfg.Logging.OutputPaths)
	}
	if cfg.Logging.OutputPaths[0] != "stdout" {
		t.Fatalf("expected stdout kept verbatim, got %q", cfg.Logging.OutputPaths[0])
	}
	if !filepath.IsAbs(cfg.Logging.OutputPaths[1]) {
		t.Fatalf("expected file output path made absolute, got %q", cfg.Logging.OutputPaths[1])
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     string
	}{
		{
			name:     "bad endpoint",
			contents: "[catalog]\nendpoint = \"not a url\"\n",
			want:     "catalog.endpoint",
		},
		{
			name:     "bad background",
			contents: "[scene]\nbackground_color = \"rose\"\n",
			want:     "background_color",
		},
		{
			name:     "bad format",
			contents: "[logging]\nformat = \"yaml\"\n",
			want:     "logging.format",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.contents), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when overwriting existing config")
	}
}
