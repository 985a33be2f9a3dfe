package catalog_test

import (
	"testing"

	"showroom/internal/catalog"
)

func TestParseCollection(t *testing.T) {
	tests := []struct {
		input string
		want  catalog.Collection
	}{
		{"signature", catalog.Signature},
		{"Black-Rose", catalog.BlackRose},
		{"LOVE_HURTS", catalog.LoveHurts},
		{" showroom ", catalog.Showroom},
		{"love hurts", catalog.LoveHurts},
		{"runway", catalog.Runway},
	}
	for _, tc := range tests {
		got, err := catalog.ParseCollection(tc.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestParseCollectionRejectsUnknown(t *testing.T) {
	if _, err := catalog.ParseCollection("couture"); err == nil {
		t.Fatal("expected error for unknown collection")
	}
}

func TestPresetForCoversEveryCollection(t *testing.T) {
	for _, c := range catalog.Collections() {
		preset := catalog.PresetFor(c)
		if preset.BackgroundColor == "" {
			t.Fatalf("%s: missing background", c)
		}
		if len(preset.Lighting) != 4 {
			t.Fatalf("%s: expected four-light rig, got %d", c, len(preset.Lighting))
		}
		if preset.ParticleCount <= 0 {
			t.Fatalf("%s: expected positive particle count", c)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := catalog.BlackRose.DisplayName(); got != "Black Rose" {
		t.Fatalf("expected 'Black Rose', got %q", got)
	}
}
