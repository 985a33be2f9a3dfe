package ar_test

import (
	"testing"

	"showroom/internal/ar"
	"showroom/internal/catalog"
)

func TestDecisionMadeOncePerSession(t *testing.T) {
	available := true
	calls := 0
	handoff := ar.NewHandoff(func() bool {
		calls++
		return available
	})

	if handoff.Mode() != ar.ModeNative {
		t.Fatal("expected native mode while probe reports available")
	}

	// Availability changing mid-session must not flip the decision.
	available = false
	if handoff.Mode() != ar.ModeNative {
		t.Fatal("decision must not be revisited")
	}
	if calls != 1 {
		t.Fatalf("probe should run once, ran %d times", calls)
	}
}

func TestDefaultProbeFallsBackToEmbedded(t *testing.T) {
	handoff := ar.NewHandoff(nil)
	if handoff.Mode() != ar.ModeEmbedded {
		t.Fatal("default probe should choose the embedded viewer")
	}
	if _, ok := handoff.LaunchURL(catalog.AssetReference{ModelURL: "https://cdn.example/m.usdz"}); ok {
		t.Fatal("embedded sessions must not hand off URLs")
	}
}

func TestLaunchURL(t *testing.T) {
	handoff := ar.NewHandoff(func() bool { return true })

	url, ok := handoff.LaunchURL(catalog.AssetReference{ModelURL: " https://cdn.example/m.usdz "})
	if !ok || url != "https://cdn.example/m.usdz" {
		t.Fatalf("expected trimmed launch URL, got %q ok=%v", url, ok)
	}

	if _, ok := handoff.LaunchURL(catalog.AssetReference{}); ok {
		t.Fatal("missing model URL must not hand off")
	}
}
