package ar

import (
	"strings"
	"sync"

	"showroom/internal/catalog"
)

// Mode is the viewer chosen for a session.
type Mode string

const (
	// ModeNative hands asset URLs to the platform AR viewer.
	ModeNative Mode = "native"
	// ModeEmbedded keeps products in the engine's own 3D viewer.
	ModeEmbedded Mode = "embedded"
)

// Probe reports whether a platform-native AR viewer is available.
type Probe func() bool

// DefaultProbe reports no native viewer; the embedded viewer is the baseline.
func DefaultProbe() bool { return false }

// Handoff holds the per-session viewer decision.
type Handoff struct {
	probe Probe
	once  sync.Once
	mode  Mode
}

// NewHandoff builds a hand-off with the given probe; nil uses DefaultProbe.
func NewHandoff(probe Probe) *Handoff {
	if probe == nil {
		probe = DefaultProbe
	}
	return &Handoff{probe: probe}
}

// Mode returns the session's viewer, probing on first call only.
func (h *Handoff) Mode() Mode {
	h.once.Do(func() {
		if h.probe() {
			h.mode = ModeNative
		} else {
			h.mode = ModeEmbedded
		}
	})
	return h.mode
}

// LaunchURL returns the asset URL to hand to the native viewer, or ok=false
// when the session uses the embedded viewer or the reference has no model.
func (h *Handoff) LaunchURL(ref catalog.AssetReference) (string, bool) {
	if h.Mode() != ModeNative {
		return "", false
	}
	url := strings.TrimSpace(ref.ModelURL)
	if url == "" {
		return "", false
	}
	return url, true
}
