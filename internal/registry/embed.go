package registry

import (
	"strings"

	"showroom/internal/catalog"
	"showroom/internal/config"
	"showroom/internal/scene"
)

// EmbedConfig is the raw option set a host page supplies. Every field is
// optional; unset fields fall back to the collection preset.
type EmbedConfig struct {
	Collection         string `json:"collection"`
	Width              int    `json:"width"`
	Height             int    `json:"height"`
	ParticleCount      int    `json:"particleCount"`
	BackgroundColor    string `json:"backgroundColor"`
	EnableFullscreen   bool   `json:"enableFullscreen"`
	EnableProductCards bool   `json:"enableProductCards"`
	EnableAR           bool   `json:"enableAR"`
}

// sceneConfig resolves the embed options into concrete scene configuration,
// layering process-wide scene defaults under the per-embed overrides. An
// absent collection means the full showroom.
func (e EmbedConfig) sceneConfig(defaults config.Scene) (scene.Config, error) {
	name := strings.TrimSpace(e.Collection)
	collection := catalog.Showroom
	if name != "" {
		parsed, err := catalog.ParseCollection(name)
		if err != nil {
			return scene.Config{}, err
		}
		collection = parsed
	}

	particles := e.ParticleCount
	if particles <= 0 {
		particles = defaults.ParticleCount
	}
	background := strings.TrimSpace(e.BackgroundColor)
	if background == "" {
		background = defaults.BackgroundColor
	}

	return scene.Config{
		Collection:      collection,
		Width:           e.Width,
		Height:          e.Height,
		FrameRate:       defaults.FrameRate,
		ParticleCount:   particles,
		BackgroundColor: background,
		EnableAR:        e.EnableAR,
	}, nil
}
