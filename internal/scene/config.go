package scene

import (
	"strings"

	"showroom/internal/catalog"
)

// Config is the resolved per-session configuration. The registry translates
// the embedding contract into this form; everything here is concrete.
type Config struct {
	Collection      catalog.Collection
	Width           int
	Height          int
	FrameRate       int
	ParticleCount   int
	BackgroundColor string
	EnableAR        bool
}

// withDefaults fills unset fields from the collection preset.
func (c Config) withDefaults() Config {
	preset := catalog.PresetFor(c.Collection)
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 60
	}
	if c.ParticleCount <= 0 {
		c.ParticleCount = preset.ParticleCount
	}
	if strings.TrimSpace(c.BackgroundColor) == "" {
		c.BackgroundColor = preset.BackgroundColor
	}
	return c
}
