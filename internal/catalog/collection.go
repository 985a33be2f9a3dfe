package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"showroom/internal/render"
)

// Collection identifies one of the known experience collections.
type Collection string

const (
	Signature Collection = "signature"
	BlackRose Collection = "black-rose"
	LoveHurts Collection = "love-hurts"
	Showroom  Collection = "showroom"
	Runway    Collection = "runway"
)

// Collections lists every known collection in display order.
func Collections() []Collection {
	return []Collection{Signature, BlackRose, LoveHurts, Showroom, Runway}
}

// ParseCollection maps a user-supplied name onto the closed collection set.
func ParseCollection(value string) (Collection, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	switch Collection(normalized) {
	case Signature, BlackRose, LoveHurts, Showroom, Runway:
		return Collection(normalized), nil
	default:
		return "", fmt.Errorf("unknown collection %q (known: signature, black-rose, love-hurts, showroom, runway)", value)
	}
}

// DisplayName renders the collection name for user-facing output.
func (c Collection) DisplayName() string {
	return cases.Title(language.Und).String(strings.ReplaceAll(string(c), "-", " "))
}

// Preset bundles the staging defaults one collection implies.
type Preset struct {
	Intro           string
	BackgroundColor string
	AccentColor     string
	ParticleCount   int
	Lighting        []render.Light
}

// Brand palette.
const (
	colorRoseGold = "#B76E79"
	colorObsidian = "#1A1A1A"
	colorIvory    = "#FFFFFF"
	colorStudio   = "#F5F5F5"
)

func lightingRig(ambient, key, fill, rim float64) []render.Light {
	return []render.Light{
		{Role: render.LightAmbient, Intensity: ambient},
		{Role: render.LightKey, Intensity: key, Position: render.Vec3{X: 5, Y: 10, Z: 7.5}},
		{Role: render.LightFill, Intensity: fill, Position: render.Vec3{X: -5, Y: 0, Z: -5}},
		{Role: render.LightRim, Intensity: rim, Position: render.Vec3{X: 0, Y: 5, Z: -10}},
	}
}

// PresetFor returns the staging preset for a collection. The switch is
// exhaustive over the closed set; extending Collections requires a case here.
func PresetFor(c Collection) Preset {
	switch c {
	case Signature:
		return Preset{
			Intro:           "Refined essentials that form the heart of the house.",
			BackgroundColor: colorIvory,
			AccentColor:     colorRoseGold,
			ParticleCount:   100,
			Lighting:        lightingRig(0.4, 0.8, 0.3, 0.2),
		}
	case BlackRose:
		return Preset{
			Intro:           "Where darkness meets elegance.",
			BackgroundColor: colorObsidian,
			AccentColor:     colorRoseGold,
			ParticleCount:   250,
			Lighting:        lightingRig(0.2, 0.7, 0.2, 0.4),
		}
	case LoveHurts:
		return Preset{
			Intro:           "Emotional expression through couture.",
			BackgroundColor: colorObsidian,
			AccentColor:     colorRoseGold,
			ParticleCount:   200,
			Lighting:        lightingRig(0.3, 0.8, 0.3, 0.3),
		}
	case Showroom:
		return Preset{
			Intro:           "The full house, one floor.",
			BackgroundColor: colorStudio,
			AccentColor:     colorRoseGold,
			ParticleCount:   150,
			Lighting:        lightingRig(0.4, 0.8, 0.3, 0.2),
		}
	case Runway:
		return Preset{
			Intro:           "In motion, under lights.",
			BackgroundColor: colorObsidian,
			AccentColor:     colorIvory,
			ParticleCount:   300,
			Lighting:        lightingRig(0.3, 1.0, 0.4, 0.5),
		}
	default:
		// Unreachable for values produced by ParseCollection.
		return Preset{
			Intro:           "Premium SkyyRose fashion.",
			BackgroundColor: colorObsidian,
			AccentColor:     colorRoseGold,
			ParticleCount:   150,
			Lighting:        lightingRig(0.4, 0.8, 0.3, 0.2),
		}
	}
}
