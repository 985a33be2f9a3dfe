package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validateEndpoint("fidelity.endpoint", c.Fidelity.Endpoint, true); err != nil {
		return err
	}
	if err := validateEndpoint("catalog.endpoint", c.Catalog.Endpoint, true); err != nil {
		return err
	}
	if err := validateEndpoint("analytics.endpoint", c.Analytics.Endpoint, false); err != nil {
		return err
	}
	if err := c.validateScene(); err != nil {
		return err
	}
	return c.validateLogging()
}

func validateEndpoint(field, value string, required bool) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		if required {
			return fmt.Errorf("%s must be set", field)
		}
		return nil
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL", field)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https", field)
	}
	return nil
}

func (c *Config) validateScene() error {
	if c.Scene.FrameRate > 240 {
		return errors.New("scene.frame_rate must be 240 or lower")
	}
	if c.Scene.ParticleCount > 10000 {
		return errors.New("scene.particle_count must be 10000 or lower")
	}
	if color := c.Scene.BackgroundColor; color != "" {
		if !strings.HasPrefix(color, "#") || (len(color) != 7 && len(color) != 4) {
			return fmt.Errorf("scene.background_color must be a hex color, got %q", color)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
}
