package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEndpoints()
	c.normalizeTimeouts()
	c.normalizeScene()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if cache := strings.TrimSpace(c.Fidelity.CachePath); cache != "" {
		if c.Fidelity.CachePath, err = expandPath(cache); err != nil {
			return fmt.Errorf("fidelity.cache_path: %w", err)
		}
	} else {
		c.Fidelity.CachePath = ""
	}
	return nil
}

func (c *Config) normalizeEndpoints() {
	c.Fidelity.Endpoint = strings.TrimRight(strings.TrimSpace(c.Fidelity.Endpoint), "/")
	c.Catalog.Endpoint = strings.TrimRight(strings.TrimSpace(c.Catalog.Endpoint), "/")
	c.Analytics.Endpoint = strings.TrimRight(strings.TrimSpace(c.Analytics.Endpoint), "/")
	if c.Fidelity.Endpoint == "" {
		c.Fidelity.Endpoint = defaultFidelityEndpoint
	}
	if c.Catalog.Endpoint == "" {
		c.Catalog.Endpoint = defaultCatalogEndpoint
	}
}

func (c *Config) normalizeTimeouts() {
	if c.Fidelity.RequestTimeout <= 0 {
		c.Fidelity.RequestTimeout = defaultRequestTimeout
	}
	if c.Catalog.RequestTimeout <= 0 {
		c.Catalog.RequestTimeout = defaultRequestTimeout
	}
	if c.Assets.DownloadTimeout <= 0 {
		c.Assets.DownloadTimeout = defaultDownloadTimeout
	}
	if c.Analytics.RequestTimeout <= 0 {
		c.Analytics.RequestTimeout = defaultAnalyticsTimeout
	}
}

func (c *Config) normalizeScene() {
	if c.Scene.FrameRate <= 0 {
		c.Scene.FrameRate = defaultFrameRate
	}
	if c.Scene.ParticleCount < 0 {
		c.Scene.ParticleCount = 0
	}
	// Empty background means each collection's preset background applies.
	c.Scene.BackgroundColor = strings.TrimSpace(c.Scene.BackgroundColor)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	paths := c.Logging.OutputPaths[:0]
	for _, raw := range c.Logging.OutputPaths {
		p := strings.TrimSpace(raw)
		switch p {
		case "":
			continue
		case "stdout", "stderr":
		default:
			var err error
			if p, err = expandPath(p); err != nil {
				return fmt.Errorf("logging.output_paths: %w", err)
			}
		}
		paths = append(paths, p)
	}
	c.Logging.OutputPaths = paths
	return nil
}
