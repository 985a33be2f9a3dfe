package config

const (
	defaultDataDir          = "~/.local/share/showroom"
	defaultLogDir           = "~/.local/share/showroom/logs"
	defaultFidelityEndpoint = "https://api.skyyrose.co/v1/fidelity/verify"
	defaultCatalogEndpoint  = "https://api.skyyrose.co/v1/experiences"
	defaultRequestTimeout   = 10
	defaultDownloadTimeout  = 60
	defaultAnalyticsTimeout = 5
	defaultFrameRate        = 60
	defaultParticleCount    = 150
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Fidelity: Fidelity{
			Endpoint:       defaultFidelityEndpoint,
			RequestTimeout: defaultRequestTimeout,
		},
		Catalog: Catalog{
			Endpoint:       defaultCatalogEndpoint,
			RequestTimeout: defaultRequestTimeout,
		},
		Assets: Assets{
			DownloadTimeout: defaultDownloadTimeout,
			DracoEnabled:    true,
		},
		Analytics: Analytics{
			RequestTimeout: defaultAnalyticsTimeout,
		},
		Scene: Scene{
			FrameRate:     defaultFrameRate,
			ParticleCount: defaultParticleCount,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
