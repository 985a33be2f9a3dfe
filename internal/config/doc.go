// Package config loads and validates showroom's TOML configuration.
//
// Configuration is service-level: endpoints, timeouts, cache locations, and
// logging. Per-instance embedding options (collection, particle count,
// background) travel separately through registry.EmbedConfig so several
// scene instances can share one process configuration.
package config
