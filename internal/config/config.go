// Package config defines all configuration structures for the ChemVault
// resolution engine.  No I/O or parsing logic lives here — only plain data
// types and validation.
package config

import (
	"fmt"
	"time"

	"github.com/turtacn/ChemVault/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ToolkitConfig controls the local structure toolkit capability.
type ToolkitConfig struct {
	// Enabled selects the toolkit-backed parser and calculator.  When false
	// the engine runs entirely on the fallback estimator, as it would on a
	// host where the toolkit cannot be loaded.
	Enabled bool `mapstructure:"enabled"`
}

// SourceConfig holds the tunables shared by every external identity source.
type SourceConfig struct {
	// BaseURL is the root endpoint of the service.
	BaseURL string `mapstructure:"base_url"`

	// Timeout bounds one lookup against this source.  A timed-out source is
	// treated identically to a failed one and the chain moves on.
	Timeout time.Duration `mapstructure:"timeout"`

	// Enabled removes the source from the chain entirely when false.
	Enabled bool `mapstructure:"enabled"`
}

// PubChemConfig holds the primary structural database parameters.
type PubChemConfig struct {
	SourceConfig `mapstructure:",squash"`

	// RequestsPerSecond throttles outbound calls; PubChem's published limit
	// is five requests per second per client.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// CactusConfig holds the secondary name/identifier resolver parameters.
type CactusConfig struct {
	SourceConfig `mapstructure:",squash"`
}

// CacheConfig holds the optional resolver-cache parameters.  Caching lives
// outside the resolution engine proper; the engine only consults whatever
// cache the caller injects.
type CacheConfig struct {
	// Backend selects "memory", "redis", or "none".
	Backend string `mapstructure:"backend"`

	// TTL bounds how long a resolved identity is reused.
	TTL time.Duration `mapstructure:"ttl"`

	// CleanupInterval applies to the in-memory backend only.
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`

	// Redis connection parameters, used when Backend == "redis".
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	KeyPrefix     string `mapstructure:"key_prefix"`
}

// MetricsConfig controls Prometheus metric registration.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Config — the aggregate root
// ─────────────────────────────────────────────────────────────────────────────

// Config is the aggregate configuration for the engine and its CLI.
type Config struct {
	Toolkit ToolkitConfig     `mapstructure:"toolkit"`
	PubChem PubChemConfig     `mapstructure:"pubchem"`
	Cactus  CactusConfig      `mapstructure:"cactus"`
	Cache   CacheConfig       `mapstructure:"cache"`
	Metrics MetricsConfig     `mapstructure:"metrics"`
	Log     logging.LogConfig `mapstructure:"log"`
}

// Validate checks cross-field consistency.  It is called by the loader after
// defaults are applied, so zero values indicate a caller constructing Config
// by hand.
func (c *Config) Validate() error {
	if c.PubChem.Enabled && c.PubChem.BaseURL == "" {
		return fmt.Errorf("pubchem.base_url must be set when the source is enabled")
	}
	if c.Cactus.Enabled && c.Cactus.BaseURL == "" {
		return fmt.Errorf("cactus.base_url must be set when the source is enabled")
	}
	if c.PubChem.Timeout < 0 || c.Cactus.Timeout < 0 {
		return fmt.Errorf("source timeouts must not be negative")
	}
	if c.PubChem.RequestsPerSecond < 0 {
		return fmt.Errorf("pubchem.requests_per_second must not be negative")
	}
	switch c.Cache.Backend {
	case "", "none", "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be one of none|memory|redis, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return fmt.Errorf("cache.redis_addr must be set when cache.backend is redis")
	}
	return nil
}
