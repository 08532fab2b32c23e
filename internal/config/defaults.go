package config

import "time"

// Default endpoints and tunables.  Source timeouts default to 12 seconds,
// inside the 10–15 second window that keeps one unresponsive service from
// stalling the whole chain.
const (
	DefaultPubChemBaseURL = "https://pubchem.ncbi.nlm.nih.gov/rest/pug"
	DefaultCactusBaseURL  = "https://cactus.nci.nih.gov/chemical/structure"

	DefaultSourceTimeout = 12 * time.Second
	DefaultPubChemRPS    = 5.0
	DefaultPubChemBurst  = 5

	DefaultCacheTTL             = 24 * time.Hour
	DefaultCacheCleanupInterval = 10 * time.Minute
	DefaultCacheKeyPrefix       = "chemvault:identity:"

	DefaultMetricsNamespace = "chemvault"
)

// ApplyDefaults fills every unset field of cfg in place.  Boolean Enabled
// flags are left alone: an explicit false in the file must win, and the
// loader pre-seeds them true via viper defaults.
func ApplyDefaults(cfg *Config) {
	if cfg.PubChem.BaseURL == "" {
		cfg.PubChem.BaseURL = DefaultPubChemBaseURL
	}
	if cfg.PubChem.Timeout == 0 {
		cfg.PubChem.Timeout = DefaultSourceTimeout
	}
	if cfg.PubChem.RequestsPerSecond == 0 {
		cfg.PubChem.RequestsPerSecond = DefaultPubChemRPS
	}
	if cfg.PubChem.Burst == 0 {
		cfg.PubChem.Burst = DefaultPubChemBurst
	}

	if cfg.Cactus.BaseURL == "" {
		cfg.Cactus.BaseURL = DefaultCactusBaseURL
	}
	if cfg.Cactus.Timeout == 0 {
		cfg.Cactus.Timeout = DefaultSourceTimeout
	}

	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "none"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = DefaultCacheTTL
	}
	if cfg.Cache.CleanupInterval == 0 {
		cfg.Cache.CleanupInterval = DefaultCacheCleanupInterval
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = DefaultCacheKeyPrefix
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
}
