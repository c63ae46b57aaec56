package config

import "time"

// CacheConfig defines settings for the response cache middleware applied to
// public menu/review reads and the admin statistics endpoints.  Only GET
// responses with a 200 status are cached.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration // lifetime of a cached response
	Prefix  string        // Redis key namespace
}

// LoadCacheConfig reads cache settings from the environment with defaults
// suitable for development.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled: envBool("CACHE_ENABLED", true),
		TTL:     envDur("CACHE_TTL", 30*time.Second),
		Prefix:  envStr("CACHE_PREFIX", "cache"),
	}
}
