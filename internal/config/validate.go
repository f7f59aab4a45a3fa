package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validCacheBackends = map[string]bool{
	"redis": true, "sqlite": true, "none": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	if len(c.Index.Addresses) == 0 {
		errs = append(errs, "index.addresses: at least one address required")
	}
	for i, addr := range c.Index.Addresses {
		if addr == "" {
			errs = append(errs, fmt.Sprintf("index.addresses[%d]: must not be empty", i))
		}
	}

	if !validCacheBackends[c.Cache.Backend] {
		errs = append(errs, fmt.Sprintf("cache.backend: must be one of redis, sqlite, none; got %q", c.Cache.Backend))
	}
	if c.Cache.TTLSeconds < 0 {
		errs = append(errs, fmt.Sprintf("cache.ttl_seconds: must not be negative, got %d", c.Cache.TTLSeconds))
	}
	if c.Cache.Backend == "redis" && (c.Cache.Redis == nil || c.Cache.Redis.Addr == "") {
		errs = append(errs, "cache.redis.addr: required when backend is redis")
	}
	if c.Cache.Backend == "sqlite" && (c.Cache.SQLite == nil || c.Cache.SQLite.Path == "") {
		errs = append(errs, "cache.sqlite.path: required when backend is sqlite")
	}

	return errs
}
