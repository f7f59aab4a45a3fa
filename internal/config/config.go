// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Index   IndexConfig   `toml:"index"`
	Cache   CacheConfig   `toml:"cache"`
	Indexes IndexesConfig `toml:"indexes"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// IndexConfig configures the Elasticsearch connection.
type IndexConfig struct {
	Addresses []string `toml:"addresses"`
	Username  string   `toml:"username"`
	Password  string   `toml:"password"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend    string        `toml:"backend"` // "redis", "sqlite" or "none"
	TTLSeconds int           `toml:"ttl_seconds"`
	Redis      *RedisConfig  `toml:"redis"`
	SQLite     *SQLiteConfig `toml:"sqlite"`
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

// IndexesConfig names the index each document type lives in.
type IndexesConfig struct {
	Films   string `toml:"films"`
	Genres  string `toml:"genres"`
	Persons string `toml:"persons"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied and no file read.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if len(c.Index.Addresses) == 0 {
		c.Index.Addresses = []string{"http://localhost:9200"}
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "none"
	}
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = 300
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis == nil {
		c.Cache.Redis = &RedisConfig{Addr: "localhost:6379"}
	}
	if c.Cache.Backend == "sqlite" && c.Cache.SQLite == nil {
		c.Cache.SQLite = &SQLiteConfig{Path: "./data/cinedex-cache.db"}
	}
	if c.Indexes.Films == "" {
		c.Indexes.Films = "movies"
	}
	if c.Indexes.Genres == "" {
		c.Indexes.Genres = "genres"
	}
	if c.Indexes.Persons == "" {
		c.Indexes.Persons = "persons"
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
