// Package config loads server configuration from a TOML file.
//
// All fields have working defaults; a missing config file is not an
// error. Cache TTL and capacity are deliberately absent here: they are
// fixed design constants in pkg/cache.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backends selectable in the config file.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config holds everything the serve command needs.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `toml:"listen"`

	Registry Registry `toml:"registry"`
	Cache    Cache    `toml:"cache"`
}

// Registry configures the outbound Sunbiz client.
type Registry struct {
	// BaseURL is the registry site root. Mostly useful for tests.
	BaseURL string `toml:"base_url"`

	// Timeout bounds each outbound request.
	Timeout Duration `toml:"timeout"`
}

// Cache selects the result-cache backend.
type Cache struct {
	// Backend is one of "memory", "redis", or "none".
	Backend string `toml:"backend"`

	// RedisAddr is the host:port of the redis server, for the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen: ":8080",
		Registry: Registry{
			BaseURL: "https://search.sunbiz.org",
			Timeout: Duration(10 * time.Second),
		},
		Cache: Cache{
			Backend:   BackendMemory,
			RedisAddr: "localhost:6379",
		},
	}
}

// Load reads path on top of the defaults. An empty path returns the
// defaults unchanged; a missing file is an error only when a path was
// explicitly given.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the server cannot act on.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.Registry.BaseURL == "" {
		return fmt.Errorf("registry base_url is empty")
	}
	return nil
}

// Duration is a time.Duration that decodes from TOML strings like "10s".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
