package cli

import (
	"context"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/flowsketch/flowsketch/pkg/cache"
	"github.com/flowsketch/flowsketch/pkg/errors"
	"github.com/flowsketch/flowsketch/pkg/httputil"
	"github.com/flowsketch/flowsketch/pkg/store"
)

// Config holds settings loaded from ~/.config/flowsketch/config.toml.
// Flags override config values; config values override defaults.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Remote RemoteConfig `toml:"remote"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig selects the cache backend for built graphs and artifacts.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`
	// Dir overrides the cache directory for the file backend.
	Dir string `toml:"dir"`
	// RedisURL is the connection URL for the redis backend.
	RedisURL string `toml:"redis_url"`
}

// RemoteConfig configures the remote builder endpoint.
type RemoteConfig struct {
	Endpoint string `toml:"endpoint"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
	// Store is one of "memory" or "mongo".
	Store    string `toml:"store"`
	MongoURI string `toml:"mongo_uri"`
}

// defaultConfig returns the configuration used when no config file exists.
func defaultConfig() Config {
	return Config{
		Cache:  CacheConfig{Backend: "file"},
		Server: ServerConfig{Addr: "127.0.0.1:8080", Store: "memory"},
	}
}

// loadConfig reads the config file if present, falling back to defaults.
// A missing file is not an error; a malformed one is.
func loadConfig() (Config, error) {
	cfg := defaultConfig()
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config file %q", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config file %q", path)
	}
	return cfg, nil
}

// openCache constructs the cache backend named in cfg.
func openCache(ctx context.Context, cfg CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			base, err := cacheDir()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolving cache directory")
			}
			dir = base
		}
		return cache.NewFileCache(dir)
	case "redis":
		if cfg.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "cache backend %q requires redis_url", cfg.Backend)
		}
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	case "none":
		return cache.NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cfg.Backend)
	}
}

// openRemoteCache constructs the file cache for remote builder responses.
// It lives under the same directory as the graph cache but is always
// file-based, since remote responses are only fetched from the CLI.
// Returns nil when caching is disabled or the directory is unavailable;
// the remote client treats a nil cache as caching turned off.
func openRemoteCache(cfg CacheConfig) *httputil.Cache {
	if cfg.Backend == "none" {
		return nil
	}
	dir := cfg.Dir
	if dir == "" {
		base, err := cacheDir()
		if err != nil {
			return nil
		}
		dir = base
	}
	rc, err := httputil.NewCache(dir, cache.TTLRemote)
	if err != nil {
		return nil
	}
	return rc
}

// openStore constructs the store backend named in cfg.
func openStore(ctx context.Context, cfg ServerConfig) (store.Store, error) {
	switch cfg.Store {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "store backend %q requires mongo_uri", cfg.Store)
		}
		return store.NewMongoStore(ctx, cfg.MongoURI, appName)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Store)
	}
}
