package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/store"
)

// CacheDir returns the file cache directory: cache.dir, else
// $XDG_CACHE_HOME/pinmap, else ~/.cache/pinmap.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultCacheDir returns the XDG cache directory for pinmap.
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, "pinmap"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "pinmap"), nil
}

// OpenCache builds the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendRedis:
		return cache.NewRedisCache(ctx, c.Redis.Addr)
	case BackendFile:
		dir, err := c.CacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	}
	return cache.NewNullCache(), nil
}

// OpenStore builds the configured plan store. It returns nil when plans
// are not archived.
func (c *Config) OpenStore(ctx context.Context) (store.Store, error) {
	switch c.Store.Backend {
	case BackendFile:
		return store.NewFileStore(c.Store.Dir)
	case BackendMongo:
		return store.NewMongoStore(ctx, c.Mongo.URI, c.Mongo.Database)
	}
	return nil, nil
}
