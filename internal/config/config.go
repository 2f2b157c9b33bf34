// Package config loads pinmap service configuration.
//
// Values come from, in increasing priority: built-in defaults, an optional
// pinmap.yaml (working directory or ~/.config/pinmap) and PINMAP_*
// environment variables, where PINMAP_REDIS_ADDR sets redis.addr.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "PINMAP"

// Backend names.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config holds all service configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Store    StoreConfig    `mapstructure:"store"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// MaxUploadBytes bounds request bodies.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

type CacheConfig struct {
	Backend string `mapstructure:"backend"`
	// Dir is the file cache directory. Empty uses the XDG cache home.
	Dir string `mapstructure:"dir"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

// DefaultsConfig are the layout settings used when a request names none.
type DefaultsConfig struct {
	Region     string `mapstructure:"region"`
	Projection string `mapstructure:"projection"`
	Aspect     string `mapstructure:"aspect"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration. A non-empty path must exist; otherwise
// pinmap.yaml is looked up and may be missing.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("pinmap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "pinmap"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("store.backend", BackendNone)
	v.SetDefault("store.dir", "")
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.database", "pinmap")
	v.SetDefault("defaults.region", string(region.Default))
	v.SetDefault("defaults.projection", string(projection.Default))
	v.SetDefault("defaults.aspect", string(layout.DefaultAspect))
	v.SetDefault("log.level", "info")
}

// Validate checks that configuration values are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, "server.max_upload_bytes must be positive")
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile:
	case BackendRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, "redis.addr is required for the redis cache")
		}
	default:
		errs = append(errs, fmt.Sprintf("cache.backend must be none, file or redis, got %q", c.Cache.Backend))
	}
	switch c.Store.Backend {
	case BackendNone, BackendFile:
	case BackendMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, "mongo.uri is required for the mongo store")
		}
	default:
		errs = append(errs, fmt.Sprintf("store.backend must be none, file or mongo, got %q", c.Store.Backend))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Fallbacks describes the defaults.* values that are not recognized.
// They never stop the server: requests using them fall back like any
// other unknown name and report the fallback as a warning.
func (c *Config) Fallbacks() []string {
	var out []string
	if _, err := region.ParseCode(c.Defaults.Region); err != nil {
		out = append(out, fmt.Sprintf("defaults.region: %s", errors.UserMessage(err)))
	}
	if _, err := projection.Lookup(c.Defaults.Projection); err != nil {
		if _, srErr := projection.FromSRID(c.Defaults.Projection); srErr != nil {
			out = append(out, fmt.Sprintf("defaults.projection: %s", errors.UserMessage(err)))
		}
	}
	if _, err := layout.ParseAspect(c.Defaults.Aspect); err != nil {
		out = append(out, fmt.Sprintf("defaults.aspect: %s", errors.UserMessage(err)))
	}
	return out
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
