package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/store"
)

// isolate keeps tests away from the developer's own configuration.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server.addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.RequestTimeout != time.Minute {
		t.Errorf("server.request_timeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Store.Backend != BackendNone {
		t.Errorf("backends = %s/%s", cfg.Cache.Backend, cfg.Store.Backend)
	}
	if cfg.Defaults.Region != "us" || cfg.Defaults.Projection != "web_mercator" || cfg.Defaults.Aspect != "widescreen" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PINMAP_CACHE_BACKEND", "redis")
	t.Setenv("PINMAP_REDIS_ADDR", "cache:6380")
	t.Setenv("PINMAP_SERVER_REQUEST_TIMEOUT", "5s")
	t.Setenv("PINMAP_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Redis.Addr != "cache:6380" {
		t.Errorf("cache = %+v, redis = %+v", cfg.Cache, cfg.Redis)
	}
	if cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("request_timeout = %v", cfg.Server.RequestTimeout)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "pinmap.yaml")
	data := `
server:
  addr: ":9000"
store:
  backend: file
  dir: /tmp/plans
defaults:
  region: europe
  projection: robinson
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Store.Backend != BackendFile || cfg.Store.Dir != "/tmp/plans" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Defaults.Region != "europe" || cfg.Defaults.Projection != "robinson" {
		t.Errorf("defaults = %+v", cfg.Defaults)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("explicit missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:   ServerConfig{Addr: ":8080", RequestTimeout: time.Second, MaxUploadBytes: 1},
			Cache:    CacheConfig{Backend: BackendNone},
			Store:    StoreConfig{Backend: BackendNone},
			Defaults: DefaultsConfig{Region: "us", Projection: "robinson", Aspect: "standard"},
			Log:      LogConfig{Level: "info"},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"valid", func(*Config) {}, ""},
		{"no addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
		{"zero timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "request_timeout"},
		{"bad cache", func(c *Config) { c.Cache.Backend = "memcached" }, "cache.backend"},
		{"redis without addr", func(c *Config) { c.Cache.Backend = BackendRedis }, "redis.addr"},
		{"mongo without uri", func(c *Config) { c.Store.Backend = BackendMongo }, "mongo.uri"},
		{"unknown defaults start anyway", func(c *Config) {
			c.Defaults = DefaultsConfig{Region: "atlantis", Projection: "mollweide", Aspect: "21:9"}
		}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		defaults DefaultsConfig
		want     []string
	}{
		{"known", DefaultsConfig{Region: "us", Projection: "robinson", Aspect: "standard"}, nil},
		{"srid projection", DefaultsConfig{Region: "uk", Projection: "EPSG:8857", Aspect: "16:9"}, nil},
		{"unknown region", DefaultsConfig{Region: "atlantis", Projection: "robinson", Aspect: "standard"}, []string{"defaults.region"}},
		{"all unknown", DefaultsConfig{Region: "atlantis", Projection: "mollweide", Aspect: "21:9"},
			[]string{"defaults.region", "defaults.projection", "defaults.aspect"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Defaults: tt.defaults}
			got := cfg.Fallbacks()
			if len(got) != len(tt.want) {
				t.Fatalf("Fallbacks() = %v, want %d entries", got, len(tt.want))
			}
			for i, prefix := range tt.want {
				if !strings.HasPrefix(got[i], prefix) {
					t.Errorf("Fallbacks()[%d] = %q, want prefix %q", i, got[i], prefix)
				}
			}
		})
	}
}

func TestLoadUnknownDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("PINMAP_DEFAULTS_REGION", "atlantis")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want the fallback to be reported, not fatal", err)
	}
	if cfg.Defaults.Region != "atlantis" {
		t.Errorf("defaults.region = %q", cfg.Defaults.Region)
	}
	if got := cfg.Fallbacks(); len(got) != 1 {
		t.Errorf("Fallbacks() = %v, want 1", got)
	}
}

func TestOpenBackends(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	cfg := &Config{Cache: CacheConfig{Backend: BackendNone}, Store: StoreConfig{Backend: BackendNone}}
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("none backend = %T, want cache.NullCache", c)
	}
	if s, err := cfg.OpenStore(ctx); err != nil || s != nil {
		t.Errorf("none store = %v, %v; want nil", s, err)
	}

	dir := t.TempDir()
	cfg = &Config{Cache: CacheConfig{Backend: BackendFile, Dir: dir}, Store: StoreConfig{Backend: BackendFile, Dir: t.TempDir()}}
	c, err = cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok || fc.Dir() != dir {
		t.Errorf("file backend = %T", c)
	}
	s, err := cfg.OpenStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*store.FileStore); !ok {
		t.Errorf("file store = %T", s)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache/test")
	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/var/cache/test/pinmap" {
		t.Errorf("DefaultCacheDir() = %q", dir)
	}
}
