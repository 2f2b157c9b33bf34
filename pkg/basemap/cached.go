package basemap

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pinmap/pkg/cache"
	"github.com/matzehuels/pinmap/pkg/observability"
	"github.com/matzehuels/pinmap/pkg/projection"
	"github.com/matzehuels/pinmap/pkg/region"
)

// keyed is implemented by generators whose settings change their output.
type keyed interface {
	KeyOpts() cache.BaseMapKeyOpts
}

// Cached serves images from a cache and falls back to the wrapped
// generator on a miss. Cache failures are logged and never fail a call.
type Cached struct {
	gen    Generator
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
	// refresh bypasses cache reads; fresh images are still written.
	refresh bool
}

// NewCached wraps gen. A nil cache disables caching; a nil keyer uses the
// default one.
func NewCached(gen Generator, c cache.Cache, keyer cache.Keyer) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{gen: gen, cache: c, keyer: keyer, logger: log.New(io.Discard)}
}

// WithLogger sets the logger used for cache warnings.
func (c *Cached) WithLogger(l *log.Logger) *Cached {
	if l != nil {
		c.logger = l
	}
	return c
}

// Refreshed returns a copy of c that regenerates every image and
// overwrites the cached entry. c itself is unchanged, so a shared Cached
// can serve refresh and normal calls at the same time.
func (c *Cached) Refreshed() *Cached {
	cp := *c
	cp.refresh = true
	return &cp
}

// Key returns the cache key for an area under p.
func (c *Cached) Key(area region.Area, p projection.Projection) string {
	var opts cache.BaseMapKeyOpts
	if k, ok := c.gen.(keyed); ok {
		opts = k.KeyOpts()
	}
	return c.keyer.BaseMapKey(area.Name, string(p), opts)
}

// Generate returns the cached image or generates and stores it.
func (c *Cached) Generate(ctx context.Context, area region.Area, p projection.Projection) (Image, error) {
	img, _, err := c.GenerateWithCacheInfo(ctx, area, p)
	return img, err
}

// GenerateWithCacheInfo is [Cached.Generate] that also reports a cache hit.
func (c *Cached) GenerateWithCacheInfo(ctx context.Context, area region.Area, p projection.Projection) (Image, bool, error) {
	key := c.Key(area, p)

	if !c.refresh {
		data, hit, err := c.cache.Get(ctx, key)
		if err != nil {
			c.logger.Warn("base map cache read failed", "area", area.Name, "error", err)
		}
		if hit {
			img, err := Decode(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "basemap")
				c.logger.Debug("base map from cache", "area", area.Name, "projection", p)
				return img, true, nil
			}
			c.logger.Warn("discarding unreadable cached base map", "area", area.Name, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "basemap")
	}

	img, err := c.gen.Generate(ctx, area, p)
	if err != nil {
		return Image{}, false, err
	}
	if err := c.cache.Set(ctx, key, img.PNG, cache.TTLBaseMap); err != nil {
		c.logger.Warn("base map cache write failed", "area", area.Name, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "basemap", len(img.PNG))
	}
	return img, false, nil
}
