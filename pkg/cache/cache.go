// Package cache stores generated bytes (base-map images, layout plans,
// rendered artifacts) behind one small interface.
//
// Backends:
//   - [FileCache] for the CLI, one JSON entry file per key
//   - [RedisCache] for servers sharing a cache
//   - [NullCache] when caching is disabled
//
// Keys come from a [Keyer] so every producer of a cached value builds them
// the same way:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.BaseMapKey("us_continental", "web_mercator", cache.BaseMapKeyOpts{Width: 2000})
//	data, hit, err := c.Get(ctx, key)
//
// Every cached value is reproducible from its key. Concurrent writers of
// the same key write interchangeable bytes, so backends need no locking
// beyond atomic replacement.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Default expiries per cached kind.
const (
	TTLBaseMap  = 30 * 24 * time.Hour
	TTLPlan     = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// =============================================================================
// Keys
// =============================================================================

// Keyer builds cache keys.
type Keyer interface {
	BaseMapKey(area, projection string, opts BaseMapKeyOpts) string
	PlanKey(inputHash string, opts PlanKeyOpts) string
	ArtifactKey(planHash string, opts ArtifactKeyOpts) string
}

// BaseMapKeyOpts are the generator settings that change a base-map image.
type BaseMapKeyOpts struct {
	Width     int    `json:"width"`
	Generator string `json:"generator,omitempty"`
}

// PlanKeyOpts are the request settings that change a layout plan.
type PlanKeyOpts struct {
	Region     string `json:"region"`
	Projection string `json:"projection"`
	Aspect     string `json:"aspect"`
	Insets     bool   `json:"insets"`
	StyleHash  string `json:"style_hash,omitempty"`
}

// ArtifactKeyOpts are the render settings that change an artifact.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Frames bool    `json:"frames,omitempty"`
}

// DefaultKeyer hashes key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// BaseMapKey keys a base-map image. Area and projection stay readable.
func (DefaultKeyer) BaseMapKey(area, projection string, opts BaseMapKeyOpts) string {
	return hashKey("basemap:"+area+":"+projection, opts)
}

// PlanKey keys a layout plan by the hash of its input sets.
func (DefaultKeyer) PlanKey(inputHash string, opts PlanKeyOpts) string {
	return hashKey("plan", inputHash, opts)
}

// ArtifactKey keys a rendered artifact by the hash of its plan.
func (DefaultKeyer) ArtifactKey(planHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", planHash, opts)
}

var _ Keyer = DefaultKeyer{}
