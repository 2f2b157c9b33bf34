// Package observability lets a host process observe pinmap's work without
// the library depending on a metrics backend.
//
// Libraries report events through the hook interfaces; the process that
// cares (the HTTP server) registers real implementations at startup. Until
// then every hook is a no-op.
//
//	observability.SetPipelineHooks(promHooks)
//
//	observability.Pipeline().OnLayoutStart(ctx, "us", "web_mercator", 42)
//	plan, err := layout.Compose(req)
//	observability.Pipeline().OnLayoutComplete(ctx, "us", placed, excluded, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Hook Interfaces
// =============================================================================

// PipelineHooks receives layout and render events.
type PipelineHooks interface {
	OnLayoutStart(ctx context.Context, region, projection string, points int)
	OnLayoutComplete(ctx context.Context, region string, placed, excluded int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. kind is "basemap", "plan"
// or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// BaseMapHooks receives base-map generation events.
type BaseMapHooks interface {
	OnBaseMapGenerated(ctx context.Context, area, projection string, width, height int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLayoutStart(context.Context, string, string, int) {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopBaseMapHooks ignores every event.
type NoopBaseMapHooks struct{}

func (NoopBaseMapHooks) OnBaseMapGenerated(context.Context, string, string, int, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	baseMapHooks  BaseMapHooks  = NoopBaseMapHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetBaseMapHooks registers base-map hooks. nil is ignored.
func SetBaseMapHooks(h BaseMapHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		baseMapHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// BaseMap returns the registered base-map hooks.
func BaseMap() BaseMapHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return baseMapHooks
}

// Reset restores the no-op hooks. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	baseMapHooks = NoopBaseMapHooks{}
}
