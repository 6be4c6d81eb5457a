// Package observability lets a binary observe grid generation without the
// library packages importing a metrics backend.
//
// Libraries emit events through the registered hooks; main (or the server)
// installs implementations at startup:
//
//	observability.SetGenerateHooks(metrics)
//	observability.SetCacheHooks(metrics)
//
// Until then every hook is a no-op.
package observability

import (
	"context"
	"sync"
	"time"
)

// GenerateHooks receives events from generate.Process.
type GenerateHooks interface {
	OnGenerateStart(ctx context.Context, words int)
	// OnGenerateComplete reports candidates yielded by the search and the
	// number of unique grids kept. err is nil on success.
	OnGenerateComplete(ctx context.Context, words, candidates, grids int, duration time.Duration, err error)
}

// CacheHooks receives events from cached generation. keyType is "grids" or
// "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// RequestHooks receives events from the HTTP server.
type RequestHooks interface {
	OnRequest(ctx context.Context, route string)
	OnResponse(ctx context.Context, route string, status int, duration time.Duration)
}

// NoopGenerateHooks ignores all events.
type NoopGenerateHooks struct{}

func (NoopGenerateHooks) OnGenerateStart(context.Context, int) {}
func (NoopGenerateHooks) OnGenerateComplete(context.Context, int, int, int, time.Duration, error) {
}

// NoopCacheHooks ignores all events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopRequestHooks ignores all events.
type NoopRequestHooks struct{}

func (NoopRequestHooks) OnRequest(context.Context, string)                      {}
func (NoopRequestHooks) OnResponse(context.Context, string, int, time.Duration) {}

var (
	hooksMu       sync.RWMutex
	generateHooks GenerateHooks = NoopGenerateHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	requestHooks  RequestHooks  = NoopRequestHooks{}
)

// SetGenerateHooks installs h. A nil h is ignored.
func SetGenerateHooks(h GenerateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generateHooks = h
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetRequestHooks installs h. A nil h is ignored.
func SetRequestHooks(h RequestHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		requestHooks = h
	}
}

// Generate returns the installed generation hooks.
func Generate() GenerateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generateHooks
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Request returns the installed request hooks.
func Request() RequestHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return requestHooks
}

// Reset restores the no-op hooks. Tests use it to undo SetXxxHooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generateHooks = NoopGenerateHooks{}
	cacheHooks = NoopCacheHooks{}
	requestHooks = NoopRequestHooks{}
}
