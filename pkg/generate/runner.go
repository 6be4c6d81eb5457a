package generate

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/crossgrid/pkg/cache"
	"github.com/matzehuels/crossgrid/pkg/errors"
	"github.com/matzehuels/crossgrid/pkg/observability"
)

// Runner wraps Process with a cache. The CLI and the server share it.
//
// A Runner holds no per-request state, so one value serves concurrent
// requests as long as its Cache does.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner. A nil cache disables caching, a nil keyer
// means cache.DefaultKeyer and a nil logger means log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Generate returns the report for words, from the cache when possible.
// Only successful reports are stored, so timeouts and bad requests are
// recomputed on every call.
func (r *Runner) Generate(ctx context.Context, words []string, opts Options) (*Report, error) {
	if err := errors.ValidateWordList(words); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	key := r.Keyer.GridsKey(normalize(words), opts.KeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if rep, ok := r.load(ctx, key); ok {
			hooks.OnCacheHit(ctx, "grids")
			opts.Logger.Debug("cache hit", "key", key)
			return rep, nil
		}
		hooks.OnCacheMiss(ctx, "grids")
	}

	rep, err := Process(ctx, words, opts)
	if err != nil {
		return nil, err
	}
	rep.Key = key

	if data, err := json.Marshal(rep); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLGrids); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "grids", len(data))
		}
	}
	return rep, nil
}

func (r *Runner) load(ctx context.Context, key string) (*Report, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, false
	}
	rep.Key, rep.Cached = key, true
	return &rep, true
}

// Render renders rep in format, caching the bytes when rep has a cache key.
func (r *Runner) Render(ctx context.Context, rep *Report, format string) ([]byte, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if rep.Key == "" {
		return rep.Render(ctx, f)
	}

	key := r.Keyer.RenderKey(rep.Key, f)
	hooks := observability.Cache()
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "render")
		return data, nil
	}
	hooks.OnCacheMiss(ctx, "render")

	data, err := rep.Render(ctx, f)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLRender); err == nil {
		hooks.OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}
