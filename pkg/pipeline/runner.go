package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/imagewall/pkg/cache"
	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/observability"
)

// Runner computes layouts with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// LayoutWithCacheInfo computes the layout of points and reports whether it
// came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, points []model.DataPoint, opts Options) (Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return Layout{}, false, err
	}

	pointsHash, err := hashPoints(points)
	if err != nil {
		return Layout{}, false, errors.Wrap(errors.ErrCodeInvalidDataset, err, "hash points")
	}
	cacheKey := r.Keyer.LayoutKey(pointsHash, opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := UnmarshalLayout(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(opts.Settings.Mode), len(points))
	start := time.Now()

	layout := ComputeLayout(points, opts)

	duration := time.Since(start)
	hooks.OnLayoutComplete(ctx, string(opts.Settings.Mode), duration, nil)
	opts.Logger.Debug("computed layout",
		"mode", opts.Settings.Mode,
		"points", len(layout.Points),
		"duration", duration)

	if data, err := MarshalLayout(layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return layout, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, points []model.DataPoint, opts Options) (Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, points, opts)
	return l, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// pointKey is the hashed form of a DataPoint. Values are keyed by their bit
// pattern so NaN and infinities hash like any other value.
type pointKey struct {
	Key   string  `json:"k"`
	Value *uint64 `json:"v,omitempty"`
	Low   string  `json:"l,omitempty"`
	High  string  `json:"h,omitempty"`
}

func hashPoints(points []model.DataPoint) (string, error) {
	keys := make([]pointKey, len(points))
	for i, p := range points {
		keys[i] = pointKey{Key: p.Identity.Key, Low: p.ImageLowRes, High: p.ImageHighRes}
		if p.Value != nil {
			bits := math.Float64bits(*p.Value)
			keys[i].Value = &bits
		}
	}
	return cache.HashJSON(keys)
}
