package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/lgraph/pkg/cache"
	"github.com/matzehuels/lgraph/pkg/io"
	"github.com/matzehuels/lgraph/pkg/lgraph"
	"github.com/matzehuels/lgraph/pkg/lgraph/phase"
	"github.com/matzehuels/lgraph/pkg/observability"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner keeps no per-run state, so one Runner may serve several
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	// TTL is the lifetime of cache entries; zero keeps them forever.
	TTL time.Duration
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

// layoutEntry is the cached form of a layout result.
type layoutEntry struct {
	Layout []byte      `json:"layout"`
	Stats  phase.Stats `json:"stats"`
}

// Execute runs the complete import → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)

	layoutStart := time.Now()
	g, data, stats, hit, err := r.LayoutWithCacheInfo(ctx, result.RunID, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Layout = data
	result.LayoutHash = cache.Hash(data)
	result.Stats.Layout = stats
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = hit

	logger.Info("computed layout",
		"nodes", stats.Nodes,
		"self_loops", stats.SelfLoops.Nodes,
		"cached", hit,
		"duration", result.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, result.LayoutHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo imports and lays out opts.Input, or restores the
// result of an earlier run from the cache. It returns the laid out graph,
// its diagram JSON, the statistics of the run that computed it and whether
// it came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, runID string, opts Options) (*lgraph.Graph, []byte, phase.Stats, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, phase.Stats{}, false, err
	}
	key := r.Keyer.LayoutKey(cache.Hash(opts.Input), opts.LayoutKeyOpts())

	if !opts.Refresh {
		if g, entry, ok := r.cachedLayout(ctx, key); ok {
			return g, entry.Layout, entry.Stats, true, nil
		}
	}

	g, err := Import(ctx, opts.Input)
	if err != nil {
		return nil, nil, phase.Stats{}, false, fmt.Errorf("import: %w", err)
	}
	stats, err := Layout(ctx, runID, g, *opts.Config, opts.Logger)
	if err != nil {
		return nil, nil, stats, false, fmt.Errorf("layout: %w", err)
	}

	var buf bytes.Buffer
	if err := io.WriteJSON(g, &buf); err != nil {
		return nil, nil, stats, false, fmt.Errorf("encode layout: %w", err)
	}
	data := buf.Bytes()

	if entry, err := json.Marshal(layoutEntry{Layout: data, Stats: stats}); err == nil {
		r.set(ctx, keyTypeLayout, key, entry)
	}
	return g, data, stats, false, nil
}

// cachedLayout returns the graph stored under key. Entries that fail to
// decode are treated as misses.
func (r *Runner) cachedLayout(ctx context.Context, key string) (*lgraph.Graph, layoutEntry, bool) {
	var entry layoutEntry
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache lookup failed", "key", key, "err", err)
	}
	if err != nil || !hit || json.Unmarshal(data, &entry) != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return nil, entry, false
	}
	g, err := io.ReadJSON(bytes.NewReader(entry.Layout))
	if err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeLayout)
		return nil, entry, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeLayout)
	return g, entry, true
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. layoutHash identifies g; artifacts are only served from the
// cache when every requested format is present.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *lgraph.Graph, layoutHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, keyTypeArtifact)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeArtifact)
	}

	rendered, err := Render(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.set(ctx, keyTypeArtifact, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data)
	}
	return rendered, false, nil
}

// set stores data and reports it to the cache hooks. Failures are logged,
// not returned.
func (r *Runner) set(ctx context.Context, keyType, key string, data []byte) {
	err := cache.RetryWithBackoff(ctx, func() error {
		return r.Cache.Set(ctx, key, data, r.TTL)
	})
	if err != nil {
		r.Logger.Warn("cache store failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
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
