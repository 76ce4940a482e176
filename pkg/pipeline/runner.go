package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/cache"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/io"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no per-run state, so
// one Runner can serve concurrent runs with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides how long generation results are kept when positive.
	TTL time.Duration
}

// NewRunner returns a runner. A nil cache disables caching and a nil keyer
// uses the [cache.DefaultKeyer].
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs generate then render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       uuid.NewString(),
		Grammar:     opts.Grammar,
		GrammarHash: cache.Hash(grammar.Canonical(opts.Grammar)),
	}
	logger := opts.Logger.With("run_id", result.RunID)
	opts.Logger = logger

	genStart := time.Now()
	res, hit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Generation = res
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Strings = len(res.Strings())
	result.Stats.Total = res.Total()
	result.CacheInfo.GenerateHit = hit

	logger.Info("generated strings",
		"shape", res.Shape,
		"depth", res.Depth,
		"strings", result.Stats.Strings,
		"cached", hit,
		"duration", result.Stats.GenerateTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, opts.Grammar, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo returns the generation result for opts and whether
// it came from the cache.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*derive.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	grammarHash := cache.Hash(grammar.Canonical(opts.Grammar))
	key := r.Keyer.ResultKey(grammarHash, opts.ResultKeyOpts())
	hooks := observability.Generate()
	shape := string(opts.Shape())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Debug("cache read failed", "key", key, "err", err)
		}
		if hit {
			res, err := io.ReadJSON(bytes.NewReader(data))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "result")
				return res, true, nil
			}
			opts.Logger.Debug("discarding unreadable cache entry", "key", key, "err", err)
		}
	}
	observability.Cache().OnCacheMiss(ctx, "result")

	hooks.OnGenerateStart(ctx, shape, opts.Depth)
	start := time.Now()
	res, err := Generate(opts.Grammar, opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, shape, opts.Depth, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnGenerateComplete(ctx, shape, opts.Depth, len(res.Strings()), time.Since(start), nil)

	opts.Logger.Debug("engine stats",
		"rewrites", res.Stats.Rewrites,
		"successors", res.Stats.Successors,
		"merged", res.Stats.Merged,
		"discarded", res.Stats.Discarded,
		"abandoned", res.Stats.Abandoned,
		"peak", res.Stats.Peak)

	var buf bytes.Buffer
	if err := io.WriteJSON(res, &buf); err == nil {
		ttl := cache.TTLResult
		if r.TTL > 0 {
			ttl = r.TTL
		}
		r.store(ctx, opts, "result", key, buf.Bytes(), ttl)
	}

	return res, false, nil
}

// RenderWithCacheInfo renders res in every requested format and reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g grammar.Grammar, res *derive.Result, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	var encoded bytes.Buffer
	if err := io.WriteJSON(res, &encoded); err != nil {
		return nil, false, fmt.Errorf("encode result for cache key: %w", err)
	}
	// graph formats depend on the grammar through replay
	resultHash := cache.Hash(append(grammar.Canonical(g), encoded.Bytes()...))

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	hooks := observability.Generate()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	rendered, err := Render(ctx, g, res, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(resultHash, opts.ArtifactKeyOpts(format))
		r.store(ctx, opts, "artifact", key, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

func (r *Runner) store(ctx context.Context, opts Options, keyType, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Debug("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
