// Package pipeline runs grammar generation end to end for the CLI and the
// HTTP server.
//
// The pipeline has two stages:
//
//  1. Generate: resolve the grammar and enumerate its strings with the
//     strategy selected by the options
//  2. Render: produce the requested output formats from the result
//
// Both stages are cache-aside: a result is keyed by the grammar's content hash
// and every option that changes it, and an artifact by the hash of the result
// it renders. Cache failures never fail a run.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    GrammarPath: "binary.toml",
//	    Depth:       6,
//	    Repetition:  "counted",
//	    Formats:     []string{"text", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(res.Artifacts["text"])
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/cache"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/render"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultDepth is the depth bound used by the CLI and by API requests
	// that do not set one.
	DefaultDepth = 6

	// DefaultMaxDepth is the per-request depth limit of the HTTP server.
	// Output grows exponentially with depth for most grammars.
	DefaultMaxDepth = 10

	// DefaultRepetition is the repetition mode used when none is given.
	DefaultRepetition = "disabled"
)

// DefaultFormat is the output format used when none is given.
const DefaultFormat = string(render.FormatText)

// =============================================================================
// Options
// =============================================================================

// Options configures one pipeline run. It doubles as the JSON body of the
// HTTP generate endpoint.
type Options struct {
	// Grammar source. Grammar takes precedence over GrammarPath; with
	// neither set the built-in demonstration grammar is used.
	GrammarPath string          `json:"-"`
	Grammar     grammar.Grammar `json:"grammar,omitempty"`

	// Generation options. Depth has no default here since zero is a valid
	// bound; callers start from DefaultDepth.
	Depth       int    `json:"depth"`
	Derivations bool   `json:"derivations,omitempty"`
	Repetition  string `json:"repetition,omitempty"`
	LowMemory   bool   `json:"low_memory,omitempty"`
	Refresh     bool   `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// MaxDepth rejects deeper requests when positive.
	MaxDepth int `json:"-"`

	Logger *log.Logger `json:"-"`

	validated bool
	mode      derive.Repetition
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID string

	// Grammar is the grammar that was enumerated.
	Grammar grammar.Grammar

	// GrammarHash is the content hash of Grammar.
	GrammarHash string

	// Generation is the engine result.
	Generation *derive.Result

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	Strings      int
	Total        uint64
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	GenerateHit bool
	RenderHit   bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := render.Format(f).Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults resolves the grammar, checks every option and fills
// in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForGenerate(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForGenerate resolves the grammar and checks the generation options.
func (o *Options) ValidateForGenerate() error {
	if o.Grammar == nil {
		if o.GrammarPath != "" {
			if err := errors.ValidatePath(o.GrammarPath); err != nil {
				return err
			}
			g, err := grammar.Load(o.GrammarPath)
			if err != nil {
				return err
			}
			o.Grammar = g
		} else {
			o.Grammar = grammar.Demo()
		}
	}
	if o.Grammar.Len() == 0 {
		return errors.New(errors.ErrCodeInvalidGrammar, "grammar has no rules")
	}

	if err := errors.ValidateDepth(o.Depth, o.MaxDepth); err != nil {
		return err
	}

	if o.Repetition == "" {
		o.Repetition = DefaultRepetition
	}
	mode, err := derive.ParseRepetition(o.Repetition)
	if err != nil {
		return err
	}
	o.mode = mode

	o.setLogger()
	return nil
}

// SetRenderDefaults fills in the render defaults.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLogger()
}

// ValidateForRender sets render defaults and checks the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// EngineOptions returns the engine strategy selection.
func (o *Options) EngineOptions() derive.Options {
	return derive.Options{
		Derivations: o.Derivations,
		Repetition:  o.mode,
		LowMemory:   o.LowMemory,
	}
}

// Shape returns the result shape the options produce.
func (o *Options) Shape() derive.Shape {
	return o.EngineOptions().Shape()
}

// ResultKeyOpts returns cache key options for the generation stage. Options
// the engine ignores are normalized so they do not split the cache.
func (o *Options) ResultKeyOpts() cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Depth:       o.Depth,
		Derivations: o.Derivations,
		Repetition:  o.Repetition,
		LowMemory:   o.Derivations && o.LowMemory,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format}
}
