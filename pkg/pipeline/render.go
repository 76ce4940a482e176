package pipeline

import (
	"context"
	"fmt"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/render"
)

// Generate enumerates the strings of g with the strategy selected by opts.
// It does not touch the cache.
func Generate(g grammar.Grammar, opts Options) (*derive.Result, error) {
	gen, err := derive.New(opts.EngineOptions())
	if err != nil {
		return nil, err
	}
	return gen.Generate(g, opts.Depth)
}

// Render produces every format in opts.Formats. It does not touch the cache.
func Render(ctx context.Context, g grammar.Grammar, res *derive.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := render.Render(ctx, g, res, render.Format(format))
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
