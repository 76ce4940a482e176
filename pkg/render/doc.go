// Package render turns generation results into output formats.
//
// # Formats
//
//   - text: the plain listing printed by the CLI
//   - json: the result document of [github.com/FlyingWolFox/cfg-string-generator/pkg/io]
//   - dot: a Graphviz derivation graph (see [nodelink])
//   - svg: the derivation graph laid out by Graphviz
//
// [Render] dispatches on a [Format]:
//
//	out, err := render.Render(ctx, g, res, render.FormatSVG)
//
// # Text Layout
//
// Sets are listed in ascending order, lists in generation order. Counts are
// printed as "string -> count". Derivations print each string followed by one
// line per path:
//
//	01 ->
//	(0, 0A), (1, 1)
//
// [nodelink]: github.com/FlyingWolFox/cfg-string-generator/pkg/render/nodelink
package render
