// Package pkg provides the libraries behind cfggen, a depth-bounded string
// enumerator for context-free grammars.
//
// # Overview
//
// Given a grammar and a depth bound, cfggen lists the terminal strings the
// grammar derives by leftmost rewriting, optionally with their ambiguity
// counts or the derivation paths that produced them. The pkg directory is
// organized into three areas:
//
//  1. Domain logic: [grammar], [worklist] and [derive]
//  2. Serialization and output: [io], [render] and [render/nodelink]
//  3. Infrastructure: [cache], [pipeline], [observability] and [errors]
//
// # Architecture
//
// The typical data flow:
//
//	TOML/JSON grammar document
//	         ↓
//	    [grammar] package (rule table, nonterminal index)
//	         ↓
//	    [derive] package (strategy over a [worklist])
//	         ↓
//	    [render] package (text, JSON, DOT, SVG)
//
// [pipeline] wraps these stages with a [cache] and is shared by the CLI and
// the HTTP server so both behave the same way.
//
// # Quick Start
//
//	g := grammar.Demo()
//	res, err := derive.Generate(g, 6, derive.Options{Repetition: derive.Counted})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, s := range res.Strings() {
//	    fmt.Println(s, res.Counts[s])
//	}
//
// # Main Packages
//
// [grammar] - Rule table keyed by one-byte nonterminals, plus TOML and JSON
// document loading.
//
// [worklist] - Insertion-ordered work queues with boundary markers and merge
// policies (plain, set, counting, keyed).
//
// [derive] - The enumeration strategies: round-controlled expansion for
// plain, unique and counted output, and path-length-controlled expansion for
// derivation tracking. Also path replay and tracing.
//
// [io] - JSON import and export of generation results.
//
// [render] - Output formats. [render/nodelink] draws derivation graphs with
// Graphviz.
//
// [cache] - Content-addressed result cache with file, Redis and MongoDB
// backends.
//
// [pipeline] - Generate then render, cache-aside.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/derive/...   # Specific package
//	go test -run Example       # Examples only
//
// [grammar]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/grammar
// [worklist]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/worklist
// [derive]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/derive
// [io]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/io
// [render]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/observability
// [errors]: https://pkg.go.dev/github.com/FlyingWolFox/cfg-string-generator/pkg/errors
package pkg
