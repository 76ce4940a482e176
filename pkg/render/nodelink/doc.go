// Package nodelink renders generation results as Graphviz node-link diagrams.
//
// For derivation results every recorded path is replayed and each sentential
// form becomes a node; an edge joins consecutive forms and is labelled with
// the production applied. Paths that pass through the same form share its
// node, so the diagram is the derivation DAG of the result.
//
// Results without derivations are drawn as a star: the start symbol points
// at every generated string, and edges carry the derivation count when it is
// greater than one.
//
//	dot, err := nodelink.ToDOT(g, res, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
