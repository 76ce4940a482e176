package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

// Options configures diagram generation.
type Options struct {
	// Detailed prefixes edge labels with the rewrite position.
	Detailed bool
}

// graph collects nodes and edges in insertion order.
type graph struct {
	ids   map[string]string
	nodes []string
	final map[string]bool
	seen  map[string]bool
	edges []string
}

func newGraph() *graph {
	return &graph{ids: map[string]string{}, final: map[string]bool{}, seen: map[string]bool{}}
}

func (gr *graph) node(form string) string {
	if id, ok := gr.ids[form]; ok {
		return id
	}
	id := "n" + strconv.Itoa(len(gr.nodes))
	gr.ids[form] = id
	gr.nodes = append(gr.nodes, form)
	return id
}

func (gr *graph) edge(from, to, label string) {
	if from == to {
		return
	}
	line := fmt.Sprintf("  %s -> %s", gr.node(from), gr.node(to))
	if label != "" {
		line += fmt.Sprintf(" [label=%q]", label)
	}
	if gr.seen[line] {
		return
	}
	gr.seen[line] = true
	gr.edges = append(gr.edges, line+";")
}

// ToDOT converts a result to Graphviz DOT source. Derivation paths are
// replayed against g and a path that does not replay is an error.
func ToDOT(g grammar.Grammar, r *derive.Result, opts Options) (string, error) {
	gr := newGraph()
	start := string(grammar.Start)
	gr.node(start)

	switch r.Shape {
	case derive.ShapeDerivations:
		var err error
		if r.LowMemory() {
			err = addPaths(gr, g, r.Productions, opts)
		} else {
			err = addPaths(gr, g, r.Steps, opts)
		}
		if err != nil {
			return "", err
		}
	case derive.ShapeCounts:
		for _, s := range r.Strings() {
			gr.final[s] = true
			gr.edge(start, s, multiplicity(r.Counts[s]))
		}
	case derive.ShapeList:
		counts := make(map[string]uint64)
		for _, s := range r.List {
			counts[s]++
		}
		for _, s := range r.Strings() {
			gr.final[s] = true
			gr.edge(start, s, multiplicity(counts[s]))
		}
	default:
		for _, s := range r.Strings() {
			gr.final[s] = true
			gr.edge(start, s, "")
		}
	}

	return gr.dot(), nil
}

func addPaths[R derive.Record](gr *graph, g grammar.Grammar, d derive.Derivations[R], opts Options) error {
	for _, s := range d.Strings() {
		gr.final[s] = true
		for _, p := range d[s] {
			forms, err := derive.Trace(g, p)
			if err != nil {
				return fmt.Errorf("%q: %w", s, err)
			}
			steps, err := derive.Positions(g, p)
			if err != nil {
				return fmt.Errorf("%q: %w", s, err)
			}
			for i, st := range steps {
				label := st.Production
				if opts.Detailed {
					label = fmt.Sprintf("%d: %s", st.Pos, st.Production)
				}
				gr.edge(forms[i], forms[i+1], label)
			}
		}
	}
	return nil
}

func multiplicity(n uint64) string {
	if n <= 1 {
		return ""
	}
	return "x" + strconv.FormatUint(n, 10)
}

func (gr *graph) dot() string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=18];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, form := range gr.nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", gr.ids[form], strings.Join(attrs(form, gr.final[form]), ", "))
	}

	buf.WriteString("\n")
	for _, e := range gr.edges {
		buf.WriteString(e)
		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
	return buf.String()
}

func attrs(form string, final bool) []string {
	label := form
	if label == "" {
		label = "ε"
	}
	out := []string{fmt.Sprintf("label=%q", label)}
	if !final {
		out = append(out, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return out
}

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
