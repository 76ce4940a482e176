package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
)

// WriteText writes the plain listing of r to w.
func WriteText(w io.Writer, r *derive.Result) error {
	bw := bufio.NewWriter(w)

	switch r.Shape {
	case derive.ShapeSet:
		for _, s := range r.Set.Sorted() {
			fmt.Fprintln(bw, s)
		}
	case derive.ShapeList:
		for _, s := range r.List {
			fmt.Fprintln(bw, s)
		}
	case derive.ShapeCounts:
		for _, s := range r.Strings() {
			fmt.Fprintf(bw, "%s -> %d\n", s, r.Counts[s])
		}
	case derive.ShapeDerivations:
		if r.LowMemory() {
			writePaths(bw, r.Productions)
		} else {
			writePaths(bw, r.Steps)
		}
	default:
		return fmt.Errorf("text: unknown shape %q", r.Shape)
	}

	return bw.Flush()
}

func writePaths[R derive.Record](w io.Writer, d derive.Derivations[R]) {
	for i, s := range d.Strings() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s ->\n", s)
		for _, p := range d[s] {
			fmt.Fprintln(w, FormatPath(p))
		}
	}
}

// FormatPath joins the records of p with ", ". The empty path of a
// zero-step derivation is rendered as "()".
func FormatPath[R derive.Record](p derive.Path[R]) string {
	if len(p) == 0 {
		return "()"
	}
	parts := make([]string, len(p))
	for i, rec := range p {
		parts[i] = fmt.Sprint(rec)
	}
	return strings.Join(parts, ", ")
}
