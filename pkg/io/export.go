package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
)

// WriteJSON encodes a generation result as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(r *derive.Result, w io.Writer) error {
	out := document{
		Shape: r.Shape,
		Depth: r.Depth,
		Stats: fromStats(r.Stats),
	}

	switch r.Shape {
	case derive.ShapeSet:
		out.Strings = r.Set.Sorted()
	case derive.ShapeList:
		out.Strings = r.List
	case derive.ShapeCounts:
		out.Counts = r.Counts
	case derive.ShapeDerivations:
		out.LowMemory = r.LowMemory()
		if out.LowMemory {
			out.Derivations = exportPaths(r.Productions, func(p derive.Production) step {
				return step{Production: string(p)}
			})
		} else {
			out.Derivations = exportPaths(r.Steps, func(s derive.Step) step {
				pos := s.Pos
				return step{Pos: &pos, Production: s.Production}
			})
		}
	default:
		return fmt.Errorf("encode: unknown shape %q", r.Shape)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a generation result to a JSON file at path.
func ExportJSON(r *derive.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(r, f)
}

func exportPaths[R derive.Record](d derive.Derivations[R], conv func(R) step) map[string][][]step {
	out := make(map[string][][]step, len(d))
	for s, paths := range d {
		ps := make([][]step, len(paths))
		for i, p := range paths {
			ps[i] = make([]step, len(p))
			for j, rec := range p {
				ps[i][j] = conv(rec)
			}
		}
		out[s] = ps
	}
	return out
}
