package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/derive"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
)

// ReadJSON decodes a JSON result document from r.
//
// ReadJSON returns an INVALID_FORMAT error if the document is malformed, its
// shape is unknown, its depth is negative, or it carries a payload that does
// not belong to its shape. Low-memory documents must not contain positioned
// records and full documents must not contain bare ones.
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*derive.Result, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode result")
	}
	if doc.Depth < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "negative depth %d", doc.Depth)
	}

	res := &derive.Result{Shape: doc.Shape, Depth: doc.Depth, Stats: doc.Stats.engine()}
	payload := 0
	if doc.Strings != nil {
		payload++
	}
	if doc.Counts != nil {
		payload++
	}
	if doc.Derivations != nil {
		payload++
	}
	if payload > 1 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "result carries more than one payload")
	}

	switch doc.Shape {
	case derive.ShapeSet:
		if doc.Counts != nil || doc.Derivations != nil {
			return nil, mismatch(doc.Shape)
		}
		res.Set = make(derive.Set, len(doc.Strings))
		for _, s := range doc.Strings {
			res.Set[s] = struct{}{}
		}
	case derive.ShapeList:
		if doc.Counts != nil || doc.Derivations != nil {
			return nil, mismatch(doc.Shape)
		}
		res.List = doc.Strings
		if res.List == nil {
			res.List = []string{}
		}
	case derive.ShapeCounts:
		if doc.Strings != nil || doc.Derivations != nil {
			return nil, mismatch(doc.Shape)
		}
		res.Counts = doc.Counts
		if res.Counts == nil {
			res.Counts = map[string]uint64{}
		}
	case derive.ShapeDerivations:
		if doc.Strings != nil || doc.Counts != nil {
			return nil, mismatch(doc.Shape)
		}
		var err error
		if doc.LowMemory {
			res.Productions, err = importPaths(doc.Derivations, func(s step) (derive.Production, bool) {
				return derive.Production(s.Production), s.Pos == nil
			})
		} else {
			res.Steps, err = importPaths(doc.Derivations, func(s step) (derive.Step, bool) {
				if s.Pos == nil {
					return derive.Step{}, false
				}
				return derive.Step{Pos: *s.Pos, Production: s.Production}, true
			})
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown shape %q", doc.Shape)
	}

	return res, nil
}

// ImportJSON reads a JSON file at path and returns the decoded result.
func ImportJSON(path string) (*derive.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func mismatch(shape derive.Shape) error {
	return errors.New(errors.ErrCodeInvalidFormat, "payload does not match shape %q", shape)
}

func importPaths[R derive.Record](in map[string][][]step, conv func(step) (R, bool)) (derive.Derivations[R], error) {
	out := make(derive.Derivations[R], len(in))
	for s, paths := range in {
		ps := make([]derive.Path[R], len(paths))
		for i, p := range paths {
			ps[i] = make(derive.Path[R], len(p))
			for j, st := range p {
				rec, ok := conv(st)
				if !ok {
					return nil, errors.New(errors.ErrCodeInvalidFormat, "%q: path %d step %d has the wrong record kind", s, i, j)
				}
				ps[i][j] = rec
			}
		}
		out[s] = ps
	}
	return out, nil
}
