package derive

import (
	"fmt"
	"slices"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

// Step records one rewrite: the nonterminal at byte offset Pos was replaced by Production.
type Step struct {
	Pos        int
	Production string
}

// String formats the step as "(pos, production)".
func (s Step) String() string {
	return fmt.Sprintf("(%d, %s)", s.Pos, s.Production)
}

// Production records one rewrite without its position. Since rewrites are
// always leftmost, the position can be recovered by replaying the path.
type Production string

// String formats the record as "(production)".
func (p Production) String() string {
	return "(" + string(p) + ")"
}

// Record is the type of one entry of a derivation path.
type Record interface {
	Step | Production
}

// Path is the sequence of rewrites that turns the start symbol into a string.
type Path[R Record] []R

// Productions returns the productions applied along p, in order.
func (p Path[R]) Productions() []string {
	out := make([]string, len(p))
	for i, r := range p {
		switch rec := any(r).(type) {
		case Step:
			out[i] = rec.Production
		case Production:
			out[i] = string(rec)
		}
	}
	return out
}

// record builds the record of type R for a rewrite at pos.
func record[R Record](pos int, production string) R {
	var r R
	switch p := any(&r).(type) {
	case *Step:
		*p = Step{Pos: pos, Production: production}
	case *Production:
		*p = Production(production)
	}
	return r
}

// extend returns the paths of base with rec appended. With own set the
// paths of base are extended in place; otherwise each path is copied first so
// the result shares no storage with base.
func extend[R Record](base []Path[R], rec R, own bool) []Path[R] {
	out := make([]Path[R], len(base))
	for i, p := range base {
		if !own {
			p = slices.Grow(slices.Clone(p), 1)
		}
		out[i] = append(p, rec)
	}
	return out
}

// within returns the paths that are shorter than depth.
func within[R Record](paths []Path[R], depth int) []Path[R] {
	var out []Path[R]
	for _, p := range paths {
		if len(p) < depth {
			out = append(out, p)
		}
	}
	return out
}

// Replay applies path to the start symbol of g and returns the resulting string.
//
// [Step] records are applied at their recorded position, which must hold a
// nonterminal. [Production] records are applied to the leftmost nonterminal.
// Either way the production must be one of that nonterminal's productions.
func Replay[R Record](g grammar.Grammar, path Path[R]) (string, error) {
	forms, err := Trace(g, path)
	if err != nil {
		return "", err
	}
	return forms[len(forms)-1], nil
}

// Trace is like [Replay] but returns every sentential form along the way,
// starting with the start symbol, so len(result) == len(path)+1.
func Trace[R Record](g grammar.Grammar, path Path[R]) ([]string, error) {
	forms, _, err := trace(g, path)
	return forms, err
}

// Positions returns the rewrite positions of path. For [Production] records
// they are recovered by replaying the leftmost rewrites.
func Positions[R Record](g grammar.Grammar, path Path[R]) ([]Step, error) {
	_, steps, err := trace(g, path)
	return steps, err
}

func trace[R Record](g grammar.Grammar, path Path[R]) ([]string, []Step, error) {
	ix := g.Index()
	s := string(grammar.Start)
	forms := make([]string, 0, len(path)+1)
	steps := make([]Step, 0, len(path))
	forms = append(forms, s)

	for i, r := range path {
		var pos int
		var prod string
		switch rec := any(r).(type) {
		case Step:
			pos, prod = rec.Pos, rec.Production
			if pos < 0 || pos >= len(s) || !ix.Has(s[pos]) {
				return nil, nil, errors.New(errors.ErrCodeInvalidInput, "step %d: no nonterminal at position %d of %q", i, pos, s)
			}
		case Production:
			pos, prod = ix.Leftmost(s), string(rec)
			if pos < 0 {
				return nil, nil, errors.New(errors.ErrCodeInvalidInput, "step %d: %q has no nonterminal left", i, s)
			}
		}
		if !slices.Contains(g[s[pos]], prod) {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "step %d: %q is not a production of %q", i, prod, s[pos])
		}
		s = s[:pos] + prod + s[pos+1:]
		forms = append(forms, s)
		steps = append(steps, Step{Pos: pos, Production: prod})
	}
	return forms, steps, nil
}
