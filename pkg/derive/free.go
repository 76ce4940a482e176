package derive

import (
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/worklist"
)

// Derivations maps each terminal string to the derivation paths that produced it.
type Derivations[R Record] map[string][]Path[R]

// free runs the path-length algorithm. Each queued string carries its paths;
// a path is extended only while it holds fewer than depth records, and a
// string none of whose paths can grow is abandoned.
//
// The same merge policy decides what happens when a string is queued twice
// and when a terminal string is collected twice.
func free[R Record](g grammar.Grammar, depth int, merge worklist.Merge[[]Path[R]], st *Stats) (Derivations[R], error) {
	ix := g.Index()
	wl := worklist.NewKeyed[string, []Path[R]](merge)
	out := make(Derivations[R])

	wl.Add(string(grammar.Start), []Path[R]{{}})

	for wl.Len() > 0 {
		e, ok := wl.Take()
		if !ok {
			return nil, errExhausted
		}

		pos := ix.Leftmost(e.Key)
		if pos < 0 {
			if prev, seen := out[e.Key]; seen {
				out[e.Key] = merge(prev, e.Value)
			} else {
				out[e.Key] = e.Value
			}
			continue
		}

		base := within(e.Value, depth)
		if len(base) == 0 {
			st.Abandoned++
			continue
		}

		alts := g[e.Key[pos]]
		for i, alt := range alts {
			// the first alternative may take over the carried paths; the
			// others get their own copies of the unextended base
			paths := extend(base, record[R](pos, alt), i == 0)
			wl.Add(e.Key[:pos]+alt+e.Key[pos+1:], paths)
		}
		st.Successors += len(alts)
		st.Rewrites++
		st.observe(wl.Len())
	}

	st.merged(wl)
	return out, nil
}

// Derive returns each terminal string g derives in at most depth leftmost
// rewrites, together with the derivation paths that produced it.
//
// With repetition [Disabled] a single path is kept per string: whenever two
// derivations meet at the same partial string only the first one survives.
// With [Enabled] (or [Counted]) every derivation is kept.
//
// R selects the record kind: [Step] keeps rewrite positions, [Production]
// drops them.
func Derive[R Record](g grammar.Grammar, depth int, rep Repetition) (Derivations[R], error) {
	var st Stats
	return derivations[R](g, depth, rep, &st)
}

func derivations[R Record](g grammar.Grammar, depth int, rep Repetition, st *Stats) (Derivations[R], error) {
	if err := errors.ValidateDepth(depth, 0); err != nil {
		return nil, err
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}
	merge := worklist.KeepFirst[[]Path[R]]
	if rep != Disabled {
		merge = worklist.Concat[Path[R]]
	}
	return free[R](g, depth, merge, st)
}

// Total returns the number of paths across all strings.
func (d Derivations[R]) Total() int {
	n := 0
	for _, paths := range d {
		n += len(paths)
	}
	return n
}

// Strings returns the derived strings in ascending order.
func (d Derivations[R]) Strings() []string {
	return sortedKeys(d)
}
