package derive

import (
	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/worklist"
)

var errExhausted = errors.New(errors.ErrCodeInternal, "worklist exhausted before the round boundary")

// sink receives terminal strings together with the value they were queued with.
type sink[V any] interface {
	collect(s string, v V)
}

// expand queues one successor of s per production of the nonterminal at pos.
// Every successor carries v, the value accumulated for s.
func expand[V any](g grammar.Grammar, wl worklist.Worklist[string, V], s string, pos int, v V) int {
	alts := g[s[pos]]
	for _, alt := range alts {
		wl.Add(s[:pos]+alt+s[pos+1:], v)
	}
	return len(alts)
}

// controlled runs the round-based algorithm: depth rounds of expansion
// separated by boundary entries, followed by a drain that keeps only the
// strings that are already terminal.
//
// Successors are queued behind the boundary of the round that produced them,
// and the worklist never merges them into entries of an earlier round, so every
// entry is expanded with the depth budget of its own round.
func controlled[V any](g grammar.Grammar, depth int, wl worklist.Worklist[string, V], seed V, out sink[V], st *Stats) error {
	ix := g.Index()
	wl.Add(string(grammar.Start), seed)

	for round := 0; round < depth; round++ {
		wl.AddBoundary()
		for {
			e, ok := wl.Take()
			if !ok {
				return errExhausted
			}
			if e.Boundary {
				break
			}
			pos := ix.Leftmost(e.Key)
			if pos < 0 {
				out.collect(e.Key, e.Value)
				continue
			}
			st.Successors += expand(g, wl, e.Key, pos, e.Value)
			st.Rewrites++
			st.observe(wl.Len())
		}
	}

	for wl.Len() > 0 {
		e, ok := wl.Take()
		if !ok {
			return errExhausted
		}
		if e.Boundary {
			continue
		}
		if ix.Leftmost(e.Key) < 0 {
			out.collect(e.Key, e.Value)
		} else {
			st.Discarded++
		}
	}

	st.merged(wl)
	return nil
}

// =============================================================================
// Collectors
// =============================================================================

// Set is a set of terminal strings.
type Set map[string]struct{}

// Has reports whether s is in the set.
func (s Set) Has(str string) bool {
	_, ok := s[str]
	return ok
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	return sortedKeys(s)
}

func (s Set) collect(str string, _ struct{}) {
	s[str] = struct{}{}
}

type listSink struct {
	items []string
}

func (l *listSink) collect(s string, _ struct{}) {
	l.items = append(l.items, s)
}

// countSink sums the multiplicities of every arrival of a string.
type countSink map[string]uint64

func (c countSink) collect(s string, n uint64) {
	c[s] += n
}

// =============================================================================
// Typed entry points
// =============================================================================

// Unique returns the distinct terminal strings g derives within depth rounds.
func Unique(g grammar.Grammar, depth int) (Set, error) {
	var st Stats
	return unique(g, depth, &st)
}

func unique(g grammar.Grammar, depth int, st *Stats) (Set, error) {
	if err := errors.ValidateDepth(depth, 0); err != nil {
		return nil, err
	}
	out := make(Set)
	if err := controlled[struct{}](g, depth, worklist.NewSet[string](), struct{}{}, out, st); err != nil {
		return nil, err
	}
	return out, nil
}

// All returns the terminal strings g derives within depth rounds, once per
// derivation, so strings of an ambiguous grammar may repeat.
func All(g grammar.Grammar, depth int) ([]string, error) {
	var st Stats
	return all(g, depth, &st)
}

func all(g grammar.Grammar, depth int, st *Stats) ([]string, error) {
	if err := errors.ValidateDepth(depth, 0); err != nil {
		return nil, err
	}
	out := &listSink{items: []string{}}
	if err := controlled[struct{}](g, depth, worklist.NewPlain[string, struct{}](), struct{}{}, out, st); err != nil {
		return nil, err
	}
	return out.items, nil
}

// Count returns each terminal string g derives within depth rounds with the
// number of distinct derivations that reach it.
//
// Duplicate partial strings are merged in the worklist and their
// multiplicities added, so the work stays that of [Unique].
func Count(g grammar.Grammar, depth int) (map[string]uint64, error) {
	var st Stats
	return count(g, depth, &st)
}

func count(g grammar.Grammar, depth int, st *Stats) (map[string]uint64, error) {
	if err := errors.ValidateDepth(depth, 0); err != nil {
		return nil, err
	}
	out := make(countSink)
	if err := controlled[uint64](g, depth, worklist.NewCounting[string](), 1, out, st); err != nil {
		return nil, err
	}
	return map[string]uint64(out), nil
}
