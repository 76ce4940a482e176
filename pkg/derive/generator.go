package derive

import (
	"slices"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
	"github.com/FlyingWolFox/cfg-string-generator/pkg/grammar"
)

// Repetition selects how strings reached by more than one derivation are reported.
type Repetition int

const (
	// Disabled reports every string once.
	Disabled Repetition = iota
	// Enabled reports a string once per derivation.
	Enabled
	// Counted reports every string once together with its number of derivations.
	// With derivation tracking it behaves like Enabled.
	Counted
)

var repetitionNames = map[Repetition]string{
	Disabled: "disabled",
	Enabled:  "enabled",
	Counted:  "counted",
}

// String returns the flag spelling of r.
func (r Repetition) String() string {
	if s, ok := repetitionNames[r]; ok {
		return s
	}
	return "unknown"
}

// Validate reports whether r is one of the defined modes.
func (r Repetition) Validate() error {
	if _, ok := repetitionNames[r]; !ok {
		return errors.New(errors.ErrCodeInvalidMode, "unknown repetition mode %d", int(r))
	}
	return nil
}

// ParseRepetition parses "disabled", "enabled" or "counted".
func ParseRepetition(s string) (Repetition, error) {
	for r, name := range repetitionNames {
		if name == s {
			return r, nil
		}
	}
	return Disabled, errors.New(errors.ErrCodeInvalidMode, "invalid repetition %q (must be one of: disabled, enabled, counted)", s)
}

// Options selects the generation strategy.
type Options struct {
	// Derivations records the rewrite sequence behind every string.
	Derivations bool

	// Repetition controls how ambiguity is reported.
	Repetition Repetition

	// LowMemory drops rewrite positions from recorded derivations.
	// Ignored unless Derivations is set.
	LowMemory bool
}

// Shape identifies which field of a [Result] is populated.
type Shape string

const (
	ShapeSet         Shape = "set"
	ShapeList        Shape = "list"
	ShapeCounts      Shape = "counts"
	ShapeDerivations Shape = "derivations"
)

// Shape returns the result shape o produces.
func (o Options) Shape() Shape {
	switch {
	case o.Derivations:
		return ShapeDerivations
	case o.Repetition == Enabled:
		return ShapeList
	case o.Repetition == Counted:
		return ShapeCounts
	default:
		return ShapeSet
	}
}

// Stats describes the work done by one generation.
type Stats struct {
	Rewrites   int // strings expanded
	Successors int // successors queued
	Merged     int // insertions folded into a pending entry
	Discarded  int // non-terminal strings dropped when the last round ended
	Abandoned  int // strings dropped because none of their paths could grow
	Peak       int // largest worklist length observed
}

func (st *Stats) observe(n int) {
	if n > st.Peak {
		st.Peak = n
	}
}

func (st *Stats) merged(wl any) {
	if m, ok := wl.(interface{ Merged() int }); ok {
		st.Merged += m.Merged()
	}
}

// Result is the output of a [Generator]. Exactly one of the collection
// fields is set, as indicated by Shape.
type Result struct {
	Shape Shape
	Depth int

	Set         Set
	List        []string
	Counts      map[string]uint64
	Steps       Derivations[Step]
	Productions Derivations[Production]

	Stats Stats
}

// Strings returns the distinct strings of the result in ascending order.
func (r *Result) Strings() []string {
	switch r.Shape {
	case ShapeSet:
		return r.Set.Sorted()
	case ShapeList:
		out := slices.Clone(r.List)
		slices.Sort(out)
		return slices.Compact(out)
	case ShapeCounts:
		return sortedKeys(r.Counts)
	case ShapeDerivations:
		if r.Steps != nil {
			return r.Steps.Strings()
		}
		return r.Productions.Strings()
	}
	return nil
}

// Total returns the number of derivations the result accounts for. For a set
// that is its size, for a list its length, for counts the sum of all counts
// and for derivations the number of recorded paths.
func (r *Result) Total() uint64 {
	switch r.Shape {
	case ShapeSet:
		return uint64(len(r.Set))
	case ShapeList:
		return uint64(len(r.List))
	case ShapeCounts:
		var n uint64
		for _, c := range r.Counts {
			n += c
		}
		return n
	case ShapeDerivations:
		if r.Steps != nil {
			return uint64(r.Steps.Total())
		}
		return uint64(r.Productions.Total())
	}
	return 0
}

// LowMemory reports whether derivations were recorded without positions.
func (r *Result) LowMemory() bool {
	return r.Shape == ShapeDerivations && r.Steps == nil
}

// =============================================================================
// Strategies
// =============================================================================

// Generator enumerates the strings of a grammar up to a depth bound.
type Generator interface {
	Generate(g grammar.Grammar, depth int) (*Result, error)
}

// New returns the generation strategy selected by opts.
func New(opts Options) (Generator, error) {
	if err := opts.Repetition.Validate(); err != nil {
		return nil, err
	}
	switch opts.Shape() {
	case ShapeList:
		return listGenerator{}, nil
	case ShapeCounts:
		return countGenerator{}, nil
	case ShapeDerivations:
		if opts.LowMemory {
			return derivationGenerator[Production]{rep: opts.Repetition}, nil
		}
		return derivationGenerator[Step]{rep: opts.Repetition}, nil
	default:
		return setGenerator{}, nil
	}
}

// Generate is shorthand for New(opts) followed by Generate.
func Generate(g grammar.Grammar, depth int, opts Options) (*Result, error) {
	gen, err := New(opts)
	if err != nil {
		return nil, err
	}
	return gen.Generate(g, depth)
}

type setGenerator struct{}

func (setGenerator) Generate(g grammar.Grammar, depth int) (*Result, error) {
	r := &Result{Shape: ShapeSet, Depth: depth}
	set, err := unique(g, depth, &r.Stats)
	if err != nil {
		return nil, err
	}
	r.Set = set
	return r, nil
}

type listGenerator struct{}

func (listGenerator) Generate(g grammar.Grammar, depth int) (*Result, error) {
	r := &Result{Shape: ShapeList, Depth: depth}
	list, err := all(g, depth, &r.Stats)
	if err != nil {
		return nil, err
	}
	r.List = list
	return r, nil
}

type countGenerator struct{}

func (countGenerator) Generate(g grammar.Grammar, depth int) (*Result, error) {
	r := &Result{Shape: ShapeCounts, Depth: depth}
	counts, err := count(g, depth, &r.Stats)
	if err != nil {
		return nil, err
	}
	r.Counts = counts
	return r, nil
}

type derivationGenerator[R Record] struct {
	rep Repetition
}

func (d derivationGenerator[R]) Generate(g grammar.Grammar, depth int) (*Result, error) {
	r := &Result{Shape: ShapeDerivations, Depth: depth}
	out, err := derivations[R](g, depth, d.rep, &r.Stats)
	if err != nil {
		return nil, err
	}
	switch m := any(out).(type) {
	case Derivations[Step]:
		r.Steps = m
	case Derivations[Production]:
		r.Productions = m
	}
	return r, nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
