// Package grammar holds the rule table consumed by the derivation engine.
//
// A [Grammar] maps a single-byte nonterminal to its ordered list of
// productions. Any byte that is a key of the table is a nonterminal wherever
// it appears in a production; every other byte is terminal. The start symbol
// is [Start].
//
// Well-formedness is not checked: a table missing [Start], a production that
// mentions a byte that is not a key, or a key with no productions are all
// accepted and simply produce whatever the engine derives from them.
//
// # Documents
//
// Grammars can be stored as TOML or JSON documents holding a single "rules"
// table whose keys are one-byte strings:
//
//	[rules]
//	S = ["0A", "1B"]
//	A = ["0AA", "1S", "1"]
//	B = ["1BB", "0S", "0"]
//
// Use [Load] to read a file (format chosen by extension) or [Decode] for any
// io.Reader.
package grammar

import (
	"encoding/json"
	"slices"

	"github.com/FlyingWolFox/cfg-string-generator/pkg/errors"
)

// Start is the start symbol every derivation begins from.
const Start byte = 'S'

// Grammar maps a nonterminal to its productions, in the order they are tried.
type Grammar map[byte][]string

// Demo returns the sample grammar used by the demonstration driver: the
// binary strings with as many zeros as ones.
func Demo() Grammar {
	return Grammar{
		'S': {"0A", "1B"},
		'A': {"0AA", "1S", "1"},
		'B': {"1BB", "0S", "0"},
	}
}

// Symbols returns the nonterminals in ascending byte order.
func (g Grammar) Symbols() []byte {
	syms := make([]byte, 0, len(g))
	for c := range g {
		syms = append(syms, c)
	}
	slices.Sort(syms)
	return syms
}

// Productions returns the productions of sym and whether sym is a nonterminal.
func (g Grammar) Productions(sym byte) ([]string, bool) {
	alts, ok := g[sym]
	return alts, ok
}

// Len returns the total number of productions across all nonterminals.
func (g Grammar) Len() int {
	n := 0
	for _, alts := range g {
		n += len(alts)
	}
	return n
}

// Clone returns a deep copy of g.
func (g Grammar) Clone() Grammar {
	out := make(Grammar, len(g))
	for c, alts := range g {
		out[c] = slices.Clone(alts)
	}
	return out
}

// Index builds the nonterminal lookup table for g.
func (g Grammar) Index() *Index {
	var ix Index
	for c := range g {
		ix[c] = true
	}
	return &ix
}

// IsTerminal reports whether s contains no nonterminal of g.
func (g Grammar) IsTerminal(s string) bool {
	return g.Index().Leftmost(s) < 0
}

// MarshalJSON encodes g as an object keyed by one-byte strings.
// Keys come out sorted, so the encoding is canonical and usable as a hash input.
func (g Grammar) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.table())
}

// UnmarshalJSON decodes an object keyed by one-byte strings.
func (g *Grammar) UnmarshalJSON(data []byte) error {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out, err := fromTable(raw)
	if err != nil {
		return err
	}
	*g = out
	return nil
}

func (g Grammar) table() map[string][]string {
	out := make(map[string][]string, len(g))
	for c, alts := range g {
		if alts == nil {
			alts = []string{}
		}
		out[string([]byte{c})] = alts
	}
	return out
}

func fromTable(raw map[string][]string) (Grammar, error) {
	g := make(Grammar, len(raw))
	for key, alts := range raw {
		if err := errors.ValidateSymbol(key); err != nil {
			return nil, err
		}
		g[key[0]] = alts
	}
	return g, nil
}

// Index is a byte-indexed nonterminal membership table.
type Index [256]bool

// Has reports whether c is a nonterminal.
func (ix *Index) Has(c byte) bool {
	return ix[c]
}

// Leftmost returns the position of the first nonterminal in s, or -1 when s is terminal.
func (ix *Index) Leftmost(s string) int {
	for i := 0; i < len(s); i++ {
		if ix[s[i]] {
			return i
		}
	}
	return -1
}
