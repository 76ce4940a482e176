// Package derive enumerates the strings a context-free grammar derives within
// a bounded number of leftmost rewrite steps.
//
// # Algorithms
//
// Every algorithm repeatedly takes a partial string from a worklist, finds its
// leftmost nonterminal and queues one successor per production of that
// nonterminal, in the order the productions are listed. Strings without
// nonterminals are terminal and go to a collector instead.
//
// Depth is controlled in one of two ways:
//
//   - Controlled depth (plain string output): the worklist is split into
//     rounds by boundary entries. Each round expands everything queued by the
//     previous one, and after depth rounds the remaining entries are drained,
//     keeping only those that are already terminal.
//   - Free depth (derivation output): every queued string carries the
//     derivation paths that reached it and each path stops growing once it
//     holds depth records. A string whose paths are all exhausted is dropped.
//
// # Output shapes
//
// The shape of the result is chosen by [Options] when the [Generator] is
// built:
//
//   - [Unique]: the set of distinct terminal strings.
//   - [All]: every terminal string, once per derivation that produced it.
//   - [Count]: each terminal string with its number of derivations.
//   - [Derive]: each terminal string with the derivation paths that produced
//     it, recorded as [Step] values or, to save memory, bare [Production]s.
//
// # Growth
//
// The number of partial strings grows exponentially with depth for most
// grammars and there is no limit besides depth itself. Pick a depth the
// available memory can sustain.
//
// # Example
//
//	g := grammar.Demo()
//	set, err := derive.Unique(g, 4)
//	if err != nil {
//	    return err
//	}
//	for _, s := range set.Sorted() {
//	    fmt.Println(s)
//	}
package derive
