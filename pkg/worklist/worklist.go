// Package worklist provides the FIFO work queues that drive derivation.
//
// A [Worklist] holds pending partial strings keyed by K with an attached
// value V (a multiplicity, a list of derivation paths, or nothing at all).
// What happens when a key that is already pending is added again is the
// queue's merge policy:
//
//   - [Plain]: no merging; every insertion is a separate entry.
//   - [Keyed] with [KeepFirst]: the pending entry wins, the insertion is dropped.
//   - [Keyed] with [Sum]: the values are added (multiplicity counting).
//   - [Keyed] with [Concat]: the inserted list is appended to the pending one.
//
// Keyed queues order entries by the first insertion of a key while it is
// pending. Once an entry is taken its key is forgotten, so a later insertion
// of the same key starts a fresh entry at the back.
//
// Boundary entries ([Worklist.AddBoundary]) are control markers that split
// the queue into rounds. They are never merged and carry no key or value.
// Merging never crosses a boundary: an insertion only merges into an entry
// queued after the most recent boundary, otherwise it starts a new entry in
// the current round.
//
// Worklists are not safe for concurrent use.
package worklist

// Entry is one item taken from a worklist.
type Entry[K comparable, V any] struct {
	Key      K
	Value    V
	Boundary bool
}

// Worklist is an ordered queue with a merge policy for duplicate keys.
type Worklist[K comparable, V any] interface {
	// Add submits a key with its value. It reports whether a new entry was
	// created (false when the insertion was merged into a pending entry).
	Add(key K, value V) bool

	// AddBoundary appends a round boundary marker.
	AddBoundary()

	// Take removes and returns the earliest entry together with the value
	// accumulated for it. It reports false only when the worklist is empty.
	Take() (Entry[K, V], bool)

	// Len returns the number of pending entries, boundaries included.
	Len() int
}

// Merge combines the value of a pending entry with the value of a duplicate insertion.
type Merge[V any] func(pending, incoming V) V

// KeepFirst keeps the pending value and drops the incoming one.
func KeepFirst[V any](pending, _ V) V { return pending }

// Sum adds multiplicities.
func Sum(pending, incoming uint64) uint64 { return pending + incoming }

// Concat appends the incoming list to the pending one.
func Concat[E any](pending, incoming []E) []E { return append(pending, incoming...) }

// =============================================================================
// Plain
// =============================================================================

// Plain is a FIFO worklist that keeps every insertion.
type Plain[K comparable, V any] struct {
	q *ring[Entry[K, V]]
}

// NewPlain creates an empty plain worklist.
func NewPlain[K comparable, V any]() *Plain[K, V] {
	return &Plain[K, V]{q: newRing[Entry[K, V]]()}
}

// Add always appends a new entry.
func (p *Plain[K, V]) Add(key K, value V) bool {
	p.q.push(Entry[K, V]{Key: key, Value: value})
	return true
}

// AddBoundary appends a round boundary marker.
func (p *Plain[K, V]) AddBoundary() {
	p.q.push(Entry[K, V]{Boundary: true})
}

// Take removes and returns the earliest entry.
func (p *Plain[K, V]) Take() (Entry[K, V], bool) {
	return p.q.pop()
}

// Len returns the number of pending entries.
func (p *Plain[K, V]) Len() int {
	return p.q.len()
}

// =============================================================================
// Keyed
// =============================================================================

// roundKey identifies a pending entry: its key and the round it was queued in.
type roundKey[K comparable] struct {
	key   K
	round int
}

type slot[K comparable] struct {
	roundKey[K]
	boundary bool
}

// Keyed is a FIFO worklist holding at most one pending entry per key and round.
type Keyed[K comparable, V any] struct {
	order   *ring[slot[K]]
	pending map[roundKey[K]]V
	merge   Merge[V]
	round   int // boundaries added so far
	merged  int
}

// NewKeyed creates an empty keyed worklist with the given merge policy.
func NewKeyed[K comparable, V any](merge Merge[V]) *Keyed[K, V] {
	return &Keyed[K, V]{
		order:   newRing[slot[K]](),
		pending: make(map[roundKey[K]]V),
		merge:   merge,
	}
}

// NewSet creates a keyed worklist that drops duplicate insertions.
func NewSet[K comparable]() *Keyed[K, struct{}] {
	return NewKeyed[K, struct{}](KeepFirst[struct{}])
}

// NewCounting creates a keyed worklist that sums multiplicities of duplicate insertions.
// Take returns the accumulated multiplicity of the removed key as the entry value.
func NewCounting[K comparable]() *Keyed[K, uint64] {
	return NewKeyed[K, uint64](Sum)
}

// NewConservative creates a keyed worklist of lists that keeps the first list seen for a key.
func NewConservative[K comparable, E any]() *Keyed[K, []E] {
	return NewKeyed[K, []E](KeepFirst[[]E])
}

// NewAdditive creates a keyed worklist of lists that concatenates duplicate insertions.
func NewAdditive[K comparable, E any]() *Keyed[K, []E] {
	return NewKeyed[K, []E](Concat[E])
}

// Add inserts key or merges value into its entry pending in the current round.
func (w *Keyed[K, V]) Add(key K, value V) bool {
	rk := roundKey[K]{key: key, round: w.round}
	if old, ok := w.pending[rk]; ok {
		w.pending[rk] = w.merge(old, value)
		w.merged++
		return false
	}
	w.pending[rk] = value
	w.order.push(slot[K]{roundKey: rk})
	return true
}

// AddBoundary appends a round boundary marker and starts a new round.
func (w *Keyed[K, V]) AddBoundary() {
	w.order.push(slot[K]{boundary: true})
	w.round++
}

// Take removes the earliest entry and returns it with its accumulated value.
func (w *Keyed[K, V]) Take() (Entry[K, V], bool) {
	s, ok := w.order.pop()
	if !ok {
		return Entry[K, V]{}, false
	}
	if s.boundary {
		return Entry[K, V]{Boundary: true}, true
	}
	v := w.pending[s.roundKey]
	delete(w.pending, s.roundKey)
	return Entry[K, V]{Key: s.key, Value: v}, true
}

// Len returns the number of pending entries, boundaries included.
func (w *Keyed[K, V]) Len() int {
	return w.order.len()
}

// Merged returns how many insertions were folded into pending entries so far.
func (w *Keyed[K, V]) Merged() int {
	return w.merged
}

// Ensure both implementations satisfy Worklist.
var (
	_ Worklist[string, struct{}] = (*Plain[string, struct{}])(nil)
	_ Worklist[string, uint64]   = (*Keyed[string, uint64])(nil)
)
