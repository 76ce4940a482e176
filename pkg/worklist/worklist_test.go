package worklist

import (
	"fmt"
	"reflect"
	"testing"
)

func TestRingSize(t *testing.T) {
	for i := 0; i <= 33; i++ {
		t.Run(fmt.Sprintf("%d elements", i), func(t *testing.T) {
			size := ringSize(i)
			if size < minRingSize {
				t.Errorf("expecting at least %d, got %d", minRingSize, size)
			}
			if size&(size+1) != 0 {
				t.Errorf("expecting 2^n - 1, got %b", size)
			}
			if size < i {
				t.Errorf("expecting size >= %d, got %d", i, size)
			}
		})
	}
}

func TestRingGrowAndShrink(t *testing.T) {
	r := newRing[int]()
	for i := 0; i < 100; i++ {
		r.push(i)
	}
	if r.len() != 100 {
		t.Fatalf("len = %d, want 100", r.len())
	}
	grown := r.size

	for i := 0; i < 100; i++ {
		v, ok := r.pop()
		if !ok || v != i {
			t.Fatalf("pop %d = %d, %v", i, v, ok)
		}
	}
	if _, ok := r.pop(); ok {
		t.Error("pop on empty ring should fail")
	}
	if r.size > grown {
		t.Errorf("size grew while draining: %d > %d", r.size, grown)
	}
}

func TestRingWrapAround(t *testing.T) {
	r := newRing[int]()
	next, want := 0, 0
	// keep the window small while the indices wrap many times
	for round := 0; round < 50; round++ {
		for i := 0; i < 3; i++ {
			r.push(next)
			next++
		}
		for i := 0; i < 2; i++ {
			v, _ := r.pop()
			if v != want {
				t.Fatalf("pop = %d, want %d", v, want)
			}
			want++
		}
	}
	if r.len() != next-want {
		t.Errorf("len = %d, want %d", r.len(), next-want)
	}
}

func drain[K comparable, V any](w Worklist[K, V]) []Entry[K, V] {
	var out []Entry[K, V]
	for w.Len() > 0 {
		e, ok := w.Take()
		if !ok {
			break
		}
		out = append(out, e)
	}
	return out
}

func TestPlainKeepsDuplicates(t *testing.T) {
	w := NewPlain[string, struct{}]()
	w.Add("a", struct{}{})
	w.Add("b", struct{}{})
	if !w.Add("a", struct{}{}) {
		t.Error("plain Add should always report a new entry")
	}

	var keys []string
	for _, e := range drain[string, struct{}](w) {
		keys = append(keys, e.Key)
	}
	if !reflect.DeepEqual(keys, []string{"a", "b", "a"}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestTakeEmpty(t *testing.T) {
	if _, ok := NewPlain[string, int]().Take(); ok {
		t.Error("Take on empty plain worklist should fail")
	}
	if _, ok := NewSet[string]().Take(); ok {
		t.Error("Take on empty keyed worklist should fail")
	}
}

func TestSetDropsDuplicates(t *testing.T) {
	w := NewSet[string]()
	if !w.Add("x", struct{}{}) {
		t.Error("first insertion should create an entry")
	}
	if w.Add("x", struct{}{}) {
		t.Error("duplicate insertion should be merged")
	}
	w.Add("y", struct{}{})

	if w.Len() != 2 {
		t.Errorf("Len = %d, want 2", w.Len())
	}
	if w.Merged() != 1 {
		t.Errorf("Merged = %d, want 1", w.Merged())
	}

	e, _ := w.Take()
	if e.Key != "x" {
		t.Errorf("first taken = %q, want x", e.Key)
	}
	// x is no longer pending, so it can be queued again behind y
	if !w.Add("x", struct{}{}) {
		t.Error("re-adding a taken key should create a new entry")
	}
	var keys []string
	for _, e := range drain[string, struct{}](w) {
		keys = append(keys, e.Key)
	}
	if !reflect.DeepEqual(keys, []string{"y", "x"}) {
		t.Errorf("keys = %v", keys)
	}
}

func TestCountingReturnsAccumulatedCount(t *testing.T) {
	w := NewCounting[string]()
	w.Add("ab", 1)
	w.Add("cd", 2)
	w.Add("ab", 3)

	e, ok := w.Take()
	if !ok || e.Key != "ab" || e.Value != 4 {
		t.Errorf("Take = %+v, %v; want ab with 4", e, ok)
	}
	e, _ = w.Take()
	if e.Key != "cd" || e.Value != 2 {
		t.Errorf("Take = %+v; want cd with 2", e)
	}
}

func TestConservativeKeepsFirstList(t *testing.T) {
	w := NewConservative[string, int]()
	w.Add("s", []int{1})
	w.Add("s", []int{2, 3})

	e, _ := w.Take()
	if !reflect.DeepEqual(e.Value, []int{1}) {
		t.Errorf("Value = %v, want [1]", e.Value)
	}
}

func TestAdditiveConcatenates(t *testing.T) {
	w := NewAdditive[string, int]()
	w.Add("s", []int{1})
	w.Add("t", []int{9})
	w.Add("s", []int{2, 3})

	e, _ := w.Take()
	if e.Key != "s" || !reflect.DeepEqual(e.Value, []int{1, 2, 3}) {
		t.Errorf("Take = %+v, want s with [1 2 3]", e)
	}
}

func TestBoundaryIsNeverMerged(t *testing.T) {
	for name, w := range map[string]Worklist[string, uint64]{
		"plain":    NewPlain[string, uint64](),
		"counting": NewCounting[string](),
	} {
		t.Run(name, func(t *testing.T) {
			w.Add("a", 1)
			w.AddBoundary()
			w.AddBoundary()
			w.Add("a", 1)

			entries := drain(w)
			var boundaries int
			for _, e := range entries {
				if e.Boundary {
					boundaries++
				}
			}
			if boundaries != 2 {
				t.Errorf("boundaries = %d, want 2", boundaries)
			}
			if !entries[1].Boundary || !entries[2].Boundary {
				t.Errorf("boundaries out of order: %+v", entries)
			}
		})
	}
}

func TestKeyedMergeStaysWithinRound(t *testing.T) {
	w := NewCounting[string]()
	w.Add("a", 1)
	w.AddBoundary()
	w.Add("a", 2) // next round: a fresh entry, not merged into the first
	w.Add("b", 1)
	w.Add("a", 3) // merges with the second a

	entries := drain[string, uint64](w)
	want := []Entry[string, uint64]{
		{Key: "a", Value: 1},
		{Boundary: true},
		{Key: "a", Value: 5},
		{Key: "b", Value: 1},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %+v, want %+v", entries, want)
	}
	if w.Merged() != 1 {
		t.Errorf("Merged = %d, want 1", w.Merged())
	}
}

func TestKeyedNeverMergesAcrossBoundary(t *testing.T) {
	tests := []struct {
		name string
		w    Worklist[string, []int]
		want [][]int
	}{
		{"conservative", NewConservative[string, int](), [][]int{{1}, {2}}},
		{"additive", NewAdditive[string, int](), [][]int{{1}, {2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.w.Add("s", []int{1})
			tt.w.AddBoundary()
			if !tt.w.Add("s", []int{2}) {
				t.Error("insertion after a boundary should start a new entry")
			}

			var got [][]int
			for _, e := range drain(tt.w) {
				if !e.Boundary {
					got = append(got, e.Value)
				}
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("values = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetDedupesPerRound(t *testing.T) {
	w := NewSet[string]()
	w.Add("x", struct{}{})
	w.Add("x", struct{}{})
	w.AddBoundary()
	w.Add("x", struct{}{})
	w.Add("x", struct{}{})

	var keys []string
	for _, e := range drain[string, struct{}](w) {
		if e.Boundary {
			keys = append(keys, "|")
			continue
		}
		keys = append(keys, e.Key)
	}
	if !reflect.DeepEqual(keys, []string{"x", "|", "x"}) {
		t.Errorf("keys = %v, want [x | x]", keys)
	}
}
