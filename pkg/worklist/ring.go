package worklist

const minRingSize = 3

// ring is a growable FIFO over a power-of-two buffer.
// size is always 2^n - 1 and doubles as the index mask.
type ring[T any] struct {
	items      []T
	size       int
	head, tail int
}

func newRing[T any]() *ring[T] {
	return &ring[T]{
		items: make([]T, minRingSize+1),
		size:  minRingSize,
	}
}

func (r *ring[T]) len() int {
	return (r.tail + r.size + 1 - r.head) & r.size
}

func (r *ring[T]) push(item T) {
	r.items[r.tail] = item
	r.tail = (r.tail + 1) & r.size
	if r.tail == r.head {
		r.grow()
	}
}

func (r *ring[T]) pop() (T, bool) {
	var zero T
	if r.head == r.tail {
		return zero, false
	}

	item := r.items[r.head]
	r.items[r.head] = zero
	r.head = (r.head + 1) & r.size

	if r.head == 0 && r.size > minRingSize && (r.tail<<2) <= r.size {
		r.shrink()
	}
	return item, true
}

func (r *ring[T]) grow() {
	items := make([]T, (r.size+1)<<1)
	copy(items, r.items[r.head:])
	if r.head > 0 {
		copy(items[r.size+1-r.head:], r.items[:r.head])
	}
	r.head = 0
	r.tail = r.size + 1
	r.size += r.tail
	r.items = items
}

// shrink halves the buffer once the live window has wrapped to the front and
// occupies at most a quarter of it.
func (r *ring[T]) shrink() {
	size := ringSize(r.tail << 1)
	items := make([]T, size+1)
	copy(items, r.items[:r.tail])
	r.items = items
	r.size = size
}

func ringSize(length int) int {
	if length <= minRingSize {
		return minRingSize
	}
	length |= length >> 1
	length |= length >> 2
	length |= length >> 4
	length |= length >> 8
	length |= length >> 16
	return length | length>>32
}
