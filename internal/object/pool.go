package object

// Pool is a fixed-capacity arena of pre-allocated entity slots.
// Slots are created once and reused; the pool never grows.
type Pool[T Pooled] struct {
	slots []T
}

// NewPool allocates size slots using newFn.
func NewPool[T Pooled](size int, newFn func() T) *Pool[T] {
	slots := make([]T, size)
	for i := range slots {
		slots[i] = newFn()
	}
	return &Pool[T]{slots: slots}
}

// Acquire returns the first free slot in index order.
// ok is false when every slot is active; callers treat that as a silent no-op.
func (p *Pool[T]) Acquire() (slot T, ok bool) {
	for _, s := range p.slots {
		if s.IsFree() {
			return s, true
		}
	}
	var zero T
	return zero, false
}

// Slots returns every slot, free or active, in index order.
// The slice is owned by the pool and must not be modified.
func (p *Pool[T]) Slots() []T {
	return p.slots
}

// Len returns the pool capacity.
func (p *Pool[T]) Len() int {
	return len(p.slots)
}

// Active returns the number of slots currently in use.
func (p *Pool[T]) Active() int {
	n := 0
	for _, s := range p.slots {
		if !s.IsFree() {
			n++
		}
	}
	return n
}

// ResetAll frees every slot.
func (p *Pool[T]) ResetAll() {
	for _, s := range p.slots {
		s.Reset()
	}
}
