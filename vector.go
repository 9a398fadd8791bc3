package hybrid

import (
	"iter"

	"github.com/google/uuid"
)

// New constructs an empty, inline-backed vector with inline capacity n. No
// element storage is allocated until the first append.
func New[T any](n int, opts ...Option) (*Vector[T], error) {
	if n <= 0 {
		return nil, ErrInvalidCapacity
	}
	cfg, err := resolveConfig[T](applyOptions(opts))
	if err != nil {
		return nil, err
	}
	if cfg.maxCapacity > 0 && cfg.maxCapacity < n {
		return nil, &AllocationError{Requested: n, Limit: cfg.maxCapacity}
	}
	if cfg.id == "" && cfg.observers.Enabled() {
		cfg.id = uuid.NewString()
	}
	return &Vector[T]{n: n, cfg: cfg}, nil
}

// MustNew is like New but panics on error.
func MustNew[T any](n int, opts ...Option) *Vector[T] {
	v, err := New[T](n, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// emptyLike returns an empty vector sharing v's inline capacity and
// configuration under a fresh identity.
func (v *Vector[T]) emptyLike() *Vector[T] {
	cfg := v.cfg
	if cfg.observers.Enabled() {
		cfg.id = uuid.NewString()
	}
	return &Vector[T]{n: v.inlineCap(), cfg: cfg}
}

func (v *Vector[T]) inlineCap() int {
	if v.n <= 0 {
		return DefaultInlineCapacity
	}
	return v.n
}

// ID returns the identifier reported in transition events.
func (v *Vector[T]) ID() string {
	return v.cfg.id
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.size
}

// Cap returns the inline capacity while inline, else the heap slot count.
func (v *Vector[T]) Cap() int {
	if heap, ok := v.store.(*heapStorage[T]); ok {
		return len(heap.slots)
	}
	return v.inlineCap()
}

// InlineCap returns the inline capacity N.
func (v *Vector[T]) InlineCap() int {
	return v.inlineCap()
}

// Mode returns the active storage representation.
func (v *Vector[T]) Mode() Mode {
	if v.store == nil {
		return Inline
	}
	return v.store.mode()
}

// IsInline reports whether elements are held in the inline block.
func (v *Vector[T]) IsInline() bool {
	return v.Mode() == Inline
}

// Stats returns the current shape of the vector.
func (v *Vector[T]) Stats() Stats {
	return Stats{
		Size:           v.size,
		Capacity:       v.Cap(),
		InlineCapacity: v.inlineCap(),
		Mode:           v.Mode(),
	}
}

// Append adds value at the end, migrating to a larger representation first
// when the current one is full. On error the vector is unchanged.
func (v *Vector[T]) Append(value T) error {
	var moved transition
	if v.size == v.Cap() {
		var err error
		if moved, err = v.grow(); err != nil {
			return err
		}
	}
	v.buffer()[v.size] = value
	v.size++
	if moved.kind != "" {
		v.notify(moved)
	}
	return nil
}

// RemoveLast removes the last element and ends its lifetime.
func (v *Vector[T]) RemoveLast() error {
	value, err := v.removeLast()
	if err != nil {
		return err
	}
	v.dropValue(value)
	return nil
}

// Pop removes the last element and returns it to the caller, who takes over
// its ownership; the drop hook is not run.
func (v *Vector[T]) Pop() (T, error) {
	return v.removeLast()
}

func (v *Vector[T]) removeLast() (T, error) {
	var zero T
	if v.size == 0 {
		return zero, ErrEmpty
	}
	block, err := v.demotionBlock()
	if err != nil {
		return zero, err
	}
	slots := v.buffer()
	last := slots[v.size-1]
	slots[v.size-1] = zero
	v.size--
	if block != nil {
		v.demote(block)
	}
	return last, nil
}

// At returns a copy of the element at index.
func (v *Vector[T]) At(index int) (T, error) {
	var zero T
	if index < 0 || index >= v.size {
		return zero, indexError(index, v.size)
	}
	return v.buffer()[index], nil
}

// Ref returns a pointer to the element at index for in-place mutation. The
// pointer is invalidated by any mutating call.
func (v *Vector[T]) Ref(index int) (*T, error) {
	if index < 0 || index >= v.size {
		return nil, indexError(index, v.size)
	}
	return &v.buffer()[index], nil
}

// Set overwrites the element at index.
func (v *Vector[T]) Set(index int, value T) error {
	ref, err := v.Ref(index)
	if err != nil {
		return err
	}
	*ref = value
	return nil
}

// All yields index and element pairs in order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(i, v.buffer()[i]) {
				return
			}
		}
	}
}

// Values yields elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < v.size; i++ {
			if !yield(v.buffer()[i]) {
				return
			}
		}
	}
}

// Slice returns a copy of the live elements.
func (v *Vector[T]) Slice() []T {
	out := make([]T, v.size)
	if v.size > 0 {
		copy(out, v.buffer()[:v.size])
	}
	return out
}

// Release ends the lifetime of every element in index order and returns the
// vector to the empty inline state, dropping any heap storage. The vector
// stays usable.
func (v *Vector[T]) Release() {
	if previous, ok := v.release(); ok {
		v.notify(transition{kind: Demote, from: Heap, previous: previous})
	}
}

// release empties the vector and reports the heap capacity it dropped, if
// any, leaving notification to the caller.
func (v *Vector[T]) release() (int, bool) {
	if v.size > 0 {
		slots := v.buffer()
		for i := 0; i < v.size; i++ {
			v.dropValue(slots[i])
		}
		clear(slots[:v.size])
	}
	v.size = 0
	heap, ok := v.store.(*heapStorage[T])
	if !ok {
		return 0, false
	}
	v.store = nil
	return len(heap.slots), true
}

func (v *Vector[T]) dropValue(value T) {
	if v.cfg.drop != nil {
		v.cfg.drop(value)
	}
}

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b *Vector[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.size; i++ {
		if a.buffer()[i] != b.buffer()[i] {
			return false
		}
	}
	return true
}
