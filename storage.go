package hybrid

import (
	"fmt"
	"math"
	"unsafe"
)

// storage is the active representation. Exactly one of the two cases is held
// by a vector, so the mode is the dynamic type and cannot drift from the data.
type storage[T any] interface {
	mode() Mode
	// buffer returns every slot; live elements occupy [0, size).
	buffer() []T
}

type inlineStorage[T any] struct {
	slots []T
}

func (s *inlineStorage[T]) mode() Mode   { return Inline }
func (s *inlineStorage[T]) buffer() []T { return s.slots }

type heapStorage[T any] struct {
	slots []T
}

func (s *heapStorage[T]) mode() Mode   { return Heap }
func (s *heapStorage[T]) buffer() []T { return s.slots }

// transplant moves the first n elements of src into dst and clears the source
// slots, so each element has a single owner once it returns.
func transplant[T any](dst, src []T, n int) {
	copy(dst[:n], src[:n])
	clear(src[:n])
}

func maxSlots[T any]() int {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return math.MaxInt
	}
	return int(uintptr(math.MaxInt) / size)
}

// allocate returns n zeroed slots or an AllocationError. Nothing is moved
// before the allocation succeeds.
func (v *Vector[T]) allocate(n int) (slots []T, err error) {
	if n <= 0 || n > maxSlots[T]() {
		return nil, &AllocationError{Requested: n, Err: fmt.Errorf("slot count overflows address space")}
	}
	if limit := v.cfg.maxCapacity; limit > 0 && n > limit {
		return nil, &AllocationError{Requested: n, Limit: limit}
	}
	defer func() {
		if r := recover(); r != nil {
			slots = nil
			err = &AllocationError{Requested: n, Err: fmt.Errorf("%v", r)}
		}
	}()
	return make([]T, n), nil
}

// inlineBlock returns the retained inline block, creating it when the vector
// has never held elements.
func (v *Vector[T]) inlineBlock() []T {
	if v.spare != nil {
		block := v.spare
		v.spare = nil
		return block
	}
	return make([]T, v.inlineCap())
}

func (v *Vector[T]) buffer() []T {
	if v.store == nil {
		v.store = &inlineStorage[T]{slots: v.inlineBlock()}
	}
	return v.store.buffer()
}

// transition records a completed migration so it can be reported once the
// triggering operation has finished.
type transition struct {
	kind     TransitionKind
	from     Mode
	previous int
}

// grow makes room for one more element. Promotion sizes the heap buffer at
// max(size*2, N*2); heap growth doubles the current capacity.
func (v *Vector[T]) grow() (transition, error) {
	switch s := v.store.(type) {
	case *heapStorage[T]:
		previous := len(s.slots)
		if previous > math.MaxInt/2 {
			return transition{}, &AllocationError{Requested: previous, Err: fmt.Errorf("capacity doubling overflows int")}
		}
		slots, err := v.allocate(previous * 2)
		if err != nil {
			return transition{}, err
		}
		transplant(slots, s.slots, v.size)
		v.store = &heapStorage[T]{slots: slots}
		return transition{kind: Grow, from: Heap, previous: previous}, nil
	default:
		n := v.inlineCap()
		if v.size > math.MaxInt/2 || n > math.MaxInt/2 {
			return transition{}, &AllocationError{Requested: max(v.size, n), Err: fmt.Errorf("capacity doubling overflows int")}
		}
		slots, err := v.allocate(max(v.size*2, n*2))
		if err != nil {
			return transition{}, err
		}
		block := v.buffer()
		transplant(slots, block, v.size)
		v.spare = block
		v.store = &heapStorage[T]{slots: slots}
		return transition{kind: Promote, from: Inline, previous: n}, nil
	}
}

// demote moves the remaining elements back into the inline block once a
// heap-backed vector holds N elements or fewer. block must have been secured
// by the caller.
func (v *Vector[T]) demote(block []T) {
	heap, ok := v.store.(*heapStorage[T])
	if !ok || v.size > v.inlineCap() {
		return
	}
	previous := len(heap.slots)
	transplant(block, heap.slots, v.size)
	v.store = &inlineStorage[T]{slots: block}
	v.notify(transition{kind: Demote, from: Heap, previous: previous})
}

// demotionBlock secures the inline block a removal would need, before that
// removal takes effect.
func (v *Vector[T]) demotionBlock() ([]T, error) {
	if _, ok := v.store.(*heapStorage[T]); !ok || v.size-1 > v.inlineCap() {
		return nil, nil
	}
	if v.spare != nil {
		block := v.spare
		v.spare = nil
		return block, nil
	}
	return v.allocate(v.inlineCap())
}
