package hybrid

func (v *Vector[T]) copyValue(value T) (T, error) {
	if v.cfg.copier != nil {
		return v.cfg.copier(value)
	}
	if cloner, ok := any(value).(Cloner[T]); ok {
		return cloner.Clone(), nil
	}
	return value, nil
}

// Clone returns an independent copy built by appending a copy of each element
// in order, so the copy grows through the same path as ordinary use. If an
// element copy fails the partial copy is released and the error returned.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	out := v.emptyLike()
	if err := out.appendCopies(v); err != nil {
		out.Release()
		return nil, err
	}
	return out, nil
}

func (v *Vector[T]) appendCopies(src *Vector[T]) error {
	for i := 0; i < src.size; i++ {
		value, err := src.copyValue(src.buffer()[i])
		if err != nil {
			return wrapCopyError(i, err)
		}
		if err := v.Append(value); err != nil {
			return err
		}
	}
	return nil
}

// Assign replaces the contents of v with copies of the elements of src. The
// existing elements are removed one at a time from the end, letting the
// vector demote as it shrinks. Assigning a vector to itself does nothing.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}
	for v.size > 0 {
		if err := v.RemoveLast(); err != nil {
			return err
		}
	}
	return v.appendCopies(src)
}

// Move transfers the contents of v into a new vector and leaves v empty and
// inline. Heap storage is handed over without copying; inline elements are
// moved one by one into the new vector's own block.
func (v *Vector[T]) Move() *Vector[T] {
	out := v.emptyLike()
	out.take(v)
	return out
}

// MoveFrom releases the elements of v and takes over the contents of src,
// leaving src empty and inline. Both vectors must share an inline capacity.
// Observers see at most one event, describing the change in v's mode.
// Moving a vector into itself does nothing.
func (v *Vector[T]) MoveFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if v.inlineCap() != src.inlineCap() {
		return ErrCapacityMismatch
	}
	previous, wasHeap := v.release()
	v.take(src)
	switch {
	case wasHeap && v.Mode() == Inline:
		v.notify(transition{kind: Demote, from: Heap, previous: previous})
	case !wasHeap && v.Mode() == Heap:
		v.notify(transition{kind: Promote, from: Inline, previous: v.inlineCap()})
	}
	return nil
}

// take adopts the elements of src into v, which must be empty.
func (v *Vector[T]) take(src *Vector[T]) {
	switch s := src.store.(type) {
	case *heapStorage[T]:
		if own, ok := v.store.(*inlineStorage[T]); ok {
			v.spare = own.slots
		}
		v.store = s
		v.size = src.size
		src.store = nil
		src.size = 0
	case *inlineStorage[T]:
		if src.size == 0 {
			return
		}
		block := v.buffer()
		transplant(block, s.slots, src.size)
		v.size = src.size
		src.size = 0
	}
}
