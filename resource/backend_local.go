package resource

// LocalBackend is an in-memory slot store indexed by handle-1.
// Slots are never recycled: a dropped slot stays behind as a tombstone.
type LocalBackend[T any] struct {
	entries []entry[T]
	live    int
}

type entry[T any] struct {
	value T
	valid bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend[T any]() *LocalBackend[T] {
	return &LocalBackend[T]{
		entries: make([]entry[T], 0, 64),
	}
}

// Create stores a value and returns the next handle.
func (b *LocalBackend[T]) Create(value T) Handle {
	b.entries = append(b.entries, entry[T]{value: value, valid: true})
	b.live++
	return Handle(len(b.entries))
}

// Get retrieves a live value by handle.
func (b *LocalBackend[T]) Get(handle Handle) (*T, bool) {
	if handle == 0 {
		return nil, false
	}

	idx := int(handle) - 1
	if idx >= len(b.entries) {
		return nil, false
	}

	e := &b.entries[idx]
	if !e.valid {
		return nil, false
	}
	return &e.value, true
}

// State reports the lifecycle position of handle.
func (b *LocalBackend[T]) State(handle Handle) State {
	if handle == 0 {
		return Unallocated
	}

	idx := int(handle) - 1
	if idx >= len(b.entries) {
		return Unallocated
	}
	if b.entries[idx].valid {
		return Live
	}
	return Deleted
}

// Drop turns a live slot into a tombstone and returns its value.
func (b *LocalBackend[T]) Drop(handle Handle) (T, bool) {
	var zero T
	if b.State(handle) != Live {
		return zero, false
	}

	e := &b.entries[handle-1]
	value := e.value
	e.valid = false
	e.value = zero
	b.live--

	return value, true
}

// Len returns the number of live values.
func (b *LocalBackend[T]) Len() int {
	return b.live
}

// Each iterates over live values in handle order.
func (b *LocalBackend[T]) Each(fn func(Handle, *T) bool) {
	for i := range b.entries {
		if b.entries[i].valid {
			if !fn(Handle(i+1), &b.entries[i].value) {
				break
			}
		}
	}
}
