package resource

import (
	"fmt"

	"github.com/wippyai/mockgl/errors"
)

// Table issues handles for one object kind and tracks their lifecycle.
type Table[T any] struct {
	backend   *LocalBackend[T]
	observers []Observer
	phase     errors.Phase
	noun      string
}

// NewTable creates a table whose conditions are tagged with phase and name
// objects as noun ("buffer 3").
func NewTable[T any](phase errors.Phase, noun string) *Table[T] {
	return &Table[T]{
		backend: NewLocalBackend[T](),
		phase:   phase,
		noun:    noun,
	}
}

// Allocate issues n fresh handles in order, each with zero-valued state.
// A negative n reports invalid-value and issues nothing.
func (t *Table[T]) Allocate(op string, n int32, r errors.Reporter) []Handle {
	if n < 0 {
		r.Report(errors.NegativeCount(t.phase, op, "count", int64(n)))
		return nil
	}

	handles := make([]Handle, n)
	for i := range handles {
		var zero T
		handles[i] = t.backend.Create(zero)
		t.notify(Event{Type: EventCreated, Handle: handles[i]})
	}
	return handles
}

// Free releases each handle independently, in order, and returns the ones
// that were actually freed. A deleted handle reports a double-free warning;
// an unallocated one reports invalid-value. Handle 0 is ignored.
func (t *Table[T]) Free(op string, handles []Handle, r errors.Reporter) []Handle {
	freed := make([]Handle, 0, len(handles))
	for _, h := range handles {
		switch t.backend.State(h) {
		case Deleted:
			r.Report(errors.DoubleFree(t.phase, op, uint32(h)))
		case Unallocated:
			if h == 0 {
				continue
			}
			r.Report(errors.New(t.phase, errors.KindInvalidValue).
				Op(op).
				Handle(uint32(h)).
				Detail("attempted to free %s", t.Describe(h)).
				Build())
		case Live:
			t.backend.Drop(h)
			freed = append(freed, h)
			t.notify(Event{Type: EventDropped, Handle: h})
		}
	}
	return freed
}

// Get retrieves the state of a live handle.
func (t *Table[T]) Get(h Handle) (*T, bool) {
	return t.backend.Get(h)
}

// Contains reports whether h is live.
func (t *Table[T]) Contains(h Handle) bool {
	return t.backend.State(h) == Live
}

// State reports the lifecycle position of h.
func (t *Table[T]) State(h Handle) State {
	return t.backend.State(h)
}

// Leaked returns every live handle in ascending order.
func (t *Table[T]) Leaked() []Handle {
	var out []Handle
	t.backend.Each(func(h Handle, _ *T) bool {
		out = append(out, h)
		return true
	})
	return out
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	return t.backend.Len()
}

// Subscribe adds an observer for lifecycle events.
func (t *Table[T]) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

// Describe names the lifecycle position of h for diagnostics.
func (t *Table[T]) Describe(h Handle) string {
	switch t.backend.State(h) {
	case Live:
		return fmt.Sprintf("%s %d", t.noun, h)
	case Deleted:
		return fmt.Sprintf("%s %d that has already been freed", t.noun, h)
	default:
		return fmt.Sprintf("unallocated %s %d", t.noun, h)
	}
}

func (t *Table[T]) notify(e Event) {
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
