// Package binding tracks which object is attached to each bind target.
//
// The target set is closed and small, so the table is a fixed array indexed
// by Target.
package binding

import (
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/resource"
)

// Table holds the current handle of every target; 0 means unbound.
type Table struct {
	slots [NumTargets]resource.Handle
}

// NewTable returns a table with every target unbound.
func NewTable() *Table {
	return &Table{}
}

// Bind attaches h to t. Handle 0 clears the target. A handle that is not
// live reports invalid-value and leaves the table unchanged; the detail
// distinguishes freed handles from never-allocated ones.
func (b *Table) Bind(op string, t Target, h resource.Handle, objects resource.Liveness, r errors.Reporter) bool {
	if h == 0 {
		b.slots[t] = 0
		return true
	}

	switch objects.State(h) {
	case resource.Live:
		b.slots[t] = h
		return true
	case resource.Deleted:
		r.Report(errors.New(errors.PhaseBinding, errors.KindInvalidValue).
			Op(op).
			Handle(uint32(h)).
			Detail("attempted to bind buffer %d to %s that has already been freed", h, t).
			Build())
	default:
		r.Report(errors.New(errors.PhaseBinding, errors.KindInvalidValue).
			Op(op).
			Handle(uint32(h)).
			Detail("attempted to bind unallocated buffer %d to %s", h, t).
			Build())
	}
	return false
}

// Current returns the handle bound to t, or 0.
func (b *Table) Current(t Target) resource.Handle {
	return b.slots[t]
}

// UnbindIfBound clears every target holding h and returns them. Binding
// overwrites per target, so one handle may sit in several slots.
func (b *Table) UnbindIfBound(h resource.Handle) []Target {
	if h == 0 {
		return nil
	}
	var cleared []Target
	for t := range NumTargets {
		if b.slots[t] == h {
			b.slots[t] = 0
			cleared = append(cleared, t)
		}
	}
	return cleared
}

// OnResourceEvent unbinds objects as they are freed.
func (b *Table) OnResourceEvent(e resource.Event) {
	if e.Type == resource.EventDropped {
		b.UnbindIfBound(e.Handle)
	}
}

// Snapshot returns a copy of every slot, indexed by Target.
func (b *Table) Snapshot() [NumTargets]resource.Handle {
	return b.slots
}
