// Package resource provides the handle table behind every emulated object kind.
//
// Handles are opaque 32-bit names issued monotonically from 1; 0 is reserved
// as "no object". A handle moves from unallocated to live when it is issued
// and from live to deleted when it is freed. Deleted is terminal: the table
// remembers every deleted handle and never issues it again, so a stale name
// can always be told apart from one that was never allocated.
//
// # Handle Table
//
// The Table maps handles to per-object state of type T:
//
//	table := resource.NewTable[Buffer](errors.PhaseResource, "buffer")
//
//	// Issue two handles with zero-valued state
//	handles := table.Allocate("glGenBuffers", 2, reporter)
//
//	// Retrieve state by handle
//	buf, ok := table.Get(handles[0])
//
//	// Release; conditions for stale or unknown handles go to the reporter
//	freed := table.Free("glDeleteBuffers", handles, reporter)
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    if e.Type == resource.EventDropped {
//	        bindings.UnbindIfBound(e.Handle)
//	    }
//	}))
//
// # Leaks
//
// Objects are never released implicitly. Leaked returns every handle still
// live, which the owning context reports as dangling on teardown.
//
// A Table is not safe for concurrent use; the owning context serializes access.
package resource
