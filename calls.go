package mockgl

import (
	"github.com/wippyai/mockgl/binding"
	"github.com/wippyai/mockgl/buffer"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/resource"
)

// GenBuffers issues n new buffer names.
func (c *Context) GenBuffers(n int32) (out []resource.Handle) {
	c.call(buffer.OpGen, func(r errors.Reporter) {
		out = c.buffers.Create(n, r)
	})
	return out
}

// DeleteBuffers deletes the first n names in buffers. Name 0 is ignored.
func (c *Context) DeleteBuffers(n int32, buffers []resource.Handle) {
	c.call(buffer.OpDelete, func(r errors.Reporter) {
		c.buffers.Destroy(n, buffers, r)
	})
}

// IsBuffer reports whether h names a live buffer.
func (c *Context) IsBuffer(h resource.Handle) (live bool) {
	c.call(buffer.OpIsBuffer, func(errors.Reporter) {
		live = c.buffers.IsBuffer(h)
	})
	return live
}

func (c *Context) BindBuffer(target gl.Enum, h resource.Handle) {
	c.call(buffer.OpBind, func(r errors.Reporter) {
		c.buffers.Bind(c.version, target, h, r)
	})
}

// BufferData replaces the store of the buffer bound to target with size
// bytes from data, or with zeros when data is nil.
func (c *Context) BufferData(target gl.Enum, size int64, data []byte, usage gl.Enum) {
	c.call(buffer.OpData, func(r errors.Reporter) {
		c.buffers.CommitTarget(c.version, target, size, data, usage, r)
	})
}

// NamedBufferData is BufferData addressed by name instead of bind target.
func (c *Context) NamedBufferData(h resource.Handle, size int64, data []byte, usage gl.Enum) {
	c.call(buffer.OpNamedData, func(r errors.Reporter) {
		c.buffers.CommitNamed(c.version, h, size, data, usage, r)
	})
}

// GetIntegerv reads an integer state key. The second result is false when
// the key is not recognized, in which case nothing should be written back.
func (c *Context) GetIntegerv(pname gl.Enum) (v int32, ok bool) {
	c.call(buffer.OpGetInteger, func(r errors.Reporter) {
		v, ok = c.buffers.QueryBinding(c.version, pname, r)
	})
	return v, ok
}

func (c *Context) GetBufferParameteriv(target, pname gl.Enum) (v int32, ok bool) {
	c.call(buffer.OpGetBufferParam, func(r errors.Reporter) {
		v, ok = c.buffers.Parameter(c.version, target, pname, r)
	})
	return v, ok
}

// GetError returns the latest unreported error code and resets the register.
func (c *Context) GetError() (code uint32) {
	c.call(opGetError, func(errors.Reporter) {
		code = c.lastError
		c.lastError = errors.CodeNoError
	})
	return code
}

// Fault reports a condition raised outside the buffer rules, such as a guest
// pointer that cannot be dereferenced. It goes through the error register
// and the policy like any other condition.
func (c *Context) Fault(op string, err *errors.Error) {
	c.enter(op)
	defer arena.mu.Unlock()
	if err.Op == "" {
		err.Op = op
	}
	c.report(err)
}

// Snapshot is a read-only view of the context state.
type Snapshot struct {
	Bindings     [binding.NumTargets]resource.Handle
	Live         []resource.Handle
	PendingError uint32
}

// Inspect returns the current state without touching the error register.
func (c *Context) Inspect() Snapshot {
	c.enter("inspect")
	defer arena.mu.Unlock()
	return Snapshot{
		Bindings:     c.buffers.Bindings(),
		Live:         c.buffers.Live(),
		PendingError: c.lastError,
	}
}

// BufferStore returns a copy of the data store of h.
func (c *Context) BufferStore(h resource.Handle) ([]byte, bool) {
	c.enter("inspect")
	defer arena.mu.Unlock()
	return c.buffers.Store(h)
}
