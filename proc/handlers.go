package proc

import (
	"math"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/resource"
)

func arg32(stack []uint64, i int) uint32 { return uint32(stack[i]) }

func argI32(stack []uint64, i int) int32 { return int32(uint32(stack[i])) }

// words returns the byte length of n handles, or false when it cannot be
// addressed in a 32-bit memory.
func words(n int32) (uint32, bool) {
	size := uint64(n) * 4
	if size > math.MaxUint32 {
		return math.MaxUint32, false
	}
	return uint32(size), true
}

func fault(c *mockgl.Context, op string, ptr uint32, n uint32, err error) {
	c.Fault(op, errors.New(errors.PhaseDispatch, errors.KindInvalidValue).
		Op(op).
		Value(ptr).
		Cause(err).
		Detail("cannot access %d bytes at 0x%X", n, ptr).
		Build())
}

func genBuffers(c *mockgl.Context, mem Memory, stack []uint64) {
	const op = "glGenBuffers"
	n, ptr := argI32(stack, 0), arg32(stack, 1)
	if n > 0 {
		size, ok := words(n)
		if !ok {
			fault(c, op, ptr, size, nil)
			return
		}
		if _, err := mem.Read(ptr, size); err != nil {
			fault(c, op, ptr, size, err)
			return
		}
	}
	for i, h := range c.GenBuffers(n) {
		at := ptr + 4*uint32(i)
		if err := mem.WriteU32(at, uint32(h)); err != nil {
			fault(c, op, at, 4, err)
			return
		}
	}
}

func deleteBuffers(c *mockgl.Context, mem Memory, stack []uint64) {
	const op = "glDeleteBuffers"
	n, ptr := argI32(stack, 0), arg32(stack, 1)
	if n <= 0 {
		c.DeleteBuffers(n, nil)
		return
	}
	size, ok := words(n)
	if !ok {
		fault(c, op, ptr, size, nil)
		return
	}
	raw, err := mem.Read(ptr, size)
	if err != nil {
		fault(c, op, ptr, size, err)
		return
	}
	handles := make([]resource.Handle, n)
	for i := range handles {
		v, _ := Bytes(raw).ReadU32(uint32(4 * i))
		handles[i] = resource.Handle(v)
	}
	c.DeleteBuffers(n, handles)
}

func isBuffer(c *mockgl.Context, _ Memory, stack []uint64) {
	var r uint64 = gl.FALSE
	if c.IsBuffer(resource.Handle(arg32(stack, 0))) {
		r = gl.TRUE
	}
	stack[0] = r
}

func bindBuffer(c *mockgl.Context, _ Memory, stack []uint64) {
	c.BindBuffer(arg32(stack, 0), resource.Handle(arg32(stack, 1)))
}

// source reads the data pointer of a commit. A null pointer or a negative
// size yields nil and leaves validation to the buffer rules.
func source(c *mockgl.Context, op string, mem Memory, size int32, ptr uint32) ([]byte, bool) {
	if ptr == 0 || size < 0 {
		return nil, true
	}
	data, err := mem.Read(ptr, uint32(size))
	if err != nil {
		fault(c, op, ptr, uint32(size), err)
		return nil, false
	}
	return data, true
}

func bufferData(c *mockgl.Context, mem Memory, stack []uint64) {
	target, size, ptr, usage := arg32(stack, 0), argI32(stack, 1), arg32(stack, 2), arg32(stack, 3)
	data, ok := source(c, "glBufferData", mem, size, ptr)
	if !ok {
		return
	}
	c.BufferData(target, int64(size), data, usage)
}

func namedBufferData(c *mockgl.Context, mem Memory, stack []uint64) {
	h, size, ptr, usage := arg32(stack, 0), argI32(stack, 1), arg32(stack, 2), arg32(stack, 3)
	data, ok := source(c, "glNamedBufferData", mem, size, ptr)
	if !ok {
		return
	}
	c.NamedBufferData(resource.Handle(h), int64(size), data, usage)
}

func getIntegerv(c *mockgl.Context, mem Memory, stack []uint64) {
	pname, ptr := arg32(stack, 0), arg32(stack, 1)
	v, ok := c.GetIntegerv(pname)
	if !ok {
		return
	}
	if err := mem.WriteI32(ptr, v); err != nil {
		fault(c, "glGetIntegerv", ptr, 4, err)
	}
}

func getBufferParameteriv(c *mockgl.Context, mem Memory, stack []uint64) {
	target, pname, ptr := arg32(stack, 0), arg32(stack, 1), arg32(stack, 2)
	v, ok := c.GetBufferParameteriv(target, pname)
	if !ok {
		return
	}
	if err := mem.WriteI32(ptr, v); err != nil {
		fault(c, "glGetBufferParameteriv", ptr, 4, err)
	}
}

func getError(c *mockgl.Context, _ Memory, stack []uint64) {
	stack[0] = uint64(c.GetError())
}
