package proc

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/diag"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/version"
)

var gl21 = version.FromVersion(version.Desktop, 2, 1)

func begin(t *testing.T, v *version.Version) *mockgl.Context {
	t.Helper()
	c := mockgl.Begin(v, diag.Policy{Mode: diag.DoNotPanic})
	t.Cleanup(func() {
		if c.Active() {
			c.Finalize()
		}
	})
	return c
}

// call invokes name with args and returns the stack after the call.
func call(t *testing.T, c *mockgl.Context, mem Memory, name string, args ...uint64) []uint64 {
	t.Helper()
	e, ok := Lookup(name)
	require.True(t, ok, name)
	require.Len(t, args, len(e.Params), name)
	stack := make([]uint64, max(len(e.Params), len(e.Results)))
	copy(stack, args)
	e.Handler(c, mem, stack)
	return stack
}

func TestLookupAliases(t *testing.T) {
	canonical, ok := Lookup("glGenBuffers")
	require.True(t, ok)
	alias, ok := Lookup("glGenBuffersARB")
	require.True(t, ok)
	assert.Same(t, canonical, alias)

	named, ok := Lookup("glNamedBufferDataEXT")
	require.True(t, ok)
	assert.Equal(t, "glNamedBufferData", named.Name)

	_, ok = Lookup("glGenTextures")
	assert.False(t, ok)
	assert.Nil(t, Resolve("glGenTextures"))
	assert.NotNil(t, Resolve("glGetError"))
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, "glGenBuffers", names[0])
	assert.Equal(t, "glGenBuffersARB", names[1])
	assert.Contains(t, names, "glGetError")
	for _, n := range names {
		_, ok := Lookup(n)
		assert.True(t, ok, n)
	}
	assert.Len(t, Entries(), 9)
}

func TestSignatures(t *testing.T) {
	e, _ := Lookup("glBufferData")
	assert.Equal(t, []api.ValueType{api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32, api.ValueTypeI32}, e.Params)
	assert.Empty(t, e.Results)

	e, _ = Lookup("glIsBuffer")
	assert.Equal(t, []api.ValueType{api.ValueTypeI32}, e.Results)
}

func TestRequirements(t *testing.T) {
	e, _ := Lookup("glNamedBufferData")
	assert.False(t, e.Available(gl21))
	assert.True(t, e.Available(version.FromVersion(version.Desktop, 4, 5)))

	e, _ = Lookup("glGetError")
	assert.True(t, e.Requires().IsZero())
	assert.True(t, e.Available(version.Clear()))
}

func TestEndToEndThroughMemory(t *testing.T) {
	c := begin(t, gl21)
	mem := make(Bytes, 64)

	call(t, c, mem, "glGenBuffers", 1, 0)
	h, err := mem.ReadU32(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), h)

	call(t, c, mem, "glBindBufferARB", gl.ARRAY_BUFFER, uint64(h))
	require.NoError(t, mem.Write(16, []byte{1, 2, 3, 4}))
	call(t, c, mem, "glBufferData", gl.ARRAY_BUFFER, 4, 16, gl.STATIC_DRAW)

	call(t, c, mem, "glGetIntegerv", gl.ARRAY_BUFFER_BINDING, 8)
	bound, _ := mem.ReadI32(8)
	assert.Equal(t, int32(1), bound)

	call(t, c, mem, "glGetBufferParameteriv", gl.ARRAY_BUFFER, gl.BUFFER_SIZE, 12)
	size, _ := mem.ReadI32(12)
	assert.Equal(t, int32(4), size)

	store, ok := c.BufferStore(1)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4}, store)

	assert.Equal(t, uint64(gl.TRUE), call(t, c, mem, "glIsBuffer", 1)[0])
	call(t, c, mem, "glDeleteBuffers", 1, 0)
	assert.Equal(t, uint64(gl.FALSE), call(t, c, mem, "glIsBuffer", 1)[0])

	call(t, c, mem, "glGetIntegerv", gl.ARRAY_BUFFER_BINDING, 8)
	bound, _ = mem.ReadI32(8)
	assert.Equal(t, int32(0), bound)
	assert.Equal(t, uint64(gl.NO_ERROR), call(t, c, mem, "glGetError")[0])
}

func TestNegativeCountsThroughMemory(t *testing.T) {
	c := begin(t, gl21)
	mem := make(Bytes, 8)

	call(t, c, mem, "glGenBuffers", uint64(uint32(0xFFFFFFFF)), 0)
	assert.Equal(t, uint64(gl.INVALID_VALUE), call(t, c, mem, "glGetError")[0])

	call(t, c, mem, "glDeleteBuffers", uint64(uint32(0xFFFFFFFE)), 0)
	assert.Equal(t, uint64(gl.INVALID_VALUE), call(t, c, mem, "glGetError")[0])
}

func TestNullDataZeroFills(t *testing.T) {
	c := begin(t, gl21)
	mem := make(Bytes, 8)

	call(t, c, mem, "glGenBuffers", 1, 0)
	call(t, c, mem, "glBindBuffer", gl.ARRAY_BUFFER, 1)
	call(t, c, mem, "glBufferData", gl.ARRAY_BUFFER, 3, 0, gl.STREAM_DRAW)

	store, _ := c.BufferStore(1)
	assert.Equal(t, []byte{0, 0, 0}, store)
	call(t, c, mem, "glDeleteBuffers", 1, 0)
}

func TestBadPointerFaults(t *testing.T) {
	c := begin(t, gl21)
	mem := make(Bytes, 8)

	call(t, c, mem, "glGenBuffers", 4, 0)
	assert.Equal(t, uint64(gl.INVALID_VALUE), call(t, c, mem, "glGetError")[0])
	assert.Empty(t, c.Inspect().Live, "nothing is allocated when the output cannot be written")

	call(t, c, mem, "glGetIntegerv", gl.ARRAY_BUFFER_BINDING, 6)
	assert.Equal(t, uint64(gl.INVALID_VALUE), call(t, c, mem, "glGetError")[0])
}

// tracked records every range read and fails writes at or beyond failAt.
type tracked struct {
	Bytes
	reads  [][2]uint32
	failAt uint32
}

func (m *tracked) Read(offset, length uint32) ([]byte, error) {
	m.reads = append(m.reads, [2]uint32{offset, length})
	return m.Bytes.Read(offset, length)
}

func (m *tracked) WriteU32(offset, value uint32) error {
	if offset >= m.failAt {
		return fmt.Errorf("write rejected at %d", offset)
	}
	return m.Bytes.WriteU32(offset, value)
}

func TestHandleArrayTooLargeForMemory(t *testing.T) {
	c := begin(t, gl21)
	mem := &tracked{Bytes: make(Bytes, 16), failAt: math.MaxUint32}

	call(t, c, mem, "glGenBuffers", math.MaxInt32, 0)
	assert.Equal(t, uint64(gl.INVALID_VALUE), call(t, c, mem, "glGetError")[0])
	call(t, c, mem, "glDeleteBuffers", 0x40000000, 0)
	assert.Equal(t, uint64(gl.INVALID_VALUE), call(t, c, mem, "glGetError")[0])

	assert.Empty(t, mem.reads, "an unaddressable array is rejected before any read")
	assert.Empty(t, c.Inspect().Live)
}

func TestFailedHandleWriteFaults(t *testing.T) {
	c := begin(t, gl21)
	mem := &tracked{Bytes: make(Bytes, 16), failAt: 8}

	call(t, c, mem, "glGenBuffers", 3, 0)
	assert.Equal(t, uint64(gl.INVALID_VALUE), call(t, c, mem, "glGetError")[0])
	h, _ := mem.ReadU32(4)
	assert.Equal(t, uint32(2), h)
}

func TestUnknownQueryWritesNothing(t *testing.T) {
	c := begin(t, gl21)
	mem := make(Bytes, 8)
	require.NoError(t, mem.WriteI32(0, -7))

	call(t, c, mem, "glGetIntegerv", gl.TEXTURE_2D, 0)
	v, _ := mem.ReadI32(0)
	assert.Equal(t, int32(-7), v)
	assert.Equal(t, uint64(gl.INVALID_ENUM), call(t, c, mem, "glGetError")[0])
}

func TestBytesBounds(t *testing.T) {
	mem := make(Bytes, 4)
	assert.NoError(t, mem.WriteU32(0, 0xAABBCCDD))
	assert.Equal(t, Bytes{0xDD, 0xCC, 0xBB, 0xAA}, mem)
	assert.Error(t, mem.WriteU32(1, 0))
	_, err := mem.Read(4, 1)
	assert.Error(t, err)
	_, err = mem.Read(0xFFFFFFFF, 2)
	assert.Error(t, err)
}
