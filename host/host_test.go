package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/binding"
	"github.com/wippyai/mockgl/diag"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/proc"
	"github.com/wippyai/mockgl/resource"
	"github.com/wippyai/mockgl/version"
)

// Minimal module assembly.

func uleb(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func sleb(v int32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func i32const(v int32) []byte { return append([]byte{0x41}, sleb(v)...) }

func call(fn byte) []byte { return []byte{0x10, fn} }

func section(id byte, content ...byte) []byte {
	return concat([]byte{id}, uleb(uint32(len(content))), content)
}

func name(s string) []byte {
	return append(uleb(uint32(len(s))), s...)
}

func body(code ...[]byte) []byte {
	b := concat(append([][]byte{{0x00}}, code...)...)
	b = append(b, 0x0b)
	return concat(uleb(uint32(len(b))), b)
}

// imports declares gl functions, each as a name and a type index.
func imports(fns ...string) func(types ...byte) []byte {
	return func(types ...byte) []byte {
		out := uleb(uint32(len(fns)))
		for i, fn := range fns {
			out = concat(out, name("gl"), name(fn), []byte{0x00, types[i]})
		}
		return out
	}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

var header = []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

// pollModule imports gl.glGetError and exports it as "poll".
func pollModule(importName string) []byte {
	return concat(
		header,
		section(0x01, 0x01, 0x60, 0x00, 0x01, 0x7f),
		section(0x02, concat([]byte{0x01}, name("gl"), name(importName), []byte{0x00, 0x00})...),
		section(0x03, 0x01, 0x00),
		section(0x05, 0x01, 0x00, 0x01),
		section(0x07, concat([]byte{0x02}, name("memory"), []byte{0x02, 0x00}, name("poll"), []byte{0x00, 0x01})...),
		section(0x0a, 0x01, 0x04, 0x00, 0x10, 0x00, 0x0b),
	)
}

// genModule imports gl.glGenBuffers and exports "gen", which generates count
// buffers at address 0 and returns the first one.
func genModule(count byte) []byte {
	return concat(
		header,
		section(0x01, 0x02, 0x60, 0x02, 0x7f, 0x7f, 0x00, 0x60, 0x00, 0x01, 0x7f),
		section(0x02, concat([]byte{0x01}, name("gl"), name("glGenBuffers"), []byte{0x00, 0x00})...),
		section(0x03, 0x01, 0x01),
		section(0x05, 0x01, 0x00, 0x01),
		section(0x07, concat([]byte{0x02}, name("memory"), []byte{0x02, 0x00}, name("gen"), []byte{0x00, 0x01})...),
		section(0x0a, 0x01, 0x0d, 0x00,
			0x41, count, // i32.const count
			0x41, 0x00, // i32.const 0
			0x10, 0x00, // call glGenBuffers
			0x41, 0x00, // i32.const 0
			0x28, 0x02, 0x00, // i32.load
			0x0b),
	)
}

// uploadModule exports "upload", which generates a buffer, binds it to
// ARRAY_BUFFER, fills it from a data segment at 256 and returns BUFFER_SIZE
// as read back through guest memory. Its data and code sections are longer
// than one LEB128 byte can describe.
func uploadModule(payload []byte) []byte {
	const base = 256
	// function indices: imports first, then the exported body
	const (
		gen byte = iota
		bind
		data
		param
		upload
	)
	n := int32(len(payload))
	load := []byte{0x28, 0x02, 0x00}
	return concat(
		header,
		section(0x01, concat(uleb(4),
			[]byte{0x60, 0x02, 0x7f, 0x7f, 0x00},
			[]byte{0x60, 0x04, 0x7f, 0x7f, 0x7f, 0x7f, 0x00},
			[]byte{0x60, 0x03, 0x7f, 0x7f, 0x7f, 0x00},
			[]byte{0x60, 0x00, 0x01, 0x7f},
		)...),
		section(0x02, imports("glGenBuffers", "glBindBuffer", "glBufferData", "glGetBufferParameteriv")(0, 0, 1, 2)...),
		section(0x03, 0x01, 0x03),
		section(0x05, 0x01, 0x00, 0x01),
		section(0x07, concat(uleb(2), name("memory"), []byte{0x02, 0x00}, name("upload"), []byte{0x00, upload})...),
		section(0x0a, concat(uleb(1), body(
			i32const(1), i32const(0), call(gen),
			i32const(gl.ARRAY_BUFFER), i32const(0), load, call(bind),
			i32const(gl.ARRAY_BUFFER), i32const(n), i32const(base), i32const(gl.STATIC_DRAW), call(data),
			i32const(gl.ARRAY_BUFFER), i32const(gl.BUFFER_SIZE), i32const(8), call(param),
			i32const(8), load,
		))...),
		section(0x0b, concat(uleb(1), []byte{0x00}, i32const(base), []byte{0x0b}, uleb(uint32(n)), payload)...),
	)
}

func begin(t *testing.T, p diag.Policy) *mockgl.Context {
	t.Helper()
	c := mockgl.Begin(version.FromVersion(version.Desktop, 2, 1), p)
	t.Cleanup(func() {
		if c.Active() {
			c.Finalize()
		}
	})
	return c
}

func TestInstantiateExportsCatalogue(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.Policy{Mode: diag.DoNotPanic})

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	mod, err := Instantiate(ctx, rt, c)
	require.NoError(t, err)
	assert.Equal(t, DefaultModule, mod.Name())

	defs := mod.ExportedFunctionDefinitions()
	for _, n := range proc.Names() {
		assert.Contains(t, defs, n)
	}
}

func TestRunPoll(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.Policy{Mode: diag.DoNotPanic})

	c.GenBuffers(-1)
	results, err := Run(ctx, c, pollModule("glGetError"), "poll")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(gl.INVALID_VALUE), results[0])
	assert.Equal(t, uint32(gl.NO_ERROR), c.GetError(), "the guest consumed the error")
}

func TestRunGen(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.DefaultPolicy())

	results, err := Run(ctx, c, genModule(2), "gen")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), results[0])
	assert.Equal(t, []resource.Handle{1, 2}, c.Inspect().Live)

	c.DeleteBuffers(2, []resource.Handle{1, 2})
}

func TestRunPolicyPanicBecomesError(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.DefaultPolicy())

	// 0x7f is -1 as a signed LEB128 immediate.
	_, err := Run(ctx, c, genModule(0x7f), "gen")
	require.Error(t, err)
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindGuestTrap, e.Kind)
	assert.Contains(t, err.Error(), "invalid_value")

	assert.Equal(t, uint32(gl.INVALID_VALUE), c.GetError(), "the register is written before the panic")
}

func TestRunAlias(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.DefaultPolicy())

	_, err := Run(ctx, c, pollModule("glGetErrorARB"), "poll")
	require.Error(t, err, "glGetError has no ARB alias")
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindInstantiation, e.Kind)
}

func TestRunMissingEntry(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.DefaultPolicy())

	_, err := Run(ctx, c, pollModule("glGetError"), "main")
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindNotFound, e.Kind)
}

func TestRunInvalidModule(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.DefaultPolicy())

	_, err := Run(ctx, c, []byte("not wasm"), "main")
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.KindInvalidInput, e.Kind)
}

func TestModuleName(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.Policy{Mode: diag.DoNotPanic})

	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)
	mod, err := Instantiate(ctx, rt, c, WithModuleName("env"))
	require.NoError(t, err)
	assert.Equal(t, "env", mod.Name())
}

func TestLEB128(t *testing.T) {
	assert.Equal(t, []byte{0x7f}, uleb(127))
	assert.Equal(t, []byte{0x80, 0x01}, uleb(128))
	assert.Equal(t, []byte{0xe5, 0x8e, 0x26}, uleb(624485))
	assert.Equal(t, []byte{0x7f}, sleb(-1))
	assert.Equal(t, []byte{0x3f}, sleb(63))
	assert.Equal(t, []byte{0xc0, 0x00}, sleb(64))
	assert.Equal(t, []byte{0x92, 0x91, 0x02}, sleb(gl.ARRAY_BUFFER))
}

func TestRunUpload(t *testing.T) {
	ctx := context.Background()
	c := begin(t, diag.DefaultPolicy())

	payload := make([]byte, 300)
	for i := range payload {
		payload[i] = byte(i)
	}
	results, err := Run(ctx, c, uploadModule(payload), "upload")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint64(len(payload)), results[0])

	store, ok := c.BufferStore(1)
	require.True(t, ok)
	assert.Equal(t, payload, store)
	assert.Equal(t, resource.Handle(1), c.Inspect().Bindings[binding.ArrayBuffer])
	assert.Equal(t, uint32(gl.NO_ERROR), c.GetError())

	c.DeleteBuffers(1, []resource.Handle{1})
}
