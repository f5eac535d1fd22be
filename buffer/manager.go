// Package buffer implements data buffer objects: handle lifecycle, bind
// targets and the rules for committing and querying data stores.
package buffer

import (
	"math"

	"go.uber.org/zap"

	"github.com/wippyai/mockgl/binding"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/resource"
	"github.com/wippyai/mockgl/version"
)

// MaxStoreSize is the largest store a buffer can hold; BUFFER_SIZE is read
// back as a 32-bit integer.
const MaxStoreSize = math.MaxInt32

// Entry-point names used to tag conditions.
const (
	OpGen            = "glGenBuffers"
	OpIsBuffer       = "glIsBuffer"
	OpDelete         = "glDeleteBuffers"
	OpBind           = "glBindBuffer"
	OpData           = "glBufferData"
	OpNamedData      = "glNamedBufferData"
	OpGetInteger     = "glGetIntegerv"
	OpGetBufferParam = "glGetBufferParameteriv"
	OpFinalize       = "finalize"
)

// Buffer is the state behind one handle. A buffer has no store until data is
// first committed; each commit replaces the store wholesale.
type Buffer struct {
	Store    []byte
	Usage    Usage
	HasStore bool
}

// Manager owns the buffer objects of one context and the bind targets that
// reference them.
type Manager struct {
	objects  *resource.Table[Buffer]
	bindings *binding.Table
	log      *zap.Logger
}

// NewManager creates an empty manager. Freed buffers are unbound from every
// target as part of the free.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		objects:  resource.NewTable[Buffer](errors.PhaseBuffer, "buffer"),
		bindings: binding.NewTable(),
		log:      log,
	}
	m.objects.Subscribe(m.bindings)
	return m
}

// Create issues n buffers with no store.
func (m *Manager) Create(n int32, r errors.Reporter) []resource.Handle {
	handles := m.objects.Allocate(OpGen, n, r)
	if len(handles) > 0 {
		m.log.Debug("created buffers", zap.Int("count", len(handles)), zap.Any("buffers", handles))
	}
	return handles
}

// Destroy frees the first n handles. A negative n, or one larger than the
// slice, reports invalid-value and frees nothing.
func (m *Manager) Destroy(n int32, handles []resource.Handle, r errors.Reporter) {
	if n < 0 {
		r.Report(errors.NegativeCount(errors.PhaseBuffer, OpDelete, "count", int64(n)))
		return
	}
	if int(n) > len(handles) {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidValue).
			Op(OpDelete).
			Value(n).
			Detail("count %d exceeds the %d handles supplied", n, len(handles)).
			Build())
		return
	}
	freed := m.objects.Free(OpDelete, handles[:n], r)
	for _, h := range freed {
		m.log.Debug("freed buffer", zap.Uint32("buffer", uint32(h)))
	}
}

// IsBuffer reports whether h names a live buffer.
func (m *Manager) IsBuffer(h resource.Handle) bool {
	return m.objects.Contains(h)
}

// target resolves a bind-target enumerant, reporting invalid-enum when it is
// unknown or not exposed by v.
func (m *Manager) target(op string, v *version.Version, e gl.Enum, r errors.Reporter) (binding.Target, bool) {
	t, ok := binding.FromEnum(e)
	if !ok {
		r.Report(errors.InvalidEnum(errors.PhaseBuffer, op, e, "buffer target"))
		return 0, false
	}
	if !t.Available(v) {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidEnum).
			Op(op).
			Value(e).
			Detail("%s requires %s", t, t.Requires()).
			Build())
		return 0, false
	}
	return t, true
}

func (m *Manager) usage(op string, v *version.Version, e gl.Enum, r errors.Reporter) (Usage, bool) {
	u, ok := UsageFromEnum(e)
	if !ok {
		r.Report(errors.InvalidEnum(errors.PhaseBuffer, op, e, "buffer usage"))
		return 0, false
	}
	if !u.Available(v) {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidEnum).
			Op(op).
			Value(e).
			Detail("%s requires %s", u, u.Requires()).
			Build())
		return 0, false
	}
	return u, true
}

// Bind attaches h to the target named by e.
func (m *Manager) Bind(v *version.Version, e gl.Enum, h resource.Handle, r errors.Reporter) bool {
	t, ok := m.target(OpBind, v, e, r)
	if !ok {
		return false
	}
	if !m.bindings.Bind(OpBind, t, h, m.objects, r) {
		return false
	}
	m.log.Debug("bound buffer", zap.Uint32("buffer", uint32(h)), zap.Stringer("target", t))
	return true
}

// CommitTarget replaces the store of the buffer bound to e. Checks run in
// order: target, binding, usage, size, source length.
func (m *Manager) CommitTarget(v *version.Version, e gl.Enum, size int64, data []byte, usage gl.Enum, r errors.Reporter) bool {
	t, ok := m.target(OpData, v, e, r)
	if !ok {
		return false
	}
	h := m.bindings.Current(t)
	if h == 0 {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidOperation).
			Op(OpData).
			Value(e).
			Detail("no buffer bound to %s", t).
			Build())
		return false
	}
	return m.commit(OpData, v, h, size, data, usage, r)
}

// CommitNamed replaces the store of h directly. A handle that is not live
// reports invalid-operation.
func (m *Manager) CommitNamed(v *version.Version, h resource.Handle, size int64, data []byte, usage gl.Enum, r errors.Reporter) bool {
	if !m.objects.Contains(h) {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidOperation).
			Op(OpNamedData).
			Handle(uint32(h)).
			Detail("attempted to write %s", m.objects.Describe(h)).
			Build())
		return false
	}
	return m.commit(OpNamedData, v, h, size, data, usage, r)
}

func (m *Manager) commit(op string, v *version.Version, h resource.Handle, size int64, data []byte, usage gl.Enum, r errors.Reporter) bool {
	u, ok := m.usage(op, v, usage, r)
	if !ok {
		return false
	}
	if size < 0 {
		r.Report(errors.NegativeCount(errors.PhaseBuffer, op, "size", size))
		return false
	}
	if size > MaxStoreSize {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindOutOfMemory).
			Op(op).
			Handle(uint32(h)).
			Value(size).
			Detail("cannot allocate %d bytes", size).
			Build())
		return false
	}
	if data != nil && int64(len(data)) < size {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidValue).
			Op(op).
			Handle(uint32(h)).
			Detail("source holds %d bytes, %d requested", len(data), size).
			Build())
		return false
	}

	store := make([]byte, size)
	if data != nil {
		copy(store, data[:size])
	}
	b, _ := m.objects.Get(h)
	b.Store = store
	b.Usage = u
	b.HasStore = true

	m.log.Debug("allocated buffer store",
		zap.Uint32("buffer", uint32(h)),
		zap.Int64("size", size),
		zap.Stringer("usage", u),
		zap.Bool("zeroed", data == nil))
	return true
}

// QueryBinding reads a *_BINDING state key.
func (m *Manager) QueryBinding(v *version.Version, pname gl.Enum, r errors.Reporter) (int32, bool) {
	t, ok := binding.FromQuery(pname)
	if !ok {
		r.Report(errors.InvalidEnum(errors.PhaseBuffer, OpGetInteger, pname, "state key"))
		return 0, false
	}
	if !t.Available(v) {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidEnum).
			Op(OpGetInteger).
			Value(pname).
			Detail("%s requires %s", gl.Name(t.Query()), t.Requires()).
			Build())
		return 0, false
	}
	return int32(m.bindings.Current(t)), true
}

// Parameter reads BUFFER_SIZE or BUFFER_USAGE of the buffer bound to e.
// A buffer without a store reports size 0 and STATIC_DRAW.
func (m *Manager) Parameter(v *version.Version, e gl.Enum, pname gl.Enum, r errors.Reporter) (int32, bool) {
	t, ok := m.target(OpGetBufferParam, v, e, r)
	if !ok {
		return 0, false
	}
	h := m.bindings.Current(t)
	if h == 0 {
		r.Report(errors.New(errors.PhaseBuffer, errors.KindInvalidOperation).
			Op(OpGetBufferParam).
			Value(e).
			Detail("no buffer bound to %s", t).
			Build())
		return 0, false
	}
	b, _ := m.objects.Get(h)

	switch pname {
	case gl.BUFFER_SIZE:
		return sizeParam(len(b.Store)), true
	case gl.BUFFER_USAGE:
		if !b.HasStore {
			return gl.STATIC_DRAW, true
		}
		return int32(b.Usage.Enum()), true
	default:
		r.Report(errors.InvalidEnum(errors.PhaseBuffer, OpGetBufferParam, pname, "buffer parameter"))
		return 0, false
	}
}

// Store returns a copy of the data store of h. The second result is false
// when h is not live or has no store.
func (m *Manager) Store(h resource.Handle) ([]byte, bool) {
	b, ok := m.objects.Get(h)
	if !ok || !b.HasStore {
		return nil, false
	}
	out := make([]byte, len(b.Store))
	copy(out, b.Store)
	return out, true
}

// Bindings returns every target's current handle.
func (m *Manager) Bindings() [binding.NumTargets]resource.Handle {
	return m.bindings.Snapshot()
}

// Live returns every live handle in ascending order.
func (m *Manager) Live() []resource.Handle {
	return m.objects.Leaked()
}

// CheckLeaks reports one dangling-resource condition naming every buffer
// still live. It returns the leaked handles.
func (m *Manager) CheckLeaks(r errors.Reporter) []resource.Handle {
	leaked := m.objects.Leaked()
	if len(leaked) == 0 {
		return nil
	}
	ids := make([]uint32, len(leaked))
	for i, h := range leaked {
		ids[i] = uint32(h)
	}
	r.Report(errors.New(errors.PhaseBuffer, errors.KindDangling).
		Op(OpFinalize).
		Handle(ids...).
		Detail("%d buffer(s) never freed", len(leaked)).
		Build())
	return leaked
}

// sizeParam converts a store length for a 32-bit query, saturating at
// MaxStoreSize.
func sizeParam(n int) int32 {
	return int32(min(n, MaxStoreSize))
}
