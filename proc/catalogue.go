// Package proc is the entry-point catalogue: every callable name, its
// aliases, its flat signature and the handler that forwards to a context.
//
// Handlers follow the wazero stack convention. Parameters arrive as uint64
// slots in declaration order and results are written back from slot 0.
// Pointer parameters are offsets into the caller's Memory; 0 is null.
package proc

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/version"
)

// Func is an entry-point handler.
type Func func(c *mockgl.Context, mem Memory, stack []uint64)

// Entry is one catalogue row.
type Entry struct {
	Handler Func
	Name    string
	Aliases []string
	Params  []api.ValueType
	Results []api.ValueType
}

// Requires returns the minimum version or extension for the entry point.
func (e *Entry) Requires() version.Requirement {
	req, _ := mockgl.Gate(e.Name)
	return req
}

// Available reports whether the entry point is exposed under v.
func (e *Entry) Available(v *version.Version) bool {
	return v.Satisfies(e.Requires())
}

var (
	i32 = api.ValueTypeI32

	catalogue = []Entry{
		{Name: "glGenBuffers", Aliases: []string{"glGenBuffersARB"}, Params: vt(i32, i32), Handler: genBuffers},
		{Name: "glDeleteBuffers", Aliases: []string{"glDeleteBuffersARB"}, Params: vt(i32, i32), Handler: deleteBuffers},
		{Name: "glIsBuffer", Aliases: []string{"glIsBufferARB"}, Params: vt(i32), Results: vt(i32), Handler: isBuffer},
		{Name: "glBindBuffer", Aliases: []string{"glBindBufferARB"}, Params: vt(i32, i32), Handler: bindBuffer},
		{Name: "glBufferData", Aliases: []string{"glBufferDataARB"}, Params: vt(i32, i32, i32, i32), Handler: bufferData},
		{Name: "glNamedBufferData", Aliases: []string{"glNamedBufferDataEXT"}, Params: vt(i32, i32, i32, i32), Handler: namedBufferData},
		{Name: "glGetIntegerv", Params: vt(i32, i32), Handler: getIntegerv},
		{Name: "glGetBufferParameteriv", Aliases: []string{"glGetBufferParameterivARB"}, Params: vt(i32, i32, i32), Handler: getBufferParameteriv},
		{Name: "glGetError", Results: vt(i32), Handler: getError},
	}

	byName = func() map[string]*Entry {
		m := make(map[string]*Entry)
		for i := range catalogue {
			e := &catalogue[i]
			m[e.Name] = e
			for _, a := range e.Aliases {
				m[a] = e
			}
		}
		return m
	}()
)

func vt(types ...api.ValueType) []api.ValueType { return types }

// Lookup resolves a canonical name or an alias.
func Lookup(name string) (*Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// Resolve returns the handler for name, or nil when it is not available.
func Resolve(name string) Func {
	if e, ok := byName[name]; ok {
		return e.Handler
	}
	return nil
}

// Entries returns the catalogue in declaration order.
func Entries() []Entry {
	out := make([]Entry, len(catalogue))
	copy(out, catalogue)
	return out
}

// Names returns every resolvable name: each canonical name followed by its
// aliases.
func Names() []string {
	var out []string
	for _, e := range catalogue {
		out = append(out, e.Name)
		out = append(out, e.Aliases...)
	}
	return out
}
