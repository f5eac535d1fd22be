package version

import "strings"

// Extension is a named capability that newer versions subsume. Extensions
// compare by Name.
type Extension struct {
	UnlockGL *Number
	UnlockES *Number
	Name     string
}

// Provided describes what satisfies the extension, for example
// "ARB_copy_buffer or OpenGL 3.1 or OpenGL ES 3.0".
func (e *Extension) Provided() string {
	var b strings.Builder
	b.WriteString(e.Name)
	if e.UnlockGL != nil {
		b.WriteString(" or OpenGL ")
		b.WriteString(e.UnlockGL.String())
	}
	if e.UnlockES != nil {
		b.WriteString(" or OpenGL ES ")
		b.WriteString(e.UnlockES.String())
	}
	return b.String()
}

// UnlockedBy reports whether (kind, major, minor) includes the extension.
func (e *Extension) UnlockedBy(kind Kind, major, minor uint8) bool {
	n := Number{Major: major, Minor: minor}
	switch kind {
	case Desktop:
		return e.UnlockGL != nil && n.AtLeast(*e.UnlockGL)
	case Embedded:
		return e.UnlockES != nil && n.AtLeast(*e.UnlockES)
	}
	return false
}

var (
	ARB_vertex_buffer_object         = &Extension{Name: "ARB_vertex_buffer_object", UnlockGL: At(1, 5), UnlockES: At(2, 0)}
	ARB_copy_buffer                  = &Extension{Name: "ARB_copy_buffer", UnlockGL: At(3, 1), UnlockES: At(3, 0)}
	ARB_uniform_buffer_object        = &Extension{Name: "ARB_uniform_buffer_object", UnlockGL: At(3, 1), UnlockES: At(3, 0)}
	ARB_shader_storage_buffer_object = &Extension{Name: "ARB_shader_storage_buffer_object", UnlockGL: At(4, 3), UnlockES: At(3, 1)}
	ARB_buffer_storage               = &Extension{Name: "ARB_buffer_storage", UnlockGL: At(4, 4)}
	ARB_query_buffer_object          = &Extension{Name: "ARB_query_buffer_object", UnlockGL: At(4, 4)}
	ARB_direct_state_access          = &Extension{Name: "ARB_direct_state_access", UnlockGL: At(4, 5)}
	EXT_direct_state_access          = &Extension{Name: "EXT_direct_state_access"}
)

var catalogue = []*Extension{
	ARB_vertex_buffer_object,
	ARB_copy_buffer,
	ARB_uniform_buffer_object,
	ARB_shader_storage_buffer_object,
	ARB_buffer_storage,
	ARB_query_buffer_object,
	ARB_direct_state_access,
	EXT_direct_state_access,
}

// Catalogue returns every known extension.
func Catalogue() []*Extension {
	out := make([]*Extension, len(catalogue))
	copy(out, catalogue)
	return out
}

// Unlocked returns the catalogue extensions subsumed by (kind, major, minor).
func Unlocked(kind Kind, major, minor uint8) []*Extension {
	var out []*Extension
	for _, ext := range catalogue {
		if ext.UnlockedBy(kind, major, minor) {
			out = append(out, ext)
		}
	}
	return out
}

// Lookup finds a catalogue extension by name, with or without a GL_ prefix.
func Lookup(name string) (*Extension, bool) {
	name = strings.TrimPrefix(strings.TrimSpace(name), "GL_")
	for _, ext := range catalogue {
		if ext.Name == name {
			return ext, true
		}
	}
	return nil, false
}
