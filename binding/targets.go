package binding

import (
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/version"
)

// Target is one of the fixed buffer bind points.
type Target uint8

const (
	ArrayBuffer Target = iota
	ElementArrayBuffer
	PixelPackBuffer
	PixelUnpackBuffer
	CopyReadBuffer
	CopyWriteBuffer
	TextureBuffer
	TransformFeedbackBuffer
	UniformBuffer
	AtomicCounterBuffer
	DispatchIndirectBuffer
	DrawIndirectBuffer
	QueryBuffer
	ShaderStorageBuffer

	NumTargets
)

type targetInfo struct {
	requires version.Requirement
	enum     gl.Enum
	query    gl.Enum
}

var targets = [NumTargets]targetInfo{
	ArrayBuffer:             {enum: gl.ARRAY_BUFFER, query: gl.ARRAY_BUFFER_BINDING, requires: version.Requirement{GL: version.At(2, 1), ES: version.At(2, 0)}},
	ElementArrayBuffer:      {enum: gl.ELEMENT_ARRAY_BUFFER, query: gl.ELEMENT_ARRAY_BUFFER_BINDING, requires: version.Requirement{GL: version.At(2, 1), ES: version.At(2, 0)}},
	PixelPackBuffer:         {enum: gl.PIXEL_PACK_BUFFER, query: gl.PIXEL_PACK_BUFFER_BINDING, requires: version.Requirement{GL: version.At(2, 1), ES: version.At(3, 0)}},
	PixelUnpackBuffer:       {enum: gl.PIXEL_UNPACK_BUFFER, query: gl.PIXEL_UNPACK_BUFFER_BINDING, requires: version.Requirement{GL: version.At(2, 1), ES: version.At(3, 0)}},
	CopyReadBuffer:          {enum: gl.COPY_READ_BUFFER, query: gl.COPY_READ_BUFFER_BINDING, requires: version.Requirement{GL: version.At(3, 1), ES: version.At(3, 0), Ext: version.ARB_copy_buffer}},
	CopyWriteBuffer:         {enum: gl.COPY_WRITE_BUFFER, query: gl.COPY_WRITE_BUFFER_BINDING, requires: version.Requirement{GL: version.At(3, 1), ES: version.At(3, 0), Ext: version.ARB_copy_buffer}},
	TextureBuffer:           {enum: gl.TEXTURE_BUFFER, query: gl.TEXTURE_BUFFER_BINDING, requires: version.Requirement{GL: version.At(3, 1)}},
	TransformFeedbackBuffer: {enum: gl.TRANSFORM_FEEDBACK_BUFFER, query: gl.TRANSFORM_FEEDBACK_BUFFER_BINDING, requires: version.Requirement{GL: version.At(3, 0), ES: version.At(3, 0)}},
	UniformBuffer:           {enum: gl.UNIFORM_BUFFER, query: gl.UNIFORM_BUFFER_BINDING, requires: version.Requirement{GL: version.At(3, 1), ES: version.At(3, 0), Ext: version.ARB_uniform_buffer_object}},
	AtomicCounterBuffer:     {enum: gl.ATOMIC_COUNTER_BUFFER, query: gl.ATOMIC_COUNTER_BUFFER_BINDING, requires: version.Requirement{GL: version.At(4, 2), ES: version.At(3, 1)}},
	DispatchIndirectBuffer:  {enum: gl.DISPATCH_INDIRECT_BUFFER, query: gl.DISPATCH_INDIRECT_BUFFER_BINDING, requires: version.Requirement{GL: version.At(4, 3), ES: version.At(3, 1)}},
	DrawIndirectBuffer:      {enum: gl.DRAW_INDIRECT_BUFFER, query: gl.DRAW_INDIRECT_BUFFER_BINDING, requires: version.Requirement{GL: version.At(4, 0), ES: version.At(3, 1)}},
	QueryBuffer:             {enum: gl.QUERY_BUFFER, query: gl.QUERY_BUFFER_BINDING, requires: version.Requirement{GL: version.At(4, 4), Ext: version.ARB_query_buffer_object}},
	ShaderStorageBuffer:     {enum: gl.SHADER_STORAGE_BUFFER, query: gl.SHADER_STORAGE_BUFFER_BINDING, requires: version.Requirement{GL: version.At(4, 3), ES: version.At(3, 1), Ext: version.ARB_shader_storage_buffer_object}},
}

// FromEnum maps a bind-target enumerant to its Target.
func FromEnum(e gl.Enum) (Target, bool) {
	for t := range NumTargets {
		if targets[t].enum == e {
			return t, true
		}
	}
	return 0, false
}

// FromQuery maps a *_BINDING state key to its Target.
func FromQuery(pname gl.Enum) (Target, bool) {
	for t := range NumTargets {
		if targets[t].query == pname {
			return t, true
		}
	}
	return 0, false
}

// Enum returns the target's numeric value.
func (t Target) Enum() gl.Enum { return targets[t].enum }

// Query returns the state key that reads the target's binding.
func (t Target) Query() gl.Enum { return targets[t].query }

// Requires returns the minimum version or extension exposing the target.
func (t Target) Requires() version.Requirement { return targets[t].requires }

// Available reports whether the target exists under v.
func (t Target) Available(v *version.Version) bool {
	return v.Satisfies(targets[t].requires)
}

func (t Target) String() string {
	if t >= NumTargets {
		return "GL_INVALID_TARGET"
	}
	return gl.Name(targets[t].enum)
}

// All returns every target in declaration order.
func All() []Target {
	out := make([]Target, 0, NumTargets)
	for t := range NumTargets {
		out = append(out, t)
	}
	return out
}
