package buffer

import (
	"github.com/wippyai/mockgl/gl"
	"github.com/wippyai/mockgl/version"
)

// Usage is the closed set of data-store usage hints.
type Usage uint8

const (
	StreamDraw Usage = iota
	StreamRead
	StreamCopy
	StaticDraw
	StaticRead
	StaticCopy
	DynamicDraw
	DynamicRead
	DynamicCopy

	NumUsages
)

var (
	drawHint = version.Requirement{GL: version.At(2, 1), ES: version.At(2, 0)}
	dataHint = version.Requirement{GL: version.At(2, 1), ES: version.At(3, 0)}
)

var usages = [NumUsages]struct {
	enum     gl.Enum
	requires version.Requirement
}{
	StreamDraw:  {gl.STREAM_DRAW, drawHint},
	StreamRead:  {gl.STREAM_READ, dataHint},
	StreamCopy:  {gl.STREAM_COPY, dataHint},
	StaticDraw:  {gl.STATIC_DRAW, drawHint},
	StaticRead:  {gl.STATIC_READ, dataHint},
	StaticCopy:  {gl.STATIC_COPY, dataHint},
	DynamicDraw: {gl.DYNAMIC_DRAW, drawHint},
	DynamicRead: {gl.DYNAMIC_READ, dataHint},
	DynamicCopy: {gl.DYNAMIC_COPY, dataHint},
}

// UsageFromEnum maps a usage enumerant to its Usage.
func UsageFromEnum(e gl.Enum) (Usage, bool) {
	for u := range NumUsages {
		if usages[u].enum == e {
			return u, true
		}
	}
	return 0, false
}

func (u Usage) Enum() gl.Enum { return usages[u].enum }

func (u Usage) Requires() version.Requirement { return usages[u].requires }

// Available reports whether the hint exists under v.
func (u Usage) Available(v *version.Version) bool {
	return v.Satisfies(usages[u].requires)
}

func (u Usage) String() string {
	if u >= NumUsages {
		return "GL_INVALID_USAGE"
	}
	return gl.Name(usages[u].enum)
}
