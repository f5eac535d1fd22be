package mockgl

import (
	"github.com/wippyai/mockgl/buffer"
	"github.com/wippyai/mockgl/version"
)

const opGetError = "glGetError"

var vboCore = version.Requirement{GL: version.At(2, 1), ES: version.At(2, 0)}

// gates lists the minimum each entry point needs. Entry points missing from
// the table are always available.
var gates = map[string]version.Requirement{
	buffer.OpGen:            vboCore,
	buffer.OpDelete:         vboCore,
	buffer.OpIsBuffer:       vboCore,
	buffer.OpBind:           vboCore,
	buffer.OpData:           vboCore,
	buffer.OpGetBufferParam: vboCore,
	buffer.OpNamedData:      {GL: version.At(4, 5), Ext: version.ARB_direct_state_access},
}

// Gate returns the requirement of the named entry point. The second result
// is false for entry points that are not gated.
func Gate(op string) (version.Requirement, bool) {
	req, ok := gates[op]
	return req, ok
}
