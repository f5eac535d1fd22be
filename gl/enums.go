// Package gl holds the numeric constants of the emulated API exactly as the
// public header defines them, plus a name table used for diagnostics and for
// parsing symbolic values in scenarios and the repl.
package gl

import (
	"fmt"
	"strconv"
	"strings"
)

// Enum is the width of every symbolic constant.
type Enum = uint32

const (
	FALSE = 0
	TRUE  = 1

	NO_ERROR          = 0x0000
	INVALID_ENUM      = 0x0500
	INVALID_VALUE     = 0x0501
	INVALID_OPERATION = 0x0502
	OUT_OF_MEMORY     = 0x0505

	TEXTURE_2D = 0x0DE1
	TEXTURE0   = 0x84C0

	ARRAY_BUFFER              = 0x8892
	ELEMENT_ARRAY_BUFFER      = 0x8893
	PIXEL_PACK_BUFFER         = 0x88EB
	PIXEL_UNPACK_BUFFER       = 0x88EC
	COPY_READ_BUFFER          = 0x8F36
	COPY_WRITE_BUFFER         = 0x8F37
	TEXTURE_BUFFER            = 0x8C2A
	TRANSFORM_FEEDBACK_BUFFER = 0x8C8E
	UNIFORM_BUFFER            = 0x8A11
	ATOMIC_COUNTER_BUFFER     = 0x92C0
	DISPATCH_INDIRECT_BUFFER  = 0x90EE
	DRAW_INDIRECT_BUFFER      = 0x8F3F
	QUERY_BUFFER              = 0x9192
	SHADER_STORAGE_BUFFER     = 0x90D2

	ARRAY_BUFFER_BINDING              = 0x8894
	ELEMENT_ARRAY_BUFFER_BINDING      = 0x8895
	PIXEL_PACK_BUFFER_BINDING         = 0x88ED
	PIXEL_UNPACK_BUFFER_BINDING       = 0x88EF
	COPY_READ_BUFFER_BINDING          = 0x8F36
	COPY_WRITE_BUFFER_BINDING         = 0x8F37
	TEXTURE_BUFFER_BINDING            = 0x8C2A
	TRANSFORM_FEEDBACK_BUFFER_BINDING = 0x8C8F
	UNIFORM_BUFFER_BINDING            = 0x8A28
	ATOMIC_COUNTER_BUFFER_BINDING     = 0x92C1
	DISPATCH_INDIRECT_BUFFER_BINDING  = 0x90EF
	DRAW_INDIRECT_BUFFER_BINDING      = 0x8F43
	QUERY_BUFFER_BINDING              = 0x9193
	SHADER_STORAGE_BUFFER_BINDING     = 0x90D3

	STREAM_DRAW  = 0x88E0
	STREAM_READ  = 0x88E1
	STREAM_COPY  = 0x88E2
	STATIC_DRAW  = 0x88E4
	STATIC_READ  = 0x88E5
	STATIC_COPY  = 0x88E6
	DYNAMIC_DRAW = 0x88E8
	DYNAMIC_READ = 0x88E9
	DYNAMIC_COPY = 0x88EA

	BUFFER_SIZE  = 0x8764
	BUFFER_USAGE = 0x8765
)

// names lists symbolic names for parsing. Binding query names that share a
// value with their target are listed after the target so Name prefers the
// target spelling.
var names = []struct {
	name  string
	value Enum
}{
	{"GL_NO_ERROR", NO_ERROR},
	{"GL_INVALID_ENUM", INVALID_ENUM},
	{"GL_INVALID_VALUE", INVALID_VALUE},
	{"GL_INVALID_OPERATION", INVALID_OPERATION},
	{"GL_OUT_OF_MEMORY", OUT_OF_MEMORY},
	{"GL_TEXTURE_2D", TEXTURE_2D},
	{"GL_TEXTURE0", TEXTURE0},
	{"GL_ARRAY_BUFFER", ARRAY_BUFFER},
	{"GL_ELEMENT_ARRAY_BUFFER", ELEMENT_ARRAY_BUFFER},
	{"GL_PIXEL_PACK_BUFFER", PIXEL_PACK_BUFFER},
	{"GL_PIXEL_UNPACK_BUFFER", PIXEL_UNPACK_BUFFER},
	{"GL_COPY_READ_BUFFER", COPY_READ_BUFFER},
	{"GL_COPY_WRITE_BUFFER", COPY_WRITE_BUFFER},
	{"GL_TEXTURE_BUFFER", TEXTURE_BUFFER},
	{"GL_TRANSFORM_FEEDBACK_BUFFER", TRANSFORM_FEEDBACK_BUFFER},
	{"GL_UNIFORM_BUFFER", UNIFORM_BUFFER},
	{"GL_ATOMIC_COUNTER_BUFFER", ATOMIC_COUNTER_BUFFER},
	{"GL_DISPATCH_INDIRECT_BUFFER", DISPATCH_INDIRECT_BUFFER},
	{"GL_DRAW_INDIRECT_BUFFER", DRAW_INDIRECT_BUFFER},
	{"GL_QUERY_BUFFER", QUERY_BUFFER},
	{"GL_SHADER_STORAGE_BUFFER", SHADER_STORAGE_BUFFER},
	{"GL_ARRAY_BUFFER_BINDING", ARRAY_BUFFER_BINDING},
	{"GL_ELEMENT_ARRAY_BUFFER_BINDING", ELEMENT_ARRAY_BUFFER_BINDING},
	{"GL_PIXEL_PACK_BUFFER_BINDING", PIXEL_PACK_BUFFER_BINDING},
	{"GL_PIXEL_UNPACK_BUFFER_BINDING", PIXEL_UNPACK_BUFFER_BINDING},
	{"GL_COPY_READ_BUFFER_BINDING", COPY_READ_BUFFER_BINDING},
	{"GL_COPY_WRITE_BUFFER_BINDING", COPY_WRITE_BUFFER_BINDING},
	{"GL_TEXTURE_BUFFER_BINDING", TEXTURE_BUFFER_BINDING},
	{"GL_TRANSFORM_FEEDBACK_BUFFER_BINDING", TRANSFORM_FEEDBACK_BUFFER_BINDING},
	{"GL_UNIFORM_BUFFER_BINDING", UNIFORM_BUFFER_BINDING},
	{"GL_ATOMIC_COUNTER_BUFFER_BINDING", ATOMIC_COUNTER_BUFFER_BINDING},
	{"GL_DISPATCH_INDIRECT_BUFFER_BINDING", DISPATCH_INDIRECT_BUFFER_BINDING},
	{"GL_DRAW_INDIRECT_BUFFER_BINDING", DRAW_INDIRECT_BUFFER_BINDING},
	{"GL_QUERY_BUFFER_BINDING", QUERY_BUFFER_BINDING},
	{"GL_SHADER_STORAGE_BUFFER_BINDING", SHADER_STORAGE_BUFFER_BINDING},
	{"GL_STREAM_DRAW", STREAM_DRAW},
	{"GL_STREAM_READ", STREAM_READ},
	{"GL_STREAM_COPY", STREAM_COPY},
	{"GL_STATIC_DRAW", STATIC_DRAW},
	{"GL_STATIC_READ", STATIC_READ},
	{"GL_STATIC_COPY", STATIC_COPY},
	{"GL_DYNAMIC_DRAW", DYNAMIC_DRAW},
	{"GL_DYNAMIC_READ", DYNAMIC_READ},
	{"GL_DYNAMIC_COPY", DYNAMIC_COPY},
	{"GL_BUFFER_SIZE", BUFFER_SIZE},
	{"GL_BUFFER_USAGE", BUFFER_USAGE},
}

var (
	byName  = make(map[string]Enum, len(names))
	byValue = make(map[Enum]string, len(names))
)

func init() {
	for _, n := range names {
		byName[n.name] = n.value
		if _, ok := byValue[n.value]; !ok {
			byValue[n.value] = n.name
		}
	}
}

// Name returns the symbolic name of v, or its hex spelling when unknown.
func Name(v Enum) string {
	if n, ok := byValue[v]; ok {
		return n
	}
	return fmt.Sprintf("0x%04X", v)
}

// Parse accepts a symbolic name with or without the GL_ prefix, or a
// decimal/hex literal.
func Parse(s string) (Enum, error) {
	s = strings.TrimSpace(s)
	if v, ok := byName[s]; ok {
		return v, nil
	}
	if v, ok := byName["GL_"+strings.ToUpper(s)]; ok {
		return v, nil
	}
	n, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("gl: unknown enum %q", s)
	}
	return Enum(n), nil
}
