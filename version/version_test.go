package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtLeast(t *testing.T) {
	v := FromVersion(Desktop, 3, 2)

	assert.True(t, v.AtLeast(Desktop, 3, 2))
	assert.True(t, v.AtLeast(Desktop, 3, 1))
	assert.True(t, v.AtLeast(Desktop, 2, 9))
	assert.False(t, v.AtLeast(Desktop, 3, 3))
	assert.False(t, v.AtLeast(Desktop, 4, 0))
	assert.False(t, v.AtLeast(Embedded, 2, 0), "profile must match")
}

func TestSatisfies(t *testing.T) {
	gated := Requirement{GL: At(4, 5), Ext: ARB_direct_state_access}
	versionOnly := Requirement{GL: At(3, 2)}
	both := Requirement{GL: At(2, 1), ES: At(2, 0)}

	tests := []struct {
		name string
		v    *Version
		req  Requirement
		want bool
	}{
		{"clear fails extension gate", Clear(), gated, false},
		{"clear fails version gate", Clear(), versionOnly, false},
		{"explicit extension", FromExtensions(ARB_direct_state_access), gated, true},
		{"version seeds extension", FromVersion(Desktop, 4, 6), gated, true},
		{"desktop version met", FromVersion(Desktop, 4, 6), versionOnly, true},
		{"es does not meet gl", FromVersion(Embedded, 4, 6), versionOnly, false},
		{"es branch", FromVersion(Embedded, 2, 0), both, true},
		{"gl branch", FromVersion(Desktop, 2, 1), both, true},
		{"zero requirement", Clear(), Requirement{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Satisfies(tt.req))
		})
	}
}

func TestExtensionSeeding(t *testing.T) {
	v := FromVersion(Desktop, 4, 4)
	assert.True(t, v.Requires(ARB_buffer_storage))
	assert.True(t, v.Requires(ARB_copy_buffer))
	assert.False(t, v.Requires(ARB_direct_state_access))

	es := FromVersion(Embedded, 3, 1)
	assert.True(t, es.Requires(ARB_shader_storage_buffer_object))
	assert.False(t, es.Requires(ARB_buffer_storage))
}

func TestExtensionsUniqueByName(t *testing.T) {
	dup := &Extension{Name: "ARB_buffer_storage"}
	v := New(Desktop, 4, 4, ARB_buffer_storage, dup)

	count := 0
	for _, ext := range v.Extensions() {
		if ext.Name == "ARB_buffer_storage" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.True(t, v.Requires(dup), "membership compares by name")
}

func TestProvided(t *testing.T) {
	assert.Equal(t, "ARB_copy_buffer or OpenGL 3.1 or OpenGL ES 3.0", ARB_copy_buffer.Provided())
	assert.Equal(t, "EXT_direct_state_access", EXT_direct_state_access.Provided())
}

func TestRequirementString(t *testing.T) {
	assert.Equal(t, "OpenGL 2.1 or OpenGL ES 2.0", Requirement{GL: At(2, 1), ES: At(2, 0)}.String())
	assert.Equal(t, "OpenGL 4.5 or ARB_direct_state_access",
		Requirement{GL: At(4, 5), Ext: ARB_direct_state_access}.String())
	assert.Equal(t, "nothing", Requirement{}.String())
}

func TestParse(t *testing.T) {
	n, err := ParseNumber("4.5")
	require.NoError(t, err)
	assert.Equal(t, Number{Major: 4, Minor: 5}, n)

	_, err = ParseNumber("4")
	assert.Error(t, err)
	_, err = ParseNumber("x.1")
	assert.Error(t, err)

	k, err := ParseKind("ES")
	require.NoError(t, err)
	assert.Equal(t, Embedded, k)
	_, err = ParseKind("vulkan")
	assert.Error(t, err)

	ext, ok := Lookup("GL_ARB_buffer_storage")
	require.True(t, ok)
	assert.Same(t, ARB_buffer_storage, ext)
}

func TestString(t *testing.T) {
	assert.Equal(t, "OpenGL ES 3.1", FromVersion(Embedded, 3, 1).String())
}
