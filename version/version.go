// Package version describes the emulated API profile and version, the set of
// enabled extensions, and the requirement records used to gate entry points,
// bind targets and enumerants.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind selects the API profile.
type Kind uint8

const (
	Desktop Kind = iota
	Embedded
)

func (k Kind) String() string {
	switch k {
	case Desktop:
		return "OpenGL"
	case Embedded:
		return "OpenGL ES"
	default:
		return "unknown"
	}
}

// ParseKind accepts "desktop"/"gl" and "embedded"/"es"/"gles".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desktop", "gl", "opengl":
		return Desktop, nil
	case "embedded", "es", "gles", "opengl es":
		return Embedded, nil
	default:
		return 0, fmt.Errorf("version: unknown profile %q", s)
	}
}

// Number is a (major, minor) pair ordered lexicographically.
type Number struct {
	Major uint8
	Minor uint8
}

// At returns a pointer to the number major.minor, for use in Requirement
// and Extension literals.
func At(major, minor uint8) *Number {
	return &Number{Major: major, Minor: minor}
}

// AtLeast reports whether n >= other, major first, then minor.
func (n Number) AtLeast(other Number) bool {
	return n.Major > other.Major || (n.Major == other.Major && n.Minor >= other.Minor)
}

func (n Number) String() string {
	return fmt.Sprintf("%d.%d", n.Major, n.Minor)
}

// ParseNumber parses "major.minor".
func ParseNumber(s string) (Number, error) {
	majorStr, minorStr, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return Number{}, fmt.Errorf("version: %q is not major.minor", s)
	}
	major, err := strconv.ParseUint(majorStr, 10, 8)
	if err != nil {
		return Number{}, fmt.Errorf("version: bad major in %q: %w", s, err)
	}
	minor, err := strconv.ParseUint(minorStr, 10, 8)
	if err != nil {
		return Number{}, fmt.Errorf("version: bad minor in %q: %w", s, err)
	}
	return Number{Major: uint8(major), Minor: uint8(minor)}, nil
}

// Version is the emulated profile, its version number and the extensions
// available to the client.
type Version struct {
	extensions []*Extension
	Kind       Kind
	Number
}

// New builds a version whose extension set is the union of every catalogue
// extension unlocked by (kind, major, minor) and the explicitly supplied ones.
// Duplicates are dropped by name.
func New(kind Kind, major, minor uint8, extensions ...*Extension) *Version {
	v := &Version{
		Kind:   kind,
		Number: Number{Major: major, Minor: minor},
	}
	for _, ext := range Unlocked(kind, major, minor) {
		v.add(ext)
	}
	for _, ext := range extensions {
		v.add(ext)
	}
	return v
}

// FromExtensions is a desktop 0.0 version with only the given extensions.
func FromExtensions(extensions ...*Extension) *Version {
	return New(Desktop, 0, 0, extensions...)
}

// FromVersion is a version with no explicitly requested extensions.
func FromVersion(kind Kind, major, minor uint8) *Version {
	return New(kind, major, minor)
}

// Clear is a desktop 0.0 version with no extensions. Every gated
// operation fails its capability check under it.
func Clear() *Version {
	return New(Desktop, 0, 0)
}

func (v *Version) add(ext *Extension) {
	if ext == nil || v.Requires(ext) {
		return
	}
	v.extensions = append(v.extensions, ext)
}

// AtLeast reports whether the profile is kind and the version is at least
// major.minor.
func (v *Version) AtLeast(kind Kind, major, minor uint8) bool {
	return v.Kind == kind && v.Number.AtLeast(Number{Major: major, Minor: minor})
}

// Requires reports whether ext is enabled, compared by name.
func (v *Version) Requires(ext *Extension) bool {
	if ext == nil {
		return false
	}
	for _, e := range v.extensions {
		if e.Name == ext.Name {
			return true
		}
	}
	return false
}

// Extensions returns the enabled extensions in insertion order.
func (v *Version) Extensions() []*Extension {
	out := make([]*Extension, len(v.extensions))
	copy(out, v.extensions)
	return out
}

// Satisfies reports whether any branch of req holds.
func (v *Version) Satisfies(req Requirement) bool {
	if req.IsZero() {
		return true
	}
	if req.GL != nil && v.AtLeast(Desktop, req.GL.Major, req.GL.Minor) {
		return true
	}
	if req.ES != nil && v.AtLeast(Embedded, req.ES.Major, req.ES.Minor) {
		return true
	}
	return req.Ext != nil && v.Requires(req.Ext)
}

func (v *Version) String() string {
	return fmt.Sprintf("%s %s", v.Kind, v.Number)
}

// Requirement is the minimum a gated feature needs. Any satisfied branch is
// enough; a zero Requirement is always satisfied.
type Requirement struct {
	GL  *Number
	ES  *Number
	Ext *Extension
}

// IsZero reports whether the requirement gates nothing.
func (r Requirement) IsZero() bool {
	return r.GL == nil && r.ES == nil && r.Ext == nil
}

// String renders the requirement for diagnostics, for example
// "OpenGL 4.5 or ARB_direct_state_access".
func (r Requirement) String() string {
	var parts []string
	if r.GL != nil {
		parts = append(parts, "OpenGL "+r.GL.String())
	}
	if r.ES != nil {
		parts = append(parts, "OpenGL ES "+r.ES.String())
	}
	if r.Ext != nil {
		parts = append(parts, r.Ext.Name)
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, " or ")
}
