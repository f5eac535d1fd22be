// Package diag decides what happens to a reported condition: log it, record
// it, and panic now, at teardown, or never.
package diag

import (
	"fmt"
	"strings"
)

// Mode selects when reported errors abort.
type Mode uint8

const (
	// PanicEarly panics as soon as an error is reported.
	PanicEarly Mode = iota
	// PanicOnFinalize records errors and panics once at teardown.
	PanicOnFinalize
	// DoNotPanic records errors and leaves the error register as the only signal.
	DoNotPanic
)

var modeNames = [...]string{
	PanicEarly:      "panic-early",
	PanicOnFinalize: "panic-on-finalize",
	DoNotPanic:      "do-not-panic",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", m)
}

// ParseMode accepts the names printed by String, with '_' in place of '-'
// and in any case.
func ParseMode(s string) (Mode, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for m, name := range modeNames {
		if name == norm {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown diagnostics policy %q", s)
}

// Policy is the per-context diagnostics configuration.
type Policy struct {
	Mode Mode
	// PanicOnWarning extends PanicEarly to warnings such as double frees.
	PanicOnWarning bool
}

// DefaultPolicy panics on the first error and lets warnings through.
func DefaultPolicy() Policy {
	return Policy{Mode: PanicEarly}
}

func (p Policy) String() string {
	if p.Mode == PanicEarly && p.PanicOnWarning {
		return p.Mode.String() + "+warnings"
	}
	return p.Mode.String()
}
