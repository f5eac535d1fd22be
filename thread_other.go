//go:build !linux && !windows

package mockgl

import (
	"runtime"

	"github.com/wippyai/mockgl/errors"
)

// threadID falls back to the goroutine id. Begin pins the goroutine to its
// thread, so the two identify the same caller. An unreadable id would make
// every caller look alike, so it aborts instead.
func threadID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	id, err := goroutineID(buf[:n])
	if err != nil {
		e := errors.Wrap(errors.PhaseContext, errors.KindCrossThread, err, "cannot identify the calling thread")
		e.Severity = errors.SeverityFatal
		panic(e)
	}
	return id
}
