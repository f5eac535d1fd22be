package diag

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/mockgl/errors"
)

// Reporter applies a Policy to conditions. Fatal conditions always panic.
// Panics carry the *errors.Error as their value.
type Reporter struct {
	log       *zap.Logger
	policy    Policy
	mu        sync.Mutex
	warnings  int
	errors    int
	anyErrors bool
}

// NewReporter creates a reporter. A nil logger uses Logger().
func NewReporter(p Policy, log *zap.Logger) *Reporter {
	if log == nil {
		log = Logger()
	}
	return &Reporter{policy: p, log: log}
}

// Report logs e, records it, and panics if the policy says so.
func (r *Reporter) Report(e *errors.Error) {
	r.emit(e)

	r.mu.Lock()
	switch e.Severity {
	case errors.SeverityWarning:
		r.warnings++
	default:
		r.errors++
		r.anyErrors = true
	}
	p := r.policy
	r.mu.Unlock()

	if e.Fatal() {
		panic(e)
	}
	if p.Mode != PanicEarly {
		return
	}
	if e.Severity != errors.SeverityWarning || p.PanicOnWarning {
		panic(e)
	}
}

// Fatal reports e with fatal severity; it never returns.
func (r *Reporter) Fatal(e *errors.Error) {
	e.Severity = errors.SeverityFatal
	r.Report(e)
}

// Teardown panics when the policy defers errors to finalize and at least one
// error was reported.
func (r *Reporter) Teardown(op string) {
	r.mu.Lock()
	fire := r.policy.Mode == PanicOnFinalize && r.anyErrors
	n := r.errors
	r.mu.Unlock()

	if fire {
		r.Report(errors.Fatal(errors.PhaseContext, errors.KindTeardown, op,
			fmt.Sprintf("%d error(s) reported during the context's lifetime", n)))
	}
}

// AnyErrors reports whether an error or fatal condition was seen.
func (r *Reporter) AnyErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.anyErrors
}

// Counts returns the number of warnings and errors reported so far.
func (r *Reporter) Counts() (warnings, errs int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings, r.errors
}

// Policy returns the configured policy.
func (r *Reporter) Policy() Policy {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.policy
}

func (r *Reporter) emit(e *errors.Error) {
	fields := []zap.Field{
		zap.String("op", e.Op),
		zap.String("phase", string(e.Phase)),
		zap.String("kind", string(e.Kind)),
		zap.Stringer("severity", e.Severity),
	}
	if code := e.Code(); code != errors.CodeNoError {
		fields = append(fields, zap.String("code", fmt.Sprintf("0x%04X", code)))
	}
	if len(e.Handles) > 0 {
		fields = append(fields, zap.Uint32s("handles", e.Handles))
	}
	if e.Cause != nil {
		fields = append(fields, zap.NamedError("cause", e.Cause))
	}

	msg := e.Detail
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Severity == errors.SeverityWarning {
		r.log.Warn(msg, fields...)
		return
	}
	fields = append(fields, zap.Stack("backtrace"))
	r.log.Error(msg, fields...)
}
