package mockgl

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/mockgl/buffer"
	"github.com/wippyai/mockgl/diag"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/version"
)

const (
	opBegin    = "begin"
	opFinalize = "finalize"
)

// arena holds the one active context. Its mutex guards every context's
// object state and error register.
var arena struct {
	mu         sync.Mutex
	active     *Context
	generation uint64
}

// Context is an emulated execution context. All methods must be called from
// the goroutine that called Begin.
type Context struct {
	version   *version.Version
	buffers   *buffer.Manager
	diag      *diag.Reporter
	log       *zap.Logger
	thread    uint64
	id        uint64
	lastError uint32
}

// Option configures a context.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger for the context. The default is diag.Logger().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// Begin creates the process-wide context and binds it to the calling
// goroutine's OS thread. It panics if a context is already active.
func Begin(v *version.Version, p diag.Policy, opts ...Option) *Context {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = diag.Logger()
	}
	if v == nil {
		v = version.Clear()
	}

	early := diag.NewReporter(p, o.log)

	arena.mu.Lock()
	if arena.active != nil {
		other := arena.active.id
		arena.mu.Unlock()
		early.Fatal(errors.New(errors.PhaseContext, errors.KindContextExists).
			Op(opBegin).
			Detail("context %d is still active; finalize it before beginning another", other).
			Build())
	}

	runtime.LockOSThread()
	arena.generation++
	log := o.log.With(zap.Uint64("context", arena.generation))
	c := &Context{
		version: v,
		buffers: buffer.NewManager(log),
		diag:    diag.NewReporter(p, log),
		log:     log,
		thread:  threadID(),
		id:      arena.generation,
	}
	arena.active = c
	arena.mu.Unlock()

	log.Debug("context created",
		zap.Stringer("version", v),
		zap.Stringer("policy", p),
		zap.Uint64("thread", c.thread))
	return c
}

// Finalize runs the leak check, applies the policy's teardown rule and
// releases the arena. The arena is released even when the leak check or the
// teardown rule panics.
func (c *Context) Finalize() {
	c.enter(opFinalize)
	defer func() {
		arena.active = nil
		arena.mu.Unlock()
		runtime.UnlockOSThread()
		c.log.Debug("context finalized")
	}()

	c.buffers.CheckLeaks(reporter{c})
	c.diag.Teardown(opFinalize)
}

// Active reports whether c is the context currently held by the arena.
func (c *Context) Active() bool {
	arena.mu.Lock()
	defer arena.mu.Unlock()
	return arena.active == c
}

// ID is the sequence number of the context, starting at 1.
func (c *Context) ID() uint64 { return c.id }

// Version returns the emulated version.
func (c *Context) Version() *version.Version { return c.version }

// Policy returns the diagnostics policy.
func (c *Context) Policy() diag.Policy { return c.diag.Policy() }

// Logger returns the context's logger.
func (c *Context) Logger() *zap.Logger { return c.log }

// AnyErrors reports whether an error was reported during the context's
// lifetime.
func (c *Context) AnyErrors() bool { return c.diag.AnyErrors() }

// enter locks the arena and checks that c is active and that the caller is
// on the owning thread. It returns with the arena locked.
func (c *Context) enter(op string) {
	arena.mu.Lock()
	if arena.active != c {
		arena.mu.Unlock()
		c.diag.Fatal(errors.New(errors.PhaseContext, errors.KindNoContext).
			Op(op).
			Detail("context %d is not active", c.id).
			Build())
	}
	if tid := threadID(); tid != c.thread {
		arena.mu.Unlock()
		c.diag.Fatal(errors.New(errors.PhaseContext, errors.KindCrossThread).
			Op(op).
			Detail("called from thread %d, context %d belongs to thread %d", tid, c.id, c.thread).
			Build())
	}
}

// call runs fn as entry point op: guarded by enter, holding the arena for
// its duration, after the entry-point gate.
func (c *Context) call(op string, fn func(r errors.Reporter)) {
	c.enter(op)
	defer arena.mu.Unlock()

	if req, ok := gates[op]; ok && !c.version.Satisfies(req) {
		c.report(errors.Capability(op, op, req.String()))
	}
	fn(reporter{c})
}

// report records e in the error register before handing it to the policy.
func (c *Context) report(e *errors.Error) {
	if code := e.Code(); code != errors.CodeNoError {
		c.lastError = code
	}
	c.diag.Report(e)
}

// reporter adapts a context to errors.Reporter for the subsystems.
type reporter struct{ c *Context }

func (r reporter) Report(e *errors.Error) { r.c.report(e) }

func (c *Context) String() string {
	return fmt.Sprintf("context %d (%s, %s)", c.id, c.version, c.diag.Policy())
}
