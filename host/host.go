// Package host exposes the entry-point catalogue to WebAssembly guests as a
// wazero host module. Pointer arguments address the calling module's
// exported memory.
//
// wazero runs host functions on the goroutine that called into the guest, so
// guests must be driven from the goroutine that began the context.
package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/mockgl"
	"github.com/wippyai/mockgl/errors"
	"github.com/wippyai/mockgl/proc"
)

// DefaultModule is the import module name guests link against.
const DefaultModule = "gl"

// Option configures the host module.
type Option func(*options)

type options struct {
	module string
}

// WithModuleName overrides the import module name.
func WithModuleName(name string) Option {
	return func(o *options) {
		o.module = name
	}
}

func hostFunc(c *mockgl.Context, h proc.Func) api.GoModuleFunc {
	return func(_ context.Context, caller api.Module, stack []uint64) {
		h(c, guestMemory{mem: caller.Memory()}, stack)
	}
}

// Instantiate registers every catalogue name and alias in rt.
func Instantiate(ctx context.Context, rt wazero.Runtime, c *mockgl.Context, opts ...Option) (api.Module, error) {
	o := options{module: DefaultModule}
	for _, opt := range opts {
		opt(&o)
	}

	b := rt.NewHostModuleBuilder(o.module)
	exported := 0
	for _, e := range proc.Entries() {
		fn := hostFunc(c, e.Handler)
		for _, name := range append([]string{e.Name}, e.Aliases...) {
			b.NewFunctionBuilder().
				WithGoModuleFunction(fn, e.Params, e.Results).
				WithName(name).
				Export(name)
			exported++
		}
	}

	mod, err := b.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInstantiation, err,
			"instantiate host module "+o.module)
	}
	c.Logger().Debug("host module ready",
		zap.String("module", o.module),
		zap.Int("functions", exported))
	return mod, nil
}

// Run compiles wasm, links it against the host module and calls entry with
// no arguments. Start functions are not run.
func Run(ctx context.Context, c *mockgl.Context, wasm []byte, entry string, opts ...Option) ([]uint64, error) {
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	if _, err := Instantiate(ctx, rt, c, opts...); err != nil {
		return nil, err
	}

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInvalidInput, err, "compile guest")
	}

	guest, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithStartFunctions())
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindInstantiation, err, "instantiate guest")
	}

	fn := guest.ExportedFunction(entry)
	if fn == nil {
		return nil, errors.New(errors.PhaseHost, errors.KindNotFound).
			Detail("guest exports no function %q", entry).
			Build()
	}

	results, err := fn.Call(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindGuestTrap, err, "call "+entry)
	}
	return results, nil
}
