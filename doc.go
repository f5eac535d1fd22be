// Package mockgl emulates a buffer-object graphics API context so client code
// can be exercised without a driver or accelerator.
//
// Calls are validated against the rules and version gates of the emulated
// API, the object state they would produce is tracked, and the same error
// codes a real implementation reports are surfaced through GetError.
//
// # Architecture Overview
//
//	mockgl/             Root package: Context, arena, thread guard, entry points
//	├── version/        Profile, version number, extension catalogue, requirements
//	├── gl/             Numeric constants and their names
//	├── errors/         Structured conditions with API error codes
//	├── resource/       Generic handle table; handles are never reused
//	├── binding/        Bind targets and the per-target binding table
//	├── buffer/         Buffer objects, data stores and their validation rules
//	├── diag/           Diagnostics policy and zap-backed reporting
//	├── proc/           Entry-point catalogue with aliases and a linear-memory ABI
//	├── host/           The catalogue exposed to guests as a wazero host module
//	├── config/         TOML configuration
//	├── scenario/       YAML call scripts with expectations
//	└── cmd/mockgl/     Command line front end
//
// # Quick Start
//
//	ctx := mockgl.Begin(version.FromVersion(version.Desktop, 2, 1), diag.DefaultPolicy())
//	defer ctx.Finalize()
//
//	bufs := ctx.GenBuffers(1)
//	ctx.BindBuffer(gl.ARRAY_BUFFER, bufs[0])
//	ctx.BufferData(gl.ARRAY_BUFFER, 4, []byte{1, 2, 3, 4}, gl.STATIC_DRAW)
//	ctx.DeleteBuffers(1, bufs)
//
// # Contexts
//
// At most one context exists process-wide. Begin on a second context while
// one is active panics, as does calling into a context from any goroutine
// other than the one that created it. Begin locks the calling goroutine to
// its OS thread until Finalize.
//
// Finalize reports any buffer that was never deleted and applies the
// diagnostics policy's teardown rule. After Finalize a new context may begin.
//
// # Errors
//
// Every condition first updates the single-slot error register, then goes to
// the diag.Reporter, which may panic with the *errors.Error depending on the
// policy. GetError returns the latest unread code and clears it.
package mockgl
