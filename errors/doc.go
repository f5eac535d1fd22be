// Package errors provides structured condition types for the mockgl emulator.
//
// Conditions are categorized by Phase (which subsystem detected them), Kind
// (what went wrong) and Severity (how the diagnostics policy treats them).
// Kinds that correspond to an API error code expose it through Code, which is
// what the context's error register reports back to the client.
//
// Use the Builder for structured construction:
//
//	err := errors.New(errors.PhaseBinding, errors.KindInvalidValue).
//		Op("glBindBuffer").
//		Handle(7).
//		Detail("attempted to bind an unallocated buffer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidEnum(errors.PhaseBuffer, "glBufferData", usage, "usage")
//	err := errors.DoubleFree(errors.PhaseResource, "glDeleteBuffers", 3)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two errors match under errors.Is when their Kind is equal.
package errors
