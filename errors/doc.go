// Package errors provides structured error types for odin-inspect.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the value path, the debug-info type name, the target address
// and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindLayoutMismatch).
//		Path("m", "data").
//		Type("map[string]int").
//		Detail("hash field is %d bytes, want 8", size).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ReadFailed(errors.PhaseRead, addr, 16, cause)
//	err := errors.InvalidVariant(path, "Shape", 7)
//
// Decoders never return these errors past their summary and child providers: they are
// rendered as diagnostics in the output text. All errors implement the standard error
// interface and support errors.Is/As.
package errors
