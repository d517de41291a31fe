// Package errors provides structured error types for the cxxstl module.
//
// Errors are categorized by Phase (which layer raised the error) and Kind
// (error category). The Error type carries the Go type, the native record the
// error concerns, a path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseVector, errors.KindOverflow).
//		GoType("int64").
//		NativeType("std::vector").
//		Detail("capacity %d exceeds max_size", n).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseVector, "insert", 10, 5)
//	err := errors.BadLayout(errors.PhaseAlloc, 24, 3)
//
// Contract violations are not returned. They are raised with Fatal, which
// logs the error and panics with it:
//
//	errors.Fatal(errors.OutOfBounds(errors.PhaseList, "remove", i, n))
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
