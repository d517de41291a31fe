// Package cxxstl provides Go containers whose headers are binary compatible
// with the MSVC C++ standard library.
//
// A vector, list or string built by this module can be handed to native code
// that expects std::vector, std::list or std::basic_string, and a header
// received from native code can be adopted without copying. Container
// algorithms run on the native side; Go only owns the header, the allocator
// and the element semantics.
//
// # Architecture Overview
//
//	cxxstl/             Root package with Dropper, Cloner and the package logger
//	├── semantics/      Per-type descriptors (type tag, drop, move, copy, fill)
//	├── alloc/          Allocators and the call-scoped allocator proxy bridge
//	├── layout/         Allocator/value wrappers for both field orders
//	├── vector/         std::vector facade (msvc2012/ for the legacy order)
//	├── list/           std::list facade
//	├── cxxstring/      std::basic_string facades for five encodings
//	├── errors/         Structured error types used by fatal paths
//	├── internal/cstl/  Native record layouts and function tables
//	└── cmd/cxxlayout/  Prints record sizes and field offsets
//
// # Quick Start
//
//	v := vector.New[int32]()
//	defer v.Drop()
//
//	v.Push(1)
//	v.Push(2)
//	fmt.Println(v.AsSlice()) // [1 2]
//
// # Ownership
//
// Containers are plain values that own foreign memory. They are released with
// Drop, never by the garbage collector. Copying a container value copies the
// header only; use Clone for an independent copy. Elements implementing
// Dropper are dropped exactly once, elements implementing Cloner are cloned
// by Clone, Resize and the copy pushes.
//
// Elements live in memory the garbage collector does not scan, so element
// types must be free of Go pointers. Storing a type with pointers panics.
//
// # Allocators
//
// Every container is generic over its allocator. alloc.System uses pinned Go
// heap blocks, alloc.Pages maps pages from the OS, alloc.Linear carves a fixed
// wazero linear memory and alloc.Counting wraps any of them to balance
// allocations against frees.
//
// # Thread Safety
//
// Containers are not synchronized. A container may move between goroutines
// when its elements and its allocator may. The shared allocators in package
// alloc are safe for concurrent use.
//
// # Failures
//
// Contract violations (out of bounds insert, capacity overflow, malformed
// layouts, unknown frees) are fatal. They are logged through Logger and then
// panic with an *errors.Error. Operations that simply have nothing to return,
// such as popping an empty vector, report that through a boolean.
package cxxstl
