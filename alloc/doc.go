// Package alloc provides the allocators containers are parameterized over and
// the bridge that exposes them to native calls.
//
// # Proxy Bridge
//
// WithProxy turns an allocator into a cstl.Alloc record for the duration of
// one call. The record's opaque pointer is the address of a call-scoped
// handle: the value returned by Proxy when the allocator implements Proxier,
// the allocator itself otherwise. The two function pointers are generic
// instantiations per handle type, fixed at compile time.
//
//	alloc.WithProxy(&a, func(p *cstl.Alloc) {
//	    cstl.Vector.Reserve(&rec, typ, &move, 16, p)
//	})
//
// The record must not be kept after the callback returns.
//
// # Allocators
//
//   - System: Go heap blocks pinned in a registry until freed
//   - Pages: anonymous OS mappings (unix)
//   - Linear: a fixed-size wazero linear memory
//   - Malloc: the C heap via aligned_alloc (cgo builds)
//   - Counting: wraps any allocator and balances allocations against frees
//
// Allocators return nil when they cannot satisfy a request. The native side
// treats that as std::bad_alloc, which is fatal. Malformed layouts never
// reach an allocator; the bridge rejects them first.
package alloc
