// Package layout co-locates an allocator and a native value record in one
// structure whose field order matches a given native ABI revision.
//
// AllocFirst places the allocator before the record, the order MSVC uses
// since its compressed-pair headers. ValueFirst places it after, the order of
// the 2012 toolset. Both implement Wrapper, and containers select one through
// a type parameter:
//
//	type VecLayout[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawVec]] struct {
//	    inner L
//	}
//
// WithProxy pairs the record with a proxy for the allocator for exactly one
// native call. Destroy runs the native destructor before the allocator is
// released.
package layout
