package alloc

import (
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
	"github.com/wippyai/cxxstl/internal/cstl"
)

// Allocator hands out aligned blocks of foreign memory.
//
// Allocate returns nil when the request cannot be served. Deallocate receives
// the size and alignment the block was allocated with.
type Allocator interface {
	Allocate(size, align uintptr) unsafe.Pointer
	Deallocate(ptr unsafe.Pointer, size, align uintptr)
}

// Proxier is implemented by allocators whose native calls must go through a
// separate short-lived handle rather than the allocator value itself.
type Proxier interface {
	Proxy() Allocator
}

// WithProxy runs f with an allocator proxy record for a.
func WithProxy[A Allocator](a *A, f func(p *cstl.Alloc)) {
	if px, ok := any(*a).(Proxier); ok {
		h := px.Proxy()
		withHandle(&h, f)
		return
	}
	withHandle(a, f)
}

func withHandle[H Allocator](h *H, f func(p *cstl.Alloc)) {
	p := cstl.Alloc{
		Opaque:       unsafe.Pointer(h),
		AlignedAlloc: rawAlloc[H],
		AlignedFree:  rawFree[H],
	}
	f(&p)
}

func rawAlloc[H Allocator](opaque unsafe.Pointer, size, align uintptr) unsafe.Pointer {
	checkLayout(size, align)
	return (*(*H)(opaque)).Allocate(size, align)
}

func rawFree[H Allocator](opaque, ptr unsafe.Pointer, size, align uintptr) {
	if ptr == nil {
		return
	}
	checkLayout(size, align)
	(*(*H)(opaque)).Deallocate(ptr, size, align)
}

func checkLayout(size, align uintptr) {
	if !abi.ValidLayout(size, align) {
		errors.Fatal(errors.BadLayout(errors.PhaseAlloc, size, align))
	}
}
