//go:build cgo

package alloc

/*
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/cxxstl/internal/abi"
)

// Malloc allocates from the C heap, the allocator native code itself would
// use.
type Malloc struct{}

func (Malloc) Allocate(size, align uintptr) unsafe.Pointer {
	// aligned_alloc needs at least pointer alignment and a size that is a
	// multiple of it.
	align = max(align, unsafe.Sizeof(uintptr(0)))
	size = abi.AlignTo(max(size, 1), align)
	return C.aligned_alloc(C.size_t(align), C.size_t(size))
}

func (Malloc) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	C.free(ptr)
}
