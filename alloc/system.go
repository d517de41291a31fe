package alloc

import (
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

// systemBlocks pins every live System block. Blocks hold no pointers the
// collector would follow, so the registry is what keeps them alive.
var systemBlocks = xsync.NewMapOf[uintptr, []byte]()

// System allocates from the Go heap. The zero value is ready to use.
type System struct{}

// Allocate returns a zeroed block. The block has align spare bytes past its
// end so that one-past-the-end pointers stay inside the allocation.
func (System) Allocate(size, align uintptr) unsafe.Pointer {
	if size > abi.MaxSize-align {
		return nil
	}
	buf := make([]byte, size+align)
	base := unsafe.Pointer(unsafe.SliceData(buf))
	p := unsafe.Add(base, abi.AlignTo(uintptr(base), align)-uintptr(base))
	systemBlocks.Store(uintptr(p), buf)
	return p
}

// Deallocate releases a block returned by Allocate.
func (System) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	if _, ok := systemBlocks.LoadAndDelete(uintptr(ptr)); !ok {
		errors.Fatal(errors.InvalidFree(errors.PhaseAlloc, uintptr(ptr)))
	}
}

// SystemLive returns the number of System blocks not yet freed.
func SystemLive() int {
	return systemBlocks.Size()
}
