//go:build unix

package alloc

import (
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/wippyai/cxxstl"
	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

var pageBlocks = xsync.NewMapOf[uintptr, []byte]()

// PagesOptions configures a Pages allocator.
type PagesOptions struct {
	// MinLength is the smallest mapping made for a block. It is rounded up
	// to whole pages.
	MinLength uintptr
}

// DefaultPagesOptions maps at least one page per block.
func DefaultPagesOptions() PagesOptions {
	return PagesOptions{MinLength: uintptr(unix.Getpagesize())}
}

// Pages maps every block as private anonymous memory. It suits large,
// long-lived buffers; small blocks still cost a whole page. The zero value
// uses DefaultPagesOptions.
type Pages struct {
	min uintptr
}

// NewPages returns a Pages allocator configured by opts.
func NewPages(opts PagesOptions) Pages {
	return Pages{min: opts.MinLength}
}

func (p Pages) Allocate(size, align uintptr) unsafe.Pointer {
	page := uintptr(unix.Getpagesize())
	length := abi.AlignTo(max(size, p.min, 1), page)
	if align > page {
		length += align
	}
	if length > abi.MaxSize {
		return nil
	}
	mem, err := unix.Mmap(-1, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		cxxstl.Logger().Debug("mmap failed", zap.Uintptr("length", length), zap.Error(err))
		return nil
	}
	base := unsafe.Pointer(unsafe.SliceData(mem))
	ptr := unsafe.Add(base, abi.AlignTo(uintptr(base), align)-uintptr(base))
	pageBlocks.Store(uintptr(ptr), mem)
	cxxstl.Logger().Debug("mapped pages",
		zap.Uintptr("addr", uintptr(ptr)),
		zap.Uintptr("size", size),
		zap.Uintptr("length", length),
	)
	return ptr
}

func (Pages) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	mem, ok := pageBlocks.LoadAndDelete(uintptr(ptr))
	if !ok {
		errors.Fatal(errors.InvalidFree(errors.PhaseAlloc, uintptr(ptr)))
	}
	if err := unix.Munmap(mem); err != nil {
		cxxstl.Logger().Warn("munmap failed", zap.Uintptr("addr", uintptr(ptr)), zap.Error(err))
		return
	}
	cxxstl.Logger().Debug("unmapped pages", zap.Uintptr("addr", uintptr(ptr)), zap.Int("length", len(mem)))
}

// PagesLive returns the number of mappings not yet released.
func PagesLive() int {
	return pageBlocks.Size()
}
