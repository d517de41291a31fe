package alloc

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"unsafe"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/cxxstl"
	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

// WasmPageSize is the size of one WebAssembly memory page.
const WasmPageSize = 65536

// LinearOptions configures a Linear allocator.
type LinearOptions struct {
	// Pages is the fixed memory size in 64 KiB pages. The memory never grows,
	// so its address stays stable.
	Pages uint32

	// Guard is the number of bytes kept unused at both ends of the memory.
	// Offset 0 stays free so that no block maps to the wasm null pointer, and
	// the tail keeps one-past-the-end pointers inside the memory.
	Guard uint32
}

// DefaultLinearOptions returns options for a 1 MiB memory.
func DefaultLinearOptions() LinearOptions {
	return LinearOptions{
		Pages: 16,
		Guard: 16,
	}
}

type span struct {
	off, len uintptr
}

// Linear allocates from a wazero linear memory using a first-fit free list.
// Blocks are addressable both as Go pointers and as wasm offsets.
type Linear struct {
	rt     wazero.Runtime
	mod    api.Module
	mem    api.Memory
	buf    []byte
	free   []span
	used   map[uintptr]uintptr
	mu     sync.Mutex
	closed bool
}

// NewLinear instantiates a memory-only module and returns an allocator over
// its exported memory.
func NewLinear(ctx context.Context, opts LinearOptions) (*Linear, error) {
	if opts.Pages == 0 || opts.Pages > 65535 {
		return nil, errors.InvalidInput(errors.PhaseAlloc, fmt.Sprintf("linear memory pages %d out of range", opts.Pages))
	}
	total := uintptr(opts.Pages) * WasmPageSize
	if 2*uintptr(opts.Guard) >= total {
		return nil, errors.InvalidInput(errors.PhaseAlloc, "guard leaves no usable memory")
	}

	rt := wazero.NewRuntime(ctx)
	mod, err := rt.Instantiate(ctx, memoryModule(opts.Pages))
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err, "instantiate linear memory")
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		rt.Close(ctx)
		return nil, errors.NotInitialized(errors.PhaseAlloc, "linear memory")
	}
	buf, ok := mem.Read(0, mem.Size())
	if !ok || uintptr(len(buf)) != total {
		rt.Close(ctx)
		return nil, errors.NotInitialized(errors.PhaseAlloc, "linear memory view")
	}

	guard := abi.AlignTo(max(uintptr(opts.Guard), 1), 16)
	cxxstl.Logger().Debug("linear memory ready",
		zap.Uint32("pages", opts.Pages),
		zap.Uintptr("usable", total-2*guard),
	)
	return &Linear{
		rt:   rt,
		mod:  mod,
		mem:  mem,
		buf:  buf,
		free: []span{{off: guard, len: total - 2*guard}},
		used: make(map[uintptr]uintptr),
	}, nil
}

// Memory returns the underlying wasm memory.
func (l *Linear) Memory() api.Memory {
	return l.mem
}

func (l *Linear) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(l.buf)))
}

// Offset converts a block pointer to its wasm address.
func (l *Linear) Offset(p unsafe.Pointer) (uint32, bool) {
	a, b := uintptr(p), l.base()
	if a < b || a-b >= uintptr(len(l.buf)) {
		return 0, false
	}
	return uint32(a - b), true
}

func (l *Linear) Allocate(size, align uintptr) unsafe.Pointer {
	size = max(size, 1)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}

	base := l.base()
	for i, s := range l.free {
		// Align the absolute address, not the offset.
		start := abi.AlignTo(base+s.off, align) - base
		end, ok := abi.SafeAdd(start, size)
		if !ok || end > s.off+s.len {
			continue
		}
		var parts []span
		if start > s.off {
			parts = append(parts, span{off: s.off, len: start - s.off})
		}
		if tail := s.off + s.len - end; tail > 0 {
			parts = append(parts, span{off: end, len: tail})
		}
		l.free = slices.Replace(l.free, i, i+1, parts...)
		l.used[start] = size
		cxxstl.Logger().Debug("linear alloc", zap.Uintptr("offset", start), zap.Uintptr("size", size))
		return unsafe.Add(unsafe.Pointer(unsafe.SliceData(l.buf)), start)
	}
	cxxstl.Logger().Debug("linear memory exhausted", zap.Uintptr("size", size), zap.Uintptr("align", align))
	return nil
}

func (l *Linear) Deallocate(ptr unsafe.Pointer, size, align uintptr) {
	l.mu.Lock()
	defer l.mu.Unlock()

	off, ok := l.Offset(ptr)
	if !ok {
		errors.Fatal(errors.InvalidFree(errors.PhaseAlloc, uintptr(ptr)))
	}
	n, ok := l.used[uintptr(off)]
	if !ok {
		errors.Fatal(errors.InvalidFree(errors.PhaseAlloc, uintptr(ptr)))
	}
	delete(l.used, uintptr(off))
	l.release(span{off: uintptr(off), len: n})
	cxxstl.Logger().Debug("linear free", zap.Uint32("offset", off), zap.Uintptr("size", n))
}

// release returns s to the free list and merges it with its neighbours.
func (l *Linear) release(s span) {
	i, _ := slices.BinarySearchFunc(l.free, s.off, func(f span, off uintptr) int {
		switch {
		case f.off < off:
			return -1
		case f.off > off:
			return 1
		}
		return 0
	})
	l.free = slices.Insert(l.free, i, s)
	if i+1 < len(l.free) && l.free[i].off+l.free[i].len == l.free[i+1].off {
		l.free[i].len += l.free[i+1].len
		l.free = slices.Delete(l.free, i+1, i+2)
	}
	if i > 0 && l.free[i-1].off+l.free[i-1].len == l.free[i].off {
		l.free[i-1].len += l.free[i].len
		l.free = slices.Delete(l.free, i, i+1)
	}
}

// LiveBlocks returns the number of blocks not yet freed.
func (l *Linear) LiveBlocks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.used)
}

// FreeBytes returns the total size of the free list.
func (l *Linear) FreeBytes() uintptr {
	l.mu.Lock()
	defer l.mu.Unlock()
	var n uintptr
	for _, s := range l.free {
		n += s.len
	}
	return n
}

// Close releases the memory. Blocks still in use become invalid.
func (l *Linear) Close(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	if n := len(l.used); n > 0 {
		cxxstl.Logger().Warn("closing linear memory with live blocks", zap.Int("blocks", n))
	}
	l.mu.Unlock()
	return l.rt.Close(ctx)
}

// memoryModule builds a module exporting one memory of exactly pages pages.
func memoryModule(pages uint32) []byte {
	limits := []byte{0x01} // flags: min and max present
	limits = appendULEB(limits, pages)
	limits = appendULEB(limits, pages)
	memory := append([]byte{0x01}, limits...) // one memory

	export := []byte{0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00}

	out := []byte{
		0x00, 0x61, 0x73, 0x6d, // magic
		0x01, 0x00, 0x00, 0x00, // version
	}
	out = append(out, 0x05)
	out = appendULEB(out, uint32(len(memory)))
	out = append(out, memory...)
	out = append(out, 0x07)
	out = appendULEB(out, uint32(len(export)))
	out = append(out, export...)
	return out
}

func appendULEB(b []byte, v uint32) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v == 0 {
			return append(b, c)
		}
		b = append(b, c|0x80)
	}
}
