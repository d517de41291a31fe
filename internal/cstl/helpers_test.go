package cstl

import (
	"testing"
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
)

// testHeap is a minimal allocator behind an Alloc record.
type testHeap struct {
	blocks map[uintptr][]byte
	allocs int
	frees  int
	fail   bool
}

func newTestHeap() *testHeap {
	return &testHeap{blocks: make(map[uintptr][]byte)}
}

func (h *testHeap) proxy() *Alloc {
	return &Alloc{
		Opaque: unsafe.Pointer(h),
		AlignedAlloc: func(opaque unsafe.Pointer, size, align uintptr) unsafe.Pointer {
			h := (*testHeap)(opaque)
			if h.fail {
				return nil
			}
			buf := make([]byte, size+align)
			p := unsafe.Pointer(&buf[0])
			p = unsafe.Add(p, (align-uintptr(p)%align)%align)
			h.blocks[uintptr(p)] = buf
			h.allocs++
			return p
		},
		AlignedFree: func(opaque, ptr unsafe.Pointer, size, align uintptr) {
			h := (*testHeap)(opaque)
			if ptr == nil {
				return
			}
			if _, ok := h.blocks[uintptr(ptr)]; !ok {
				panic("free of unknown block")
			}
			delete(h.blocks, uintptr(ptr))
			h.frees++
		},
	}
}

func (h *testHeap) live() int {
	return len(h.blocks)
}

// int64 element semantics that count drops.
type int64Ops struct {
	drops int
}

func (o *int64Ops) typ() Type {
	return TypeOf(8, 8)
}

func (o *int64Ops) dropType() *DropType {
	return &DropType{Drop: func(first, last unsafe.Pointer) {
		o.drops += int((uintptr(last) - uintptr(first)) / 8)
	}}
}

func (o *int64Ops) forget() *DropType {
	return &DropType{Drop: func(first, last unsafe.Pointer) {}}
}

func (o *int64Ops) moveType() *MoveType {
	return &MoveType{
		DropType: *o.dropType(),
		Move: func(first, last, dest unsafe.Pointer) {
			for p := first; p != last; p = unsafe.Add(p, 8) {
				*(*int64)(dest) = *(*int64)(p)
				dest = unsafe.Add(dest, 8)
			}
		},
	}
}

func (o *int64Ops) copyType() *CopyType {
	m := o.moveType()
	return &CopyType{
		MoveType: *m,
		Copy:     m.Move,
		Fill: func(first, last, value unsafe.Pointer) {
			for p := first; p != last; p = unsafe.Add(p, 8) {
				*(*int64)(p) = *(*int64)(value)
			}
		},
	}
}

func vecInts(v *VectorVal) []int64 {
	if v.First == nil {
		return nil
	}
	n := (uintptr(v.Last) - uintptr(v.First)) / 8
	return unsafe.Slice((*int64)(v.First), n)
}

func mustPanicKind(t *testing.T, kind errors.Kind, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with kind %s", kind)
		}
		err, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("recovered %T (%v), want *errors.Error", r, r)
		}
		if err.Kind != kind {
			t.Fatalf("panic kind = %s, want %s", err.Kind, kind)
		}
	}()
	f()
}
