package cstl

import (
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

// DropType destroys every element in [first, last).
type DropType struct {
	Drop func(first, last unsafe.Pointer)
}

// MoveType relocates [first, last) to dest in ascending order. The nested
// drop is applied to elements the native side discards.
type MoveType struct {
	DropType
	Move func(first, last, dest unsafe.Pointer)
}

// CopyType clones [first, last) to dest, or fills [first, last) with clones
// of value. Both write into uninitialized storage.
type CopyType struct {
	MoveType
	Copy func(first, last, dest unsafe.Pointer)
	Fill func(first, last, value unsafe.Pointer)
}

// Alloc is the allocator proxy record. It is valid for one native call only.
type Alloc struct {
	Opaque       unsafe.Pointer
	AlignedAlloc func(opaque unsafe.Pointer, size, alignment uintptr) unsafe.Pointer
	AlignedFree  func(opaque, ptr unsafe.Pointer, size, alignment uintptr)
}

// allocate calls through the proxy. A nil block is std::bad_alloc, which the
// native side does not survive.
func (a *Alloc) allocate(size, align uintptr) unsafe.Pointer {
	p := a.AlignedAlloc(a.Opaque, size, align)
	if p == nil {
		errors.Fatal(errors.AllocationFailed(errors.PhaseNative, size, align))
	}
	return p
}

func (a *Alloc) free(p unsafe.Pointer, size, align uintptr) {
	a.AlignedFree(a.Opaque, p, size, align)
}

// VectorVal is the header of std::vector: used start, used end, capacity end.
type VectorVal struct {
	First unsafe.Pointer
	Last  unsafe.Pointer
	End   unsafe.Pointer
}

// ListNode is the link part of a std::list node. The element follows at
// ListValueOffset.
type ListNode struct {
	Next *ListNode
	Prev *ListNode
}

// ListVal is the header of std::list. The sentinel is always allocated once
// the list is constructed.
type ListVal struct {
	Sentinel *ListNode
	Size     uintptr
}

// StringBufSize is the size of the std::basic_string inline buffer in bytes.
const StringBufSize = 16

// StringVal is the header of std::basic_string. Bx holds the code units
// while Res is within the inline capacity, otherwise its first word is the
// heap pointer.
type StringVal struct {
	Bx   [StringBufSize]byte
	Size uintptr
	Res  uintptr
}

// ListValueOffset returns the offset of the element inside a node.
func ListValueOffset(t Type) uintptr {
	return abi.AlignTo(unsafe.Sizeof(ListNode{}), t.Align())
}

// ListValue returns the element stored in node.
func ListValue(node *ListNode, t Type) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(node), ListValueOffset(t))
}

func listNodeLayout(t Type) (size, align uintptr) {
	align = max(t.Align(), unsafe.Alignof(ListNode{}))
	return abi.AlignTo(ListValueOffset(t)+t.Size(), align), align
}

func elem(p unsafe.Pointer, t Type, i uintptr) unsafe.Pointer {
	return unsafe.Add(p, i*t.Size())
}

func count(first, last unsafe.Pointer, t Type) uintptr {
	if first == nil {
		return 0
	}
	return (uintptr(last) - uintptr(first)) / t.Size()
}

func memmove(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
