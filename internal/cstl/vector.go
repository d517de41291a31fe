package cstl

import (
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

// VectorIterator is a std::vector iterator, a plain element pointer.
type VectorIterator struct {
	Ptr unsafe.Pointer
}

// VectorABI is the std::vector function table.
type VectorABI struct {
	Destroy         func(v *VectorVal, t Type, d *DropType, a *Alloc)
	MoveAssign      func(dst *VectorVal, t Type, m *MoveType, src *VectorVal, a *Alloc) bool
	CopyAssign      func(dst *VectorVal, t Type, c *CopyType, src *VectorVal, a *Alloc)
	MoveAssignRange func(dst *VectorVal, t Type, m *MoveType, first, last unsafe.Pointer, a *Alloc) bool
	CopyAssignRange func(dst *VectorVal, t Type, c *CopyType, first, last unsafe.Pointer, a *Alloc)
	MovePushBack    func(v *VectorVal, t Type, m *MoveType, value unsafe.Pointer, a *Alloc) bool
	CopyPushBack    func(v *VectorVal, t Type, c *CopyType, value unsafe.Pointer, a *Alloc)
	PopBack         func(v *VectorVal, t Type, d *DropType)
	MoveInsert      func(v *VectorVal, t Type, m *MoveType, pos, value unsafe.Pointer, a *Alloc) VectorIterator
	Erase           func(v *VectorVal, t Type, m *MoveType, pos unsafe.Pointer) VectorIterator
	Clear           func(v *VectorVal, t Type, d *DropType)
	Resize          func(v *VectorVal, t Type, c *CopyType, n uintptr, value unsafe.Pointer, a *Alloc)
	Reserve         func(v *VectorVal, t Type, m *MoveType, n uintptr, a *Alloc)
	ShrinkToFit     func(v *VectorVal, t Type, m *MoveType, a *Alloc)
	Truncate        func(v *VectorVal, t Type, d *DropType, n uintptr)
	Swap            func(x, y *VectorVal)
	Size            func(v *VectorVal, t Type) uintptr
	Capacity        func(v *VectorVal, t Type) uintptr
	MaxSize         func(t Type) uintptr
	Begin           func(v *VectorVal) VectorIterator
	End             func(v *VectorVal) VectorIterator
	IteratorAdd     func(it VectorIterator, t Type, n int) VectorIterator
	IteratorEq      func(x, y VectorIterator) bool
}

// Vector is the std::vector table in use.
var Vector = VectorABI{
	Destroy:         vecDestroy,
	MoveAssign:      vecMoveAssign,
	CopyAssign:      vecCopyAssign,
	MoveAssignRange: vecMoveAssignRange,
	CopyAssignRange: vecCopyAssignRange,
	MovePushBack:    vecMovePushBack,
	CopyPushBack:    vecCopyPushBack,
	PopBack:         vecPopBack,
	MoveInsert:      vecMoveInsert,
	Erase:           vecErase,
	Clear:           vecClear,
	Resize:          vecResize,
	Reserve:         vecReserve,
	ShrinkToFit:     vecShrinkToFit,
	Truncate:        vecTruncate,
	Swap:            func(x, y *VectorVal) { *x, *y = *y, *x },
	Size:            vecSize,
	Capacity:        vecCapacity,
	MaxSize:         vecMaxSize,
	Begin:           func(v *VectorVal) VectorIterator { return VectorIterator{v.First} },
	End:             func(v *VectorVal) VectorIterator { return VectorIterator{v.Last} },
	IteratorAdd: func(it VectorIterator, t Type, n int) VectorIterator {
		return VectorIterator{unsafe.Add(it.Ptr, n*int(t.Size()))}
	},
	IteratorEq: func(x, y VectorIterator) bool { return x.Ptr == y.Ptr },
}

func vecSize(v *VectorVal, t Type) uintptr {
	return count(v.First, v.Last, t)
}

func vecCapacity(v *VectorVal, t Type) uintptr {
	return count(v.First, v.End, t)
}

func vecMaxSize(t Type) uintptr {
	return abi.MaxSize / t.Size()
}

func vecLengthError(n uintptr, t Type) {
	errors.Fatal(errors.Overflow(errors.PhaseNative, "vector", n, vecMaxSize(t)))
}

// vecBytes returns the byte size of n elements.
func vecBytes(t Type, n uintptr) uintptr {
	b, ok := abi.SafeMul(n, t.Size())
	if !ok {
		vecLengthError(n, t)
	}
	return b
}

// vecGrowth grows capacity by half, or to n when that is not enough.
func vecGrowth(v *VectorVal, t Type, n uintptr) uintptr {
	old := vecCapacity(v, t)
	limit := vecMaxSize(t)
	if old > limit-old/2 {
		return limit
	}
	if g := old + old/2; g >= n {
		return g
	}
	return n
}

func vecFree(v *VectorVal, t Type, a *Alloc) {
	if v.First != nil {
		a.free(v.First, vecBytes(t, vecCapacity(v, t)), t.Align())
	}
	*v = VectorVal{}
}

// vecReallocate moves the elements into a block of exactly n elements.
func vecReallocate(v *VectorVal, t Type, m *MoveType, n uintptr, a *Alloc) {
	size := vecSize(v, t)
	p := a.allocate(vecBytes(t, n), t.Align())
	if size > 0 {
		m.Move(v.First, v.Last, p)
	}
	vecFree(v, t, a)
	v.First = p
	v.Last = elem(p, t, size)
	v.End = elem(p, t, n)
}

// vecEmplaceReallocate grows the buffer and constructs the element at idx
// before relocating the existing ones, so construct may read from the old
// buffer.
func vecEmplaceReallocate(v *VectorVal, t Type, m *MoveType, idx uintptr, a *Alloc, construct func(dst unsafe.Pointer)) unsafe.Pointer {
	size := vecSize(v, t)
	if size == vecMaxSize(t) {
		vecLengthError(size+1, t)
	}
	n := vecGrowth(v, t, size+1)
	p := a.allocate(vecBytes(t, n), t.Align())
	dst := elem(p, t, idx)
	construct(dst)
	if idx > 0 {
		m.Move(v.First, elem(v.First, t, idx), p)
	}
	if idx < size {
		m.Move(elem(v.First, t, idx), v.Last, elem(dst, t, 1))
	}
	vecFree(v, t, a)
	v.First = p
	v.Last = elem(p, t, size+1)
	v.End = elem(p, t, n)
	return dst
}

func vecDestroy(v *VectorVal, t Type, d *DropType, a *Alloc) {
	if v.First == nil {
		*v = VectorVal{}
		return
	}
	d.Drop(v.First, v.Last)
	vecFree(v, t, a)
}

// vecPrepareAssign destroys the current elements and makes room for n.
func vecPrepareAssign(dst *VectorVal, t Type, d *DropType, n uintptr, a *Alloc) {
	if n > vecMaxSize(t) {
		vecLengthError(n, t)
	}
	if dst.First != nil {
		d.Drop(dst.First, dst.Last)
		dst.Last = dst.First
	}
	if n > vecCapacity(dst, t) {
		vecFree(dst, t, a)
		p := a.allocate(vecBytes(t, n), t.Align())
		*dst = VectorVal{First: p, Last: p, End: elem(p, t, n)}
	}
}

func vecMoveAssign(dst *VectorVal, t Type, m *MoveType, src *VectorVal, a *Alloc) bool {
	if dst == src {
		return false
	}
	return vecMoveAssignRange(dst, t, m, src.First, src.Last, a)
}

func vecMoveAssignRange(dst *VectorVal, t Type, m *MoveType, first, last unsafe.Pointer, a *Alloc) bool {
	n := count(first, last, t)
	vecPrepareAssign(dst, t, &m.DropType, n, a)
	if n > 0 {
		m.Move(first, last, dst.First)
		dst.Last = elem(dst.First, t, n)
	}
	return true
}

func vecCopyAssign(dst *VectorVal, t Type, c *CopyType, src *VectorVal, a *Alloc) {
	if dst == src {
		return
	}
	vecCopyAssignRange(dst, t, c, src.First, src.Last, a)
}

func vecCopyAssignRange(dst *VectorVal, t Type, c *CopyType, first, last unsafe.Pointer, a *Alloc) {
	n := count(first, last, t)
	vecPrepareAssign(dst, t, &c.DropType, n, a)
	if n > 0 {
		c.Copy(first, last, dst.First)
		dst.Last = elem(dst.First, t, n)
	}
}

func vecMovePushBack(v *VectorVal, t Type, m *MoveType, value unsafe.Pointer, a *Alloc) bool {
	if v.Last != v.End {
		m.Move(value, elem(value, t, 1), v.Last)
		v.Last = elem(v.Last, t, 1)
		return true
	}
	vecEmplaceReallocate(v, t, m, vecSize(v, t), a, func(dst unsafe.Pointer) {
		m.Move(value, elem(value, t, 1), dst)
	})
	return true
}

func vecCopyPushBack(v *VectorVal, t Type, c *CopyType, value unsafe.Pointer, a *Alloc) {
	if v.Last != v.End {
		c.Copy(value, elem(value, t, 1), v.Last)
		v.Last = elem(v.Last, t, 1)
		return
	}
	vecEmplaceReallocate(v, t, &c.MoveType, vecSize(v, t), a, func(dst unsafe.Pointer) {
		c.Copy(value, elem(value, t, 1), dst)
	})
}

func vecPopBack(v *VectorVal, t Type, d *DropType) {
	if v.First == v.Last {
		return
	}
	last := v.Last
	v.Last = unsafe.Add(last, -int(t.Size()))
	d.Drop(v.Last, last)
}

// vecMoveInsert returns the end iterator when the value was not inserted.
func vecMoveInsert(v *VectorVal, t Type, m *MoveType, pos, value unsafe.Pointer, a *Alloc) VectorIterator {
	size := vecSize(v, t)
	idx := count(v.First, pos, t)
	if idx > size {
		return VectorIterator{v.Last}
	}
	if v.Last == v.End {
		dst := vecEmplaceReallocate(v, t, m, idx, a, func(dst unsafe.Pointer) {
			m.Move(value, elem(value, t, 1), dst)
		})
		return VectorIterator{dst}
	}
	// Shift the tail up one slot, highest element first.
	for i := size; i > idx; i-- {
		src := elem(v.First, t, i-1)
		m.Move(src, elem(src, t, 1), elem(src, t, 1))
	}
	dst := elem(v.First, t, idx)
	m.Move(value, elem(value, t, 1), dst)
	v.Last = elem(v.Last, t, 1)
	return VectorIterator{dst}
}

func vecErase(v *VectorVal, t Type, m *MoveType, pos unsafe.Pointer) VectorIterator {
	size := vecSize(v, t)
	idx := count(v.First, pos, t)
	if idx >= size {
		return VectorIterator{v.Last}
	}
	next := elem(pos, t, 1)
	m.Drop(pos, next)
	if next != v.Last {
		m.Move(next, v.Last, pos)
	}
	v.Last = unsafe.Add(v.Last, -int(t.Size()))
	return VectorIterator{pos}
}

func vecClear(v *VectorVal, t Type, d *DropType) {
	if v.First == nil {
		return
	}
	d.Drop(v.First, v.Last)
	v.Last = v.First
}

func vecResize(v *VectorVal, t Type, c *CopyType, n uintptr, value unsafe.Pointer, a *Alloc) {
	size := vecSize(v, t)
	if n <= size {
		vecTruncate(v, t, &c.DropType, n)
		return
	}
	if n > vecMaxSize(t) {
		vecLengthError(n, t)
	}
	if n > vecCapacity(v, t) {
		vecReallocate(v, t, &c.MoveType, vecGrowth(v, t, n), a)
	}
	c.Fill(v.Last, elem(v.First, t, n), value)
	v.Last = elem(v.First, t, n)
}

func vecReserve(v *VectorVal, t Type, m *MoveType, n uintptr, a *Alloc) {
	if n > vecMaxSize(t) {
		vecLengthError(n, t)
	}
	if n > vecCapacity(v, t) {
		vecReallocate(v, t, m, n, a)
	}
}

func vecShrinkToFit(v *VectorVal, t Type, m *MoveType, a *Alloc) {
	size := vecSize(v, t)
	if v.First == nil || size == vecCapacity(v, t) {
		return
	}
	if size == 0 {
		vecFree(v, t, a)
		return
	}
	vecReallocate(v, t, m, size, a)
}

func vecTruncate(v *VectorVal, t Type, d *DropType, n uintptr) {
	if n >= vecSize(v, t) {
		return
	}
	last := v.Last
	v.Last = elem(v.First, t, n)
	d.Drop(v.Last, last)
}
