package cstl

import (
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

// ListABI is the std::list function table.
type ListABI struct {
	Construct     func(l *ListVal, t Type, a *Alloc)
	Destroy       func(l *ListVal, t Type, d *DropType, a *Alloc)
	MoveAssign    func(dst *ListVal, t Type, m *MoveType, src *ListVal, a *Alloc) bool
	CopyAssign    func(dst *ListVal, t Type, c *CopyType, src *ListVal, a *Alloc)
	Size          func(l *ListVal) uintptr
	Empty         func(l *ListVal) bool
	MaxSize       func(t Type) uintptr
	Front         func(l *ListVal, t Type) unsafe.Pointer
	Back          func(l *ListVal, t Type) unsafe.Pointer
	MovePushBack  func(l *ListVal, t Type, m *MoveType, value unsafe.Pointer, a *Alloc) bool
	MovePushFront func(l *ListVal, t Type, m *MoveType, value unsafe.Pointer, a *Alloc) bool
	CopyPushBack  func(l *ListVal, t Type, c *CopyType, value unsafe.Pointer, a *Alloc)
	CopyPushFront func(l *ListVal, t Type, c *CopyType, value unsafe.Pointer, a *Alloc)
	PopBack       func(l *ListVal, t Type, d *DropType, a *Alloc)
	PopFront      func(l *ListVal, t Type, d *DropType, a *Alloc)
	Clear         func(l *ListVal, t Type, d *DropType, a *Alloc)
	AssignN       func(l *ListVal, t Type, c *CopyType, n uintptr, value unsafe.Pointer, a *Alloc)
	Swap          func(x, y *ListVal)
	Resize        func(l *ListVal, t Type, c *CopyType, n uintptr, value unsafe.Pointer, a *Alloc)
}

// List is the std::list table in use.
var List = ListABI{
	Construct:     listConstruct,
	Destroy:       listDestroy,
	MoveAssign:    listMoveAssign,
	CopyAssign:    listCopyAssign,
	Size:          func(l *ListVal) uintptr { return l.Size },
	Empty:         func(l *ListVal) bool { return l.Size == 0 },
	MaxSize:       listMaxSize,
	Front:         listFront,
	Back:          listBack,
	MovePushBack:  listMovePushBack,
	MovePushFront: listMovePushFront,
	CopyPushBack:  listCopyPushBack,
	CopyPushFront: listCopyPushFront,
	PopBack:       listPopBack,
	PopFront:      listPopFront,
	Clear:         listClear,
	AssignN:       listAssignN,
	Swap:          func(x, y *ListVal) { *x, *y = *y, *x },
	Resize:        listResize,
}

func listMaxSize(t Type) uintptr {
	size, _ := listNodeLayout(t)
	return abi.MaxSize / size
}

func listCheck(l *ListVal) {
	if l.Sentinel == nil {
		errors.Fatal(errors.NotInitialized(errors.PhaseNative, "list sentinel"))
	}
}

func listBuyNode(t Type, a *Alloc) *ListNode {
	size, align := listNodeLayout(t)
	return (*ListNode)(a.allocate(size, align))
}

func listFreeNode(n *ListNode, t Type, a *Alloc) {
	size, align := listNodeLayout(t)
	a.free(unsafe.Pointer(n), size, align)
}

func listConstruct(l *ListVal, t Type, a *Alloc) {
	s := listBuyNode(t, a)
	s.Next = s
	s.Prev = s
	*l = ListVal{Sentinel: s}
}

// listInsert links a new node before where once construct has filled it.
func listInsert(l *ListVal, where *ListNode, t Type, a *Alloc, construct func(dst unsafe.Pointer)) {
	listCheck(l)
	if l.Size == listMaxSize(t) {
		errors.Fatal(errors.Overflow(errors.PhaseNative, "list", l.Size+1, listMaxSize(t)))
	}
	n := listBuyNode(t, a)
	construct(ListValue(n, t))
	n.Next = where
	n.Prev = where.Prev
	where.Prev.Next = n
	where.Prev = n
	l.Size++
}

func listUnlink(l *ListVal, n *ListNode, t Type, d *DropType, a *Alloc) {
	n.Prev.Next = n.Next
	n.Next.Prev = n.Prev
	v := ListValue(n, t)
	d.Drop(v, elem(v, t, 1))
	listFreeNode(n, t, a)
	l.Size--
}

func listDestroy(l *ListVal, t Type, d *DropType, a *Alloc) {
	if l.Sentinel == nil {
		*l = ListVal{}
		return
	}
	listClear(l, t, d, a)
	listFreeNode(l.Sentinel, t, a)
	*l = ListVal{}
}

func listClear(l *ListVal, t Type, d *DropType, a *Alloc) {
	if l.Sentinel == nil {
		return
	}
	s := l.Sentinel
	for n := s.Next; n != s; {
		next := n.Next
		v := ListValue(n, t)
		d.Drop(v, elem(v, t, 1))
		listFreeNode(n, t, a)
		n = next
	}
	s.Next = s
	s.Prev = s
	l.Size = 0
}

func listMoveAssign(dst *ListVal, t Type, m *MoveType, src *ListVal, a *Alloc) bool {
	if dst == src {
		return false
	}
	listCheck(src)
	listClear(dst, t, &m.DropType, a)
	s := src.Sentinel
	for n := s.Next; n != s; n = n.Next {
		v := ListValue(n, t)
		listInsert(dst, dst.Sentinel, t, a, func(p unsafe.Pointer) {
			m.Move(v, elem(v, t, 1), p)
		})
	}
	return true
}

func listCopyAssign(dst *ListVal, t Type, c *CopyType, src *ListVal, a *Alloc) {
	if dst == src {
		return
	}
	listCheck(src)
	listClear(dst, t, &c.DropType, a)
	s := src.Sentinel
	for n := s.Next; n != s; n = n.Next {
		v := ListValue(n, t)
		listInsert(dst, dst.Sentinel, t, a, func(p unsafe.Pointer) {
			c.Copy(v, elem(v, t, 1), p)
		})
	}
}

func listFront(l *ListVal, t Type) unsafe.Pointer {
	if l.Size == 0 {
		return nil
	}
	return ListValue(l.Sentinel.Next, t)
}

func listBack(l *ListVal, t Type) unsafe.Pointer {
	if l.Size == 0 {
		return nil
	}
	return ListValue(l.Sentinel.Prev, t)
}

func listMovePushBack(l *ListVal, t Type, m *MoveType, value unsafe.Pointer, a *Alloc) bool {
	listCheck(l)
	listInsert(l, l.Sentinel, t, a, func(p unsafe.Pointer) {
		m.Move(value, elem(value, t, 1), p)
	})
	return true
}

func listMovePushFront(l *ListVal, t Type, m *MoveType, value unsafe.Pointer, a *Alloc) bool {
	listCheck(l)
	listInsert(l, l.Sentinel.Next, t, a, func(p unsafe.Pointer) {
		m.Move(value, elem(value, t, 1), p)
	})
	return true
}

func listCopyPushBack(l *ListVal, t Type, c *CopyType, value unsafe.Pointer, a *Alloc) {
	listCheck(l)
	listInsert(l, l.Sentinel, t, a, func(p unsafe.Pointer) {
		c.Copy(value, elem(value, t, 1), p)
	})
}

func listCopyPushFront(l *ListVal, t Type, c *CopyType, value unsafe.Pointer, a *Alloc) {
	listCheck(l)
	listInsert(l, l.Sentinel.Next, t, a, func(p unsafe.Pointer) {
		c.Copy(value, elem(value, t, 1), p)
	})
}

func listPopBack(l *ListVal, t Type, d *DropType, a *Alloc) {
	if l.Size == 0 {
		return
	}
	listUnlink(l, l.Sentinel.Prev, t, d, a)
}

func listPopFront(l *ListVal, t Type, d *DropType, a *Alloc) {
	if l.Size == 0 {
		return
	}
	listUnlink(l, l.Sentinel.Next, t, d, a)
}

func listAssignN(l *ListVal, t Type, c *CopyType, n uintptr, value unsafe.Pointer, a *Alloc) {
	listCheck(l)
	listClear(l, t, &c.DropType, a)
	for range n {
		listInsert(l, l.Sentinel, t, a, func(p unsafe.Pointer) {
			c.Fill(p, elem(p, t, 1), value)
		})
	}
}

func listResize(l *ListVal, t Type, c *CopyType, n uintptr, value unsafe.Pointer, a *Alloc) {
	listCheck(l)
	if n > listMaxSize(t) {
		errors.Fatal(errors.Overflow(errors.PhaseNative, "list", n, listMaxSize(t)))
	}
	for l.Size > n {
		listUnlink(l, l.Sentinel.Prev, t, &c.DropType, a)
	}
	for l.Size < n {
		listInsert(l, l.Sentinel, t, a, func(p unsafe.Pointer) {
			c.Fill(p, elem(p, t, 1), value)
		})
	}
}
