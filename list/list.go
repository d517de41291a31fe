package list

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/cstl"
	"github.com/wippyai/cxxstl/layout"
	"github.com/wippyai/cxxstl/semantics"
)

// RawList is the native std::list header.
type RawList = cstl.ListVal

// Layout is the allocator-first header layout.
type Layout[A alloc.Allocator] = layout.AllocFirst[A, RawList]

// ListLayout is a list of T allocated by A, laid out as L.
type ListLayout[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawList]] struct {
	inner L
}

type ListIn[T any, A alloc.Allocator] = ListLayout[T, A, Layout[A], *Layout[A]]

// List is a list backed by the System allocator.
type List[T any] = ListIn[T, alloc.System]

// View is anything that can be walked in order with a known length.
type View[T any] interface {
	Len() int
	All() iter.Seq[T]
}

// Source is a list of T under any allocator or layout, accepted by
// FromListIn.
type Source[T any] interface {
	View[T]
	moveOut(dst *RawList, d *semantics.Descriptor, p *cstl.Alloc)
}

func desc[T any]() *semantics.Descriptor {
	return semantics.MustStore[T]()
}

func New[T any]() List[T] {
	return NewIn[T](alloc.System{})
}

// NewIn returns an empty list using a. The sentinel is allocated here.
func NewIn[T any, A alloc.Allocator](a A) ListIn[T, A] {
	return NewLayoutIn[T, A, Layout[A]](a)
}

func NewLayoutIn[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawList]](a A) ListLayout[T, A, L, PL] {
	var l ListLayout[T, A, L, PL]
	l.w().Init(a, RawList{})
	l.ensure()
	return l
}

// FromListIn moves the elements of src into a new list using a. src is left
// empty and must still be dropped.
func FromListIn[T any, A alloc.Allocator](src Source[T], a A) ListIn[T, A] {
	return FromListLayoutIn[T, A, Layout[A]](src, a)
}

func FromListLayoutIn[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawList]](src Source[T], a A) ListLayout[T, A, L, PL] {
	out := NewLayoutIn[T, A, L, PL](a)
	d := desc[T]()
	out.with(func(val *RawList, p *cstl.Alloc) {
		src.moveOut(val, d, p)
	})
	return out
}

// FromSliceIn returns a list holding clones of the elements of s.
func FromSliceIn[T any, A alloc.Allocator](s []T, a A) ListIn[T, A] {
	l := NewIn[T](a)
	for i := range s {
		l.PushBackCopy(&s[i])
	}
	return l
}

func (l *ListLayout[T, A, L, PL]) w() PL {
	return PL(&l.inner)
}

func (l *ListLayout[T, A, L, PL]) with(f func(val *RawList, p *cstl.Alloc)) {
	layout.WithProxy[A, RawList](l.w(), f)
}

// ensure constructs the sentinel of a zero-value list.
func (l *ListLayout[T, A, L, PL]) ensure() {
	if l.Raw().Sentinel != nil {
		return
	}
	d := desc[T]()
	l.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.Construct(val, d.Type, p)
	})
}

func (l *ListLayout[T, A, L, PL]) moveOut(dst *RawList, d *semantics.Descriptor, p *cstl.Alloc) {
	if l.Raw().Sentinel == nil {
		return
	}
	if !cstl.List.MoveAssign(dst, d.Type, &d.Move, l.Raw(), p) {
		return
	}
	l.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.Clear(val, d.Type, &d.Forget, p)
	})
}

// Raw returns the native header.
func (l *ListLayout[T, A, L, PL]) Raw() *RawList {
	return l.w().Value()
}

func (l *ListLayout[T, A, L, PL]) Allocator() *A {
	return l.w().Allocator()
}

func (l *ListLayout[T, A, L, PL]) Len() int {
	return int(cstl.List.Size(l.Raw()))
}

func (l *ListLayout[T, A, L, PL]) IsEmpty() bool {
	return cstl.List.Empty(l.Raw())
}

func (l *ListLayout[T, A, L, PL]) MaxSize() int {
	return int(cstl.List.MaxSize(desc[T]().Type))
}

// Front returns the first element, nil when the list is empty. The pointer
// stays valid until that element is removed.
func (l *ListLayout[T, A, L, PL]) Front() *T {
	return (*T)(cstl.List.Front(l.Raw(), desc[T]().Type))
}

// Back returns the last element, nil when the list is empty.
func (l *ListLayout[T, A, L, PL]) Back() *T {
	return (*T)(cstl.List.Back(l.Raw(), desc[T]().Type))
}

// PushBack appends value, taking ownership of it.
func (l *ListLayout[T, A, L, PL]) PushBack(value T) {
	l.push(cstl.List.MovePushBack, value)
}

// PushFront prepends value, taking ownership of it.
func (l *ListLayout[T, A, L, PL]) PushFront(value T) {
	l.push(cstl.List.MovePushFront, value)
}

type movePush = func(*cstl.ListVal, cstl.Type, *cstl.MoveType, unsafe.Pointer, *cstl.Alloc) bool

func (l *ListLayout[T, A, L, PL]) push(f movePush, value T) {
	l.ensure()
	d := desc[T]()
	var taken bool
	l.with(func(val *RawList, p *cstl.Alloc) {
		taken = f(val, d.Type, &d.Move, unsafe.Pointer(&value), p)
	})
	semantics.Moved(taken, value).Settle()
}

// PushBackCopy appends a clone of *value.
func (l *ListLayout[T, A, L, PL]) PushBackCopy(value *T) {
	l.ensure()
	d := desc[T]()
	l.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.CopyPushBack(val, d.Type, &d.Copy, unsafe.Pointer(value), p)
	})
}

// PushFrontCopy prepends a clone of *value.
func (l *ListLayout[T, A, L, PL]) PushFrontCopy(value *T) {
	l.ensure()
	d := desc[T]()
	l.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.CopyPushFront(val, d.Type, &d.Copy, unsafe.Pointer(value), p)
	})
}

// PopFront removes and returns the first element.
func (l *ListLayout[T, A, L, PL]) PopFront() (T, bool) {
	return l.pop(cstl.List.Front, cstl.List.PopFront)
}

// PopBack removes and returns the last element.
func (l *ListLayout[T, A, L, PL]) PopBack() (T, bool) {
	return l.pop(cstl.List.Back, cstl.List.PopBack)
}

func (l *ListLayout[T, A, L, PL]) pop(
	at func(*cstl.ListVal, cstl.Type) unsafe.Pointer,
	unlink func(*cstl.ListVal, cstl.Type, *cstl.DropType, *cstl.Alloc),
) (T, bool) {
	d := desc[T]()
	ptr := at(l.Raw(), d.Type)
	if ptr == nil {
		var zero T
		return zero, false
	}
	out := *(*T)(ptr)
	l.with(func(val *RawList, p *cstl.Alloc) {
		unlink(val, d.Type, &d.Forget, p)
	})
	return out, true
}

// Clear drops every element. The sentinel is kept.
func (l *ListLayout[T, A, L, PL]) Clear() {
	d := desc[T]()
	l.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.Clear(val, d.Type, &d.Drop, p)
	})
}

// Assign replaces the contents with n clones of value.
func (l *ListLayout[T, A, L, PL]) Assign(n int, value T) {
	d := desc[T]()
	if limit := cstl.List.MaxSize(d.Type); n < 0 || uintptr(n) > limit {
		errors.Fatal(errors.Overflow(errors.PhaseList, "assign", n, limit))
	}
	l.ensure()
	l.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.AssignN(val, d.Type, &d.Copy, uintptr(n), unsafe.Pointer(&value), p)
	})
}

// Resize sets the length to n, appending zero values or dropping from the
// back.
func (l *ListLayout[T, A, L, PL]) Resize(n int) {
	var zero T
	l.ResizeWith(n, zero)
}

// ResizeWith sets the length to n, appending clones of value.
func (l *ListLayout[T, A, L, PL]) ResizeWith(n int, value T) {
	d := desc[T]()
	if limit := cstl.List.MaxSize(d.Type); n < 0 || uintptr(n) > limit {
		errors.Fatal(errors.Overflow(errors.PhaseList, "resize", n, limit))
	}
	l.ensure()
	l.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.Resize(val, d.Type, &d.Copy, uintptr(n), unsafe.Pointer(&value), p)
	})
}

// ResizeFunc sets the length to n, appending successive results of f.
func (l *ListLayout[T, A, L, PL]) ResizeFunc(n int, f func() T) {
	if n <= l.Len() {
		var zero T
		l.ResizeWith(n, zero)
		return
	}
	if limit := cstl.List.MaxSize(desc[T]().Type); uintptr(n) > limit {
		errors.Fatal(errors.Overflow(errors.PhaseList, "resize", n, limit))
	}
	for l.Len() < n {
		l.PushBack(f())
	}
}

// Swap exchanges the contents and allocators of l and other.
func (l *ListLayout[T, A, L, PL]) Swap(other *ListLayout[T, A, L, PL]) {
	cstl.List.Swap(l.Raw(), other.Raw())
	a, b := l.Allocator(), other.Allocator()
	*a, *b = *b, *a
}

// Extend appends every value of seq.
func (l *ListLayout[T, A, L, PL]) Extend(seq iter.Seq[T]) {
	for x := range seq {
		l.PushBack(x)
	}
}

// Clone returns an independent copy with a clone of the allocator.
func (l *ListLayout[T, A, L, PL]) Clone() ListLayout[T, A, L, PL] {
	d := desc[T]()
	out := NewLayoutIn[T, A, L, PL](semantics.CloneValue(l.Allocator()))
	if l.Raw().Sentinel == nil {
		return out
	}
	src := l.Raw()
	out.with(func(val *RawList, p *cstl.Alloc) {
		cstl.List.CopyAssign(val, d.Type, &d.Copy, src, p)
	})
	return out
}

// Drop destroys every node including the sentinel and releases the
// allocator.
func (l *ListLayout[T, A, L, PL]) Drop() {
	d := desc[T]()
	layout.Destroy[A, RawList](l.w(), func(val *RawList, p *cstl.Alloc) {
		cstl.List.Destroy(val, d.Type, &d.Drop, p)
	})
}

// IntoIter detaches the nodes and allocator into a consuming iterator. The
// list is left in the zero state.
func (l *ListLayout[T, A, L, PL]) IntoIter() *IntoIter[T, A] {
	w := l.w()
	it := &IntoIter[T, A]{alloc: *w.Allocator(), val: *w.Value()}
	var zero A
	w.Init(zero, RawList{})
	return it
}

func (l *ListLayout[T, A, L, PL]) walk(yield func(T) bool, back bool) {
	s := l.Raw().Sentinel
	if s == nil {
		return
	}
	t := desc[T]().Type
	n := s.Next
	if back {
		n = s.Prev
	}
	for n != s {
		if !yield(*(*T)(cstl.ListValue(n, t))) {
			return
		}
		if back {
			n = n.Prev
		} else {
			n = n.Next
		}
	}
}

// All iterates from front to back. The values are shallow copies still
// owned by the list.
func (l *ListLayout[T, A, L, PL]) All() iter.Seq[T] {
	return func(yield func(T) bool) { l.walk(yield, false) }
}

// Backward iterates from back to front.
func (l *ListLayout[T, A, L, PL]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) { l.walk(yield, true) }
}

// ToGoSlice returns clones of the elements in order.
func (l *ListLayout[T, A, L, PL]) ToGoSlice() []T {
	out := make([]T, 0, l.Len())
	for x := range l.All() {
		out = append(out, semantics.CloneValue(&x))
	}
	return out
}

func (l *ListLayout[T, A, L, PL]) EqualFunc(other View[T], eq func(T, T) bool) bool {
	if l.Len() != other.Len() {
		return false
	}
	return equalSeq(l.All(), other.All(), eq)
}

func (l *ListLayout[T, A, L, PL]) CompareFunc(other View[T], cmp func(T, T) int) int {
	return compareSeq(l.All(), other.All(), cmp)
}

// Sum64 hashes the elements with xxhash.
func (l *ListLayout[T, A, L, PL]) Sum64() uint64 {
	h := semantics.NewHash[T]()
	for x := range l.All() {
		h.Add(&x)
	}
	return h.Sum64()
}

func (l *ListLayout[T, A, L, PL]) String() string {
	return fmt.Sprint(slices.Collect(l.All()))
}
