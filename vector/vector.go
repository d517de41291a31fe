package vector

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
	"github.com/wippyai/cxxstl/internal/cstl"
	"github.com/wippyai/cxxstl/layout"
	"github.com/wippyai/cxxstl/semantics"
)

// RawVec is the native std::vector header.
type RawVec = cstl.VectorVal

// Layout is the allocator-first header layout.
type Layout[A alloc.Allocator] = layout.AllocFirst[A, RawVec]

// VecLayout is a vector of T allocated by A, laid out as L.
type VecLayout[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawVec]] struct {
	inner L
}

// VecIn is a vector with the current MSVC layout and a custom allocator.
type VecIn[T any, A alloc.Allocator] = VecLayout[T, A, Layout[A], *Layout[A]]

// Vec is a vector backed by the System allocator. The zero value is an
// empty vector.
type Vec[T any] = VecIn[T, alloc.System]

// View is anything that exposes its elements as a slice.
type View[T any] interface {
	AsSlice() []T
}

// Source is a vector of T under any allocator or layout, accepted by
// FromVecIn.
type Source[T any] interface {
	View[T]
	moveOut(dst *RawVec, d *semantics.Descriptor, p *cstl.Alloc)
}

func desc[T any]() *semantics.Descriptor {
	return semantics.MustStore[T]()
}

// New returns an empty vector.
func New[T any]() Vec[T] {
	return NewIn[T](alloc.System{})
}

// NewIn returns an empty vector using a.
func NewIn[T any, A alloc.Allocator](a A) VecIn[T, A] {
	return NewLayoutIn[T, A, Layout[A]](a)
}

// NewLayoutIn returns an empty vector with an explicit layout.
func NewLayoutIn[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawVec]](a A) VecLayout[T, A, L, PL] {
	desc[T]()
	var v VecLayout[T, A, L, PL]
	v.w().Init(a, RawVec{})
	return v
}

// FromVecIn moves the elements of src into a new vector using a. src is left
// empty but still owns its buffer, and must be dropped as usual.
func FromVecIn[T any, A alloc.Allocator](src Source[T], a A) VecIn[T, A] {
	return FromVecLayoutIn[T, A, Layout[A]](src, a)
}

// FromVecLayoutIn is FromVecIn with an explicit layout.
func FromVecLayoutIn[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawVec]](src Source[T], a A) VecLayout[T, A, L, PL] {
	out := NewLayoutIn[T, A, L, PL](a)
	d := desc[T]()
	out.with(func(val *RawVec, p *cstl.Alloc) {
		src.moveOut(val, d, p)
	})
	return out
}

// FromGoSliceIn moves the elements of *s into a new vector using a with one
// range move, then truncates *s to length zero. The slice keeps its backing
// array, whose old elements are zeroed.
func FromGoSliceIn[T any, A alloc.Allocator](s *[]T, a A) VecIn[T, A] {
	return FromGoSliceLayoutIn[T, A, Layout[A]](s, a)
}

// FromGoSliceLayoutIn is FromGoSliceIn with an explicit layout.
func FromGoSliceLayoutIn[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawVec]](s *[]T, a A) VecLayout[T, A, L, PL] {
	out := NewLayoutIn[T, A, L, PL](a)
	if len(*s) == 0 {
		return out
	}
	d := desc[T]()
	first := unsafe.Pointer(unsafe.SliceData(*s))
	last := unsafe.Add(first, uintptr(len(*s))*d.Size)
	var moved bool
	out.with(func(val *RawVec, p *cstl.Alloc) {
		moved = cstl.Vector.MoveAssignRange(val, d.Type, &d.Take, first, last, p)
	})
	if moved {
		*s = (*s)[:0]
	}
	return out
}

// FromSliceIn clones the elements of s into a new vector using a.
func FromSliceIn[T any, A alloc.Allocator](s []T, a A) VecIn[T, A] {
	return FromSliceLayoutIn[T, A, Layout[A]](s, a)
}

// FromSliceLayoutIn is FromSliceIn with an explicit layout.
func FromSliceLayoutIn[T any, A alloc.Allocator, L any, PL layout.Ptr[L, A, RawVec]](s []T, a A) VecLayout[T, A, L, PL] {
	out := NewLayoutIn[T, A, L, PL](a)
	if len(s) == 0 {
		return out
	}
	d := desc[T]()
	first := unsafe.Pointer(unsafe.SliceData(s))
	last := unsafe.Add(first, uintptr(len(s))*d.Size)
	out.with(func(val *RawVec, p *cstl.Alloc) {
		cstl.Vector.CopyAssignRange(val, d.Type, &d.Copy, first, last, p)
	})
	return out
}

func (v *VecLayout[T, A, L, PL]) w() PL {
	return PL(&v.inner)
}

func (v *VecLayout[T, A, L, PL]) with(f func(val *RawVec, p *cstl.Alloc)) {
	layout.WithProxy[A, RawVec](v.w(), f)
}

func (v *VecLayout[T, A, L, PL]) moveOut(dst *RawVec, d *semantics.Descriptor, p *cstl.Alloc) {
	src := v.Raw()
	if cstl.Vector.MoveAssign(dst, d.Type, &d.Move, src, p) {
		src.Last = src.First
	}
}

// Raw returns the native header. It stays valid until the vector is mutated.
func (v *VecLayout[T, A, L, PL]) Raw() *RawVec {
	return v.w().Value()
}

// Allocator returns the vector's allocator.
func (v *VecLayout[T, A, L, PL]) Allocator() *A {
	return v.w().Allocator()
}

// AsSlice returns the elements. The slice aliases the vector's buffer and is
// invalidated by any operation that reallocates.
func (v *VecLayout[T, A, L, PL]) AsSlice() []T {
	val := v.Raw()
	if val.First == nil {
		return nil
	}
	return unsafe.Slice((*T)(val.First), v.Len())
}

// AsPtr returns a pointer to the first element, nil when nothing was
// allocated.
func (v *VecLayout[T, A, L, PL]) AsPtr() *T {
	return (*T)(v.Raw().First)
}

func (v *VecLayout[T, A, L, PL]) Len() int {
	return int(cstl.Vector.Size(v.Raw(), desc[T]().Type))
}

func (v *VecLayout[T, A, L, PL]) IsEmpty() bool {
	val := v.Raw()
	return val.First == val.Last
}

func (v *VecLayout[T, A, L, PL]) Capacity() int {
	return int(cstl.Vector.Capacity(v.Raw(), desc[T]().Type))
}

// MaxSize returns the largest length the vector can reach.
func (v *VecLayout[T, A, L, PL]) MaxSize() int {
	return int(cstl.Vector.MaxSize(desc[T]().Type))
}

// Push appends value, taking ownership of it.
func (v *VecLayout[T, A, L, PL]) Push(value T) {
	d := desc[T]()
	var taken bool
	v.with(func(val *RawVec, p *cstl.Alloc) {
		taken = cstl.Vector.MovePushBack(val, d.Type, &d.Move, unsafe.Pointer(&value), p)
	})
	semantics.Moved(taken, value).Settle()
}

// PushCopy appends a clone of *value.
func (v *VecLayout[T, A, L, PL]) PushCopy(value *T) {
	d := desc[T]()
	v.with(func(val *RawVec, p *cstl.Alloc) {
		cstl.Vector.CopyPushBack(val, d.Type, &d.Copy, unsafe.Pointer(value), p)
	})
}

// Pop removes and returns the last element.
func (v *VecLayout[T, A, L, PL]) Pop() (T, bool) {
	d := desc[T]()
	val := v.Raw()
	if val.First == val.Last {
		var zero T
		return zero, false
	}
	out := *(*T)(unsafe.Add(val.Last, -int(d.Size)))
	cstl.Vector.PopBack(val, d.Type, &d.Forget)
	return out, true
}

// Insert places value at index, shifting later elements up. Inserting at
// Len appends. An index beyond Len is fatal.
func (v *VecLayout[T, A, L, PL]) Insert(index int, value T) {
	d := desc[T]()
	if n := v.Len(); index < 0 || index > n {
		errors.Fatal(errors.OutOfBounds(errors.PhaseVector, "insert", index, n))
	}
	var taken bool
	v.with(func(val *RawVec, p *cstl.Alloc) {
		pos := unsafe.Add(val.First, uintptr(index)*d.Size)
		it := cstl.Vector.MoveInsert(val, d.Type, &d.Move, pos, unsafe.Pointer(&value), p)
		taken = !cstl.Vector.IteratorEq(it, cstl.Vector.End(val))
	})
	semantics.Moved(taken, value).Settle()
}

// Remove removes and returns the element at index, shifting later elements
// down. It reports false on an empty vector; any other index at or beyond
// Len is fatal.
func (v *VecLayout[T, A, L, PL]) Remove(index int) (T, bool) {
	d := desc[T]()
	n := v.Len()
	if n == 0 {
		var zero T
		return zero, false
	}
	if index < 0 || index >= n {
		errors.Fatal(errors.OutOfBounds(errors.PhaseVector, "remove", index, n))
	}
	val := v.Raw()
	pos := unsafe.Add(val.First, uintptr(index)*d.Size)
	out := *(*T)(pos)
	skip := cstl.MoveType{DropType: d.Forget, Move: d.Move.Move}
	cstl.Vector.Erase(val, d.Type, &skip, pos)
	return out, true
}

// Clear drops every element and keeps the capacity.
func (v *VecLayout[T, A, L, PL]) Clear() {
	d := desc[T]()
	cstl.Vector.Clear(v.Raw(), d.Type, &d.Drop)
}

// Truncate drops the elements past n. It does nothing when n >= Len.
func (v *VecLayout[T, A, L, PL]) Truncate(n int) {
	if n < 0 {
		errors.Fatal(errors.OutOfBounds(errors.PhaseVector, "truncate", n, v.Len()))
	}
	d := desc[T]()
	cstl.Vector.Truncate(v.Raw(), d.Type, &d.Drop, uintptr(n))
}

// Resize sets the length to n, filling new slots with the zero value.
func (v *VecLayout[T, A, L, PL]) Resize(n int) {
	var zero T
	v.ResizeWith(n, zero)
}

// ResizeWith sets the length to n, filling new slots with clones of value.
// value itself stays with the caller.
func (v *VecLayout[T, A, L, PL]) ResizeWith(n int, value T) {
	d := desc[T]()
	if limit := cstl.Vector.MaxSize(d.Type); n < 0 || uintptr(n) > limit {
		errors.Fatal(errors.Overflow(errors.PhaseVector, "resize", n, limit))
	}
	v.with(func(val *RawVec, p *cstl.Alloc) {
		cstl.Vector.Resize(val, d.Type, &d.Copy, uintptr(n), unsafe.Pointer(&value), p)
	})
}

// ResizeFunc sets the length to n, filling new slots with successive results
// of f.
func (v *VecLayout[T, A, L, PL]) ResizeFunc(n int, f func() T) {
	d := desc[T]()
	if limit := cstl.Vector.MaxSize(d.Type); n < 0 || uintptr(n) > limit {
		errors.Fatal(errors.Overflow(errors.PhaseVector, "resize", n, limit))
	}
	if n <= v.Len() {
		v.Truncate(n)
		return
	}
	v.Reserve(n - v.Len())
	for v.Len() < n {
		v.Push(f())
	}
}

// Reserve ensures room for at least additional more elements.
func (v *VecLayout[T, A, L, PL]) Reserve(additional int) {
	d := desc[T]()
	limit := cstl.Vector.MaxSize(d.Type)
	if additional < 0 {
		errors.Fatal(errors.Overflow(errors.PhaseVector, "reserve", additional, limit))
	}
	need, ok := abi.SafeAdd(uintptr(v.Len()), uintptr(additional))
	if !ok || need > limit {
		errors.Fatal(errors.Overflow(errors.PhaseVector, "reserve", additional, limit))
	}
	v.with(func(val *RawVec, p *cstl.Alloc) {
		cstl.Vector.Reserve(val, d.Type, &d.Move, need, p)
	})
}

// ShrinkToFit reduces the capacity to the length.
func (v *VecLayout[T, A, L, PL]) ShrinkToFit() {
	d := desc[T]()
	v.with(func(val *RawVec, p *cstl.Alloc) {
		cstl.Vector.ShrinkToFit(val, d.Type, &d.Move, p)
	})
}

// Swap exchanges the contents and allocators of v and other.
func (v *VecLayout[T, A, L, PL]) Swap(other *VecLayout[T, A, L, PL]) {
	cstl.Vector.Swap(v.Raw(), other.Raw())
	a, b := v.Allocator(), other.Allocator()
	*a, *b = *b, *a
}

// Extend pushes every value of seq.
func (v *VecLayout[T, A, L, PL]) Extend(seq iter.Seq[T]) {
	for x := range seq {
		v.Push(x)
	}
}

// Append appends clones of the elements of s.
func (v *VecLayout[T, A, L, PL]) Append(s []T) {
	if len(s) == 0 {
		return
	}
	v.Reserve(len(s))
	for i := range s {
		v.PushCopy(&s[i])
	}
}

// Clone returns an independent copy with a clone of the allocator.
func (v *VecLayout[T, A, L, PL]) Clone() VecLayout[T, A, L, PL] {
	d := desc[T]()
	out := NewLayoutIn[T, A, L, PL](semantics.CloneValue(v.Allocator()))
	src := v.Raw()
	out.with(func(val *RawVec, p *cstl.Alloc) {
		cstl.Vector.CopyAssign(val, d.Type, &d.Copy, src, p)
	})
	return out
}

// Drop destroys the elements, frees the buffer and releases the allocator.
// The vector is empty afterwards.
func (v *VecLayout[T, A, L, PL]) Drop() {
	d := desc[T]()
	layout.Destroy[A, RawVec](v.w(), func(val *RawVec, p *cstl.Alloc) {
		cstl.Vector.Destroy(val, d.Type, &d.Drop, p)
	})
}

// IntoGoSlice moves the elements into a Go slice and drops the vector.
func (v *VecLayout[T, A, L, PL]) IntoGoSlice() []T {
	out := slices.Clone(v.AsSlice())
	val := v.Raw()
	val.Last = val.First
	v.Drop()
	return out
}

// IntoIter detaches the buffer and allocator into a consuming iterator. The
// vector is left empty with a zero allocator.
func (v *VecLayout[T, A, L, PL]) IntoIter() *IntoIter[T, A] {
	w := v.w()
	it := &IntoIter[T, A]{alloc: *w.Allocator(), val: *w.Value()}
	it.ptr, it.end = it.val.First, it.val.Last
	var zero A
	w.Init(zero, RawVec{})
	return it
}

// All iterates over index/value pairs without consuming the vector.
func (v *VecLayout[T, A, L, PL]) All() iter.Seq2[int, T] {
	return slices.All(v.AsSlice())
}

// Backward iterates from the last element to the first.
func (v *VecLayout[T, A, L, PL]) Backward() iter.Seq2[int, T] {
	return slices.Backward(v.AsSlice())
}

// Values iterates over the elements in order.
func (v *VecLayout[T, A, L, PL]) Values() iter.Seq[T] {
	return slices.Values(v.AsSlice())
}

// EqualFunc reports whether v and other hold equal sequences under eq.
func (v *VecLayout[T, A, L, PL]) EqualFunc(other View[T], eq func(T, T) bool) bool {
	return slices.EqualFunc(v.AsSlice(), other.AsSlice(), eq)
}

// CompareFunc compares v and other lexicographically under cmp.
func (v *VecLayout[T, A, L, PL]) CompareFunc(other View[T], cmp func(T, T) int) int {
	return slices.CompareFunc(v.AsSlice(), other.AsSlice(), cmp)
}

// Sum64 hashes the elements with xxhash.
func (v *VecLayout[T, A, L, PL]) Sum64() uint64 {
	h := semantics.NewHash[T]()
	h.AddSlice(v.AsSlice())
	return h.Sum64()
}

func (v *VecLayout[T, A, L, PL]) String() string {
	return fmt.Sprint(v.AsSlice())
}
