package vector

import (
	"iter"
	"unsafe"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/internal/cstl"
	"github.com/wippyai/cxxstl/layout"
	"github.com/wippyai/cxxstl/semantics"
)

// IntoIter consumes a vector front to back or back to front. Close releases
// the elements that were not consumed together with the buffer.
type IntoIter[T any, A alloc.Allocator] struct {
	alloc    A
	val      RawVec
	ptr, end unsafe.Pointer
	closed   bool
}

// Next returns the next element from the front.
func (it *IntoIter[T, A]) Next() (T, bool) {
	if it.ptr == it.end {
		var zero T
		return zero, false
	}
	out := *(*T)(it.ptr)
	it.ptr = unsafe.Add(it.ptr, desc[T]().Size)
	return out, true
}

// NextBack returns the next element from the back.
func (it *IntoIter[T, A]) NextBack() (T, bool) {
	if it.ptr == it.end {
		var zero T
		return zero, false
	}
	it.end = unsafe.Add(it.end, -int(desc[T]().Size))
	return *(*T)(it.end), true
}

// Len returns the number of elements left.
func (it *IntoIter[T, A]) Len() int {
	return int((uintptr(it.end) - uintptr(it.ptr)) / desc[T]().Size)
}

// AsSlice returns the elements left. They are still owned by the iterator.
func (it *IntoIter[T, A]) AsSlice() []T {
	if it.ptr == it.end {
		return nil
	}
	return unsafe.Slice((*T)(it.ptr), it.Len())
}

// Allocator returns the allocator taken from the vector.
func (it *IntoIter[T, A]) Allocator() *A {
	return &it.alloc
}

// Clone returns an iterator over clones of the remaining elements, in a new
// buffer from a clone of the allocator.
func (it *IntoIter[T, A]) Clone() *IntoIter[T, A] {
	d := desc[T]()
	out := &IntoIter[T, A]{alloc: semantics.CloneValue(&it.alloc)}
	if it.ptr != it.end {
		alloc.WithProxy(&out.alloc, func(p *cstl.Alloc) {
			cstl.Vector.CopyAssignRange(&out.val, d.Type, &d.Copy, it.ptr, it.end, p)
		})
	}
	out.ptr, out.end = out.val.First, out.val.Last
	return out
}

// All yields the remaining elements and closes the iterator when the loop
// ends, whether or not it ran to completion.
func (it *IntoIter[T, A]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer it.Close()
		for {
			x, ok := it.Next()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

// Close drops the remaining elements exactly once, frees the buffer and
// releases the allocator. Calling it again does nothing.
func (it *IntoIter[T, A]) Close() {
	if it.closed {
		return
	}
	it.closed = true
	d := desc[T]()
	val := it.val
	if it.ptr != it.end && it.ptr != val.First {
		d.Move.Move(it.ptr, it.end, val.First)
	}
	val.Last = unsafe.Add(val.First, uintptr(it.end)-uintptr(it.ptr))
	w := layout.AllocFirst[A, RawVec]{}
	w.Init(it.alloc, val)
	layout.Destroy[A, RawVec](&w, func(v *RawVec, p *cstl.Alloc) {
		cstl.Vector.Destroy(v, d.Type, &d.Drop, p)
	})
	var zero A
	it.alloc = zero
	it.val = RawVec{}
	it.ptr, it.end = nil, nil
}
