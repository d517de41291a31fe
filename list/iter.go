package list

import (
	"iter"
	"unsafe"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/internal/cstl"
	"github.com/wippyai/cxxstl/layout"
)

// IntoIter consumes a list from either end. Each consumed node is unlinked
// and freed as the value is handed out.
type IntoIter[T any, A alloc.Allocator] struct {
	alloc  A
	val    RawList
	closed bool
}

func (it *IntoIter[T, A]) take(
	at func(*cstl.ListVal, cstl.Type) unsafe.Pointer,
	unlink func(*cstl.ListVal, cstl.Type, *cstl.DropType, *cstl.Alloc),
) (T, bool) {
	d := desc[T]()
	ptr := at(&it.val, d.Type)
	if ptr == nil {
		var zero T
		return zero, false
	}
	out := *(*T)(ptr)
	alloc.WithProxy(&it.alloc, func(p *cstl.Alloc) {
		unlink(&it.val, d.Type, &d.Forget, p)
	})
	return out, true
}

// Next returns the front element.
func (it *IntoIter[T, A]) Next() (T, bool) {
	return it.take(cstl.List.Front, cstl.List.PopFront)
}

// NextBack returns the back element.
func (it *IntoIter[T, A]) NextBack() (T, bool) {
	return it.take(cstl.List.Back, cstl.List.PopBack)
}

// Len returns the number of elements left.
func (it *IntoIter[T, A]) Len() int {
	return int(it.val.Size)
}

// Allocator returns the allocator taken from the list.
func (it *IntoIter[T, A]) Allocator() *A {
	return &it.alloc
}

// All yields the remaining elements and closes the iterator afterwards.
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

// Close drops the remaining elements, frees every node and releases the
// allocator. Calling it again does nothing.
func (it *IntoIter[T, A]) Close() {
	if it.closed {
		return
	}
	it.closed = true
	d := desc[T]()
	w := layout.AllocFirst[A, RawList]{}
	w.Init(it.alloc, it.val)
	layout.Destroy[A, RawList](&w, func(v *RawList, p *cstl.Alloc) {
		cstl.List.Destroy(v, d.Type, &d.Drop, p)
	})
	var zero A
	it.alloc = zero
	it.val = RawList{}
}
