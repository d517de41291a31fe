package msvc2012

import (
	"slices"
	"testing"
	"unsafe"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/vector"
)

func TestLayout(t *testing.T) {
	word := unsafe.Sizeof(uintptr(0))
	var l Layout[*alloc.Counting[alloc.System]]
	if got := uintptr(unsafe.Pointer(l.Value())) - uintptr(unsafe.Pointer(&l)); got != 0 {
		t.Errorf("value offset = %d, want 0", got)
	}
	if got := uintptr(unsafe.Pointer(l.Allocator())) - uintptr(unsafe.Pointer(&l)); got != 3*word {
		t.Errorf("allocator offset = %d, want %d", got, 3*word)
	}

	var current vector.Layout[*alloc.Counting[alloc.System]]
	if got := uintptr(unsafe.Pointer(current.Value())) - uintptr(unsafe.Pointer(&current)); got != word {
		t.Errorf("current layout value offset = %d, want %d", got, word)
	}
}

func TestVec_RoundTrip(t *testing.T) {
	c := alloc.NewCounting(alloc.System{})
	s := []int32{1, 2, 3}
	v := FromGoSliceIn(&s, c)
	v.Push(4)
	if got := v.AsSlice(); !slices.Equal(got, []int32{1, 2, 3, 4}) {
		t.Errorf("AsSlice = %v", got)
	}

	cur := vector.FromVecIn[int32](&v, alloc.System{})
	if !v.IsEmpty() || cur.Len() != 4 {
		t.Errorf("after cross-layout move: src=%d dst=%d", v.Len(), cur.Len())
	}
	back := FromVecIn[int32](&cur, alloc.System{})
	if got := back.AsSlice(); !slices.Equal(got, []int32{1, 2, 3, 4}) {
		t.Errorf("moved back = %v", got)
	}

	v.Drop()
	cur.Drop()
	back.Drop()
	if c.Stats().Live() != 0 {
		t.Errorf("live blocks = %d", c.Stats().Live())
	}
}
