package vector

import (
	"slices"
	"testing"

	"github.com/wippyai/cxxstl/alloc"
)

func countedVec(n int32) Vec[counted] {
	v := New[counted]()
	for i := range n {
		v.Push(counted{id: i})
	}
	return v
}

func TestIntoIter_PartialDrain(t *testing.T) {
	resetDrops()
	v := countedVec(5)
	it := v.IntoIter()
	if !v.IsEmpty() {
		t.Error("vector not empty after IntoIter")
	}

	a, _ := it.Next()
	b, _ := it.NextBack()
	if a.id != 0 || b.id != 4 {
		t.Errorf("Next=%d NextBack=%d", a.id, b.id)
	}
	if it.Len() != 3 {
		t.Errorf("Len = %d, want 3", it.Len())
	}
	it.Close()
	it.Close()

	want := []int{0, 1, 1, 1, 0}
	if !slices.Equal(drops[:5], want) {
		t.Errorf("drops = %v, want %v", drops[:5], want)
	}
	v.Drop()
}

func TestIntoIter_All(t *testing.T) {
	resetDrops()
	c := alloc.NewCounting(alloc.System{})
	v := NewIn[counted](c)
	for i := range int32(4) {
		v.Push(counted{id: i})
	}
	it := v.IntoIter()
	var seen []int32
	for x := range it.All() {
		seen = append(seen, x.id)
		if x.id == 1 {
			break
		}
	}
	if !slices.Equal(seen, []int32{0, 1}) {
		t.Errorf("seen = %v", seen)
	}
	if !slices.Equal(drops[:4], []int{0, 0, 1, 1}) {
		t.Errorf("drops = %v", drops[:4])
	}
	if c.Stats().Live() != 0 {
		t.Errorf("live blocks = %d after All", c.Stats().Live())
	}
}

func TestIntoIter_Clone(t *testing.T) {
	v := FromSliceIn([]int32{1, 2, 3}, alloc.System{})
	it := v.IntoIter()
	it.Next()
	c := it.Clone()
	it.Close()
	if got := c.AsSlice(); !slices.Equal(got, []int32{2, 3}) {
		t.Errorf("clone = %v", got)
	}
	x, _ := c.NextBack()
	if x != 3 || c.Len() != 1 {
		t.Errorf("NextBack = %d, Len = %d", x, c.Len())
	}
	c.Close()
}

func TestIntoIter_Empty(t *testing.T) {
	v := New[int32]()
	it := v.IntoIter()
	if _, ok := it.Next(); ok {
		t.Error("Next on empty iterator reported a value")
	}
	if it.AsSlice() != nil {
		t.Error("AsSlice on empty iterator is not nil")
	}
	it.Close()
}
