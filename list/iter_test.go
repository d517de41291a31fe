package list

import (
	"slices"
	"testing"

	"github.com/wippyai/cxxstl/alloc"
)

func TestIntoIter_PartialDrain(t *testing.T) {
	drops = [16]int{}
	c := alloc.NewCounting(alloc.System{})
	l := NewIn[counted](c)
	for i := range int32(5) {
		l.PushBack(counted{id: i})
	}
	it := l.IntoIter()
	if l.Raw().Sentinel != nil {
		t.Error("list still owns its nodes after IntoIter")
	}
	a, _ := it.Next()
	b, _ := it.NextBack()
	if a.id != 0 || b.id != 4 || it.Len() != 3 {
		t.Errorf("Next=%d NextBack=%d Len=%d", a.id, b.id, it.Len())
	}
	it.Close()
	it.Close()

	if want := []int{0, 1, 1, 1, 0}; !slices.Equal(drops[:5], want) {
		t.Errorf("drops = %v, want %v", drops[:5], want)
	}
	if st := c.Stats(); st.Live() != 0 {
		t.Errorf("live blocks = %d", st.Live())
	}
	l.Drop()
}

func TestIntoIter_All(t *testing.T) {
	l := FromSliceIn([]int32{1, 2, 3}, alloc.System{})
	it := l.IntoIter()
	var seen []int32
	for x := range it.All() {
		seen = append(seen, x)
	}
	if !slices.Equal(seen, []int32{1, 2, 3}) {
		t.Errorf("seen = %v", seen)
	}
	if it.Len() != 0 {
		t.Errorf("Len after All = %d", it.Len())
	}
	if _, ok := it.Next(); ok {
		t.Error("Next after Close reported a value")
	}
}
