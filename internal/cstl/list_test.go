package cstl

import (
	"slices"
	"testing"
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
)

func listInts(l *ListVal, t Type) []int64 {
	var out []int64
	for n := l.Sentinel.Next; n != l.Sentinel; n = n.Next {
		out = append(out, *(*int64)(ListValue(n, t)))
	}
	return out
}

func TestList_ConstructDestroy(t *testing.T) {
	h := newTestHeap()
	a := h.proxy()
	ops := &int64Ops{}
	var l ListVal

	List.Construct(&l, ops.typ(), a)
	if l.Sentinel == nil || l.Sentinel.Next != l.Sentinel || l.Sentinel.Prev != l.Sentinel {
		t.Fatal("empty list sentinel must link to itself")
	}
	if !List.Empty(&l) || h.live() != 1 {
		t.Errorf("empty list: size = %d, live = %d", List.Size(&l), h.live())
	}
	List.Destroy(&l, ops.typ(), ops.dropType(), a)
	if h.live() != 0 || l != (ListVal{}) {
		t.Error("destroy must free the sentinel and reset the record")
	}
}

func TestList_PushPop(t *testing.T) {
	h := newTestHeap()
	a := h.proxy()
	ops := &int64Ops{}
	typ := ops.typ()
	var l ListVal
	List.Construct(&l, typ, a)

	for _, x := range []int64{2, 3} {
		List.MovePushBack(&l, typ, ops.moveType(), unsafe.Pointer(&x), a)
	}
	one := int64(1)
	List.MovePushFront(&l, typ, ops.moveType(), unsafe.Pointer(&one), a)
	four := int64(4)
	List.CopyPushBack(&l, typ, ops.copyType(), unsafe.Pointer(&four), a)
	zero := int64(0)
	List.CopyPushFront(&l, typ, ops.copyType(), unsafe.Pointer(&zero), a)

	if got := listInts(&l, typ); !slices.Equal(got, []int64{0, 1, 2, 3, 4}) {
		t.Errorf("contents = %v", got)
	}
	if *(*int64)(List.Front(&l, typ)) != 0 || *(*int64)(List.Back(&l, typ)) != 4 {
		t.Error("front/back mismatch")
	}

	List.PopFront(&l, typ, ops.dropType(), a)
	List.PopBack(&l, typ, ops.forget(), a)
	if got := listInts(&l, typ); !slices.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("after pops = %v", got)
	}
	if ops.drops != 1 {
		t.Errorf("drops = %d, want 1", ops.drops)
	}

	List.Destroy(&l, typ, ops.dropType(), a)
	if ops.drops != 4 || h.live() != 0 {
		t.Errorf("destroy: drops = %d, live = %d", ops.drops, h.live())
	}
}

func TestList_AssignResize(t *testing.T) {
	h := newTestHeap()
	a := h.proxy()
	ops := &int64Ops{}
	typ := ops.typ()
	var l, m ListVal
	List.Construct(&l, typ, a)
	List.Construct(&m, typ, a)

	seven := int64(7)
	List.AssignN(&l, typ, ops.copyType(), 3, unsafe.Pointer(&seven), a)
	if got := listInts(&l, typ); !slices.Equal(got, []int64{7, 7, 7}) {
		t.Errorf("assign = %v", got)
	}
	nine := int64(9)
	List.Resize(&l, typ, ops.copyType(), 5, unsafe.Pointer(&nine), a)
	List.Resize(&l, typ, ops.copyType(), 4, unsafe.Pointer(&nine), a)
	if got := listInts(&l, typ); !slices.Equal(got, []int64{7, 7, 7, 9}) {
		t.Errorf("resize = %v", got)
	}

	List.CopyAssign(&m, typ, ops.copyType(), &l, a)
	if got := listInts(&m, typ); !slices.Equal(got, listInts(&l, typ)) {
		t.Errorf("copy = %v", got)
	}

	var n ListVal
	List.Construct(&n, typ, a)
	if !List.MoveAssign(&n, typ, ops.moveType(), &l, a) {
		t.Fatal("MoveAssign reported not moved")
	}
	List.Clear(&l, typ, ops.forget(), a)
	if List.Size(&n) != 4 || List.Size(&l) != 0 {
		t.Errorf("move: dst = %d, src = %d", List.Size(&n), List.Size(&l))
	}

	List.Swap(&m, &n)
	for _, x := range []*ListVal{&l, &m, &n} {
		List.Destroy(x, typ, ops.dropType(), a)
	}
	if h.live() != 0 {
		t.Errorf("live blocks = %d, want 0", h.live())
	}
}

func TestList_Uninitialized(t *testing.T) {
	ops := &int64Ops{}
	var l ListVal
	x := int64(1)
	mustPanicKind(t, errors.KindNotInitialized, func() {
		List.MovePushBack(&l, ops.typ(), ops.moveType(), unsafe.Pointer(&x), newTestHeap().proxy())
	})
}

func TestList_NodeLayout(t *testing.T) {
	size, align := listNodeLayout(TypeOf(1, 1))
	word := unsafe.Sizeof(uintptr(0))
	if align != word {
		t.Errorf("node align = %d, want %d", align, word)
	}
	if size != 3*word {
		t.Errorf("node size = %d, want %d", size, 3*word)
	}
}
