package semantics

import (
	"testing"
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
)

type point struct {
	X, Y int32
}

type empty struct{}

type wide struct {
	A [3]uint64
}

var dropped [8]int

type tracked struct {
	id    int32
	clone int32
}

func (t *tracked) Drop() { dropped[t.id]++ }

func (t *tracked) Clone() tracked { return tracked{id: t.id, clone: t.clone + 1} }

func mustPanicKind(t *testing.T, kind errors.Kind, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(*errors.Error)
		if !ok {
			t.Fatalf("recovered %v, want *errors.Error of kind %s", r, kind)
		}
		if err.Kind != kind {
			t.Fatalf("panic kind = %s, want %s", err.Kind, kind)
		}
	}()
	f()
}

func TestOf_Layout(t *testing.T) {
	tests := []struct {
		name        string
		d           *Descriptor
		size, align uintptr
	}{
		{"int8", Of[int8](), 1, 1},
		{"int64", Of[int64](), 8, 8},
		{"point", Of[point](), 8, 4},
		{"empty", Of[empty](), 1, 1},
		{"wide", Of[wide](), 24, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.d.Size != tt.size || tt.d.Align != tt.align {
				t.Errorf("layout = (%d, %d), want (%d, %d)", tt.d.Size, tt.d.Align, tt.size, tt.align)
			}
			if tt.d.Type.Size() != tt.size || tt.d.Type.Align() != tt.align {
				t.Errorf("tag decodes to (%d, %d)", tt.d.Type.Size(), tt.d.Type.Align())
			}
		})
	}
}

func TestOf_Cached(t *testing.T) {
	if Of[point]() != Of[point]() {
		t.Error("descriptor is rebuilt per call")
	}
}

func TestOf_Capabilities(t *testing.T) {
	if d := Of[tracked](); !d.Dropper || !d.Cloner {
		t.Errorf("tracked: Dropper = %v, Cloner = %v", d.Dropper, d.Cloner)
	}
	if d := Of[point](); d.Dropper || d.Cloner {
		t.Errorf("point: Dropper = %v, Cloner = %v", d.Dropper, d.Cloner)
	}
}

func TestMustStore_Pointers(t *testing.T) {
	tests := []struct {
		name string
		f    func()
	}{
		{"string", func() { MustStore[string]() }},
		{"slice", func() { MustStore[[]int]() }},
		{"pointer", func() { MustStore[*int]() }},
		{"struct with map", func() { MustStore[struct{ M map[int]int }]() }},
		{"interface", func() { MustStore[error]() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustPanicKind(t, errors.KindUnsupportedType, tt.f)
		})
	}

	MustStore[[0]*int]()
	MustStore[point]()
}

func TestDrop_Range(t *testing.T) {
	dropped = [8]int{}
	buf := []tracked{{id: 1}, {id: 2}, {id: 2}}
	first := unsafe.Pointer(&buf[0])
	last := unsafe.Add(first, 3*unsafe.Sizeof(tracked{}))

	Of[tracked]().Drop.Drop(first, last)
	if dropped[1] != 1 || dropped[2] != 2 {
		t.Errorf("dropped = %v, want [_ 1 2 ...]", dropped)
	}

	Of[tracked]().Forget.Drop(first, last)
	if dropped[1] != 1 {
		t.Error("Forget must not run Drop")
	}
}

func TestDrop_InvalidRange(t *testing.T) {
	buf := make([]int64, 4)
	first := unsafe.Pointer(&buf[0])
	d := Of[int64]()

	mustPanicKind(t, errors.KindInvalidRange, func() {
		d.Drop.Drop(unsafe.Add(first, 16), first)
	})
	mustPanicKind(t, errors.KindInvalidRange, func() {
		d.Move.Move(first, unsafe.Add(first, 12), first)
	})
}

func TestMoveTakeCopy(t *testing.T) {
	src := []point{{1, 2}, {3, 4}}
	dst := make([]point, 2)
	first := unsafe.Pointer(&src[0])
	last := unsafe.Add(first, 16)
	d := Of[point]()

	d.Move.Move(first, last, unsafe.Pointer(&dst[0]))
	if dst[0] != src[0] || dst[1] != src[1] {
		t.Errorf("Move: dst = %v", dst)
	}

	dst = make([]point, 2)
	d.Take.Move(first, last, unsafe.Pointer(&dst[0]))
	if dst[1] != (point{3, 4}) || src[0] != (point{}) || src[1] != (point{}) {
		t.Errorf("Take: dst = %v, src = %v", dst, src)
	}
}

func TestMove_OverlappingDown(t *testing.T) {
	buf := []int32{0, 1, 2, 3, 4}
	first := unsafe.Pointer(&buf[1])
	Of[int32]().Move.Move(first, unsafe.Add(first, 16), unsafe.Pointer(&buf[0]))
	want := []int32{1, 2, 3, 4, 4}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf = %v, want %v", buf, want)
		}
	}
}

func TestCopyFill_Cloner(t *testing.T) {
	src := []tracked{{id: 3}, {id: 4, clone: 1}}
	dst := make([]tracked, 2)
	first := unsafe.Pointer(&src[0])
	d := Of[tracked]()

	d.Copy.Copy(first, unsafe.Add(first, 2*d.Size), unsafe.Pointer(&dst[0]))
	if dst[0].clone != 1 || dst[1].clone != 2 || dst[1].id != 4 {
		t.Errorf("Copy: dst = %v", dst)
	}

	value := tracked{id: 5}
	fill := make([]tracked, 3)
	ff := unsafe.Pointer(&fill[0])
	d.Copy.Fill(ff, unsafe.Add(ff, 3*d.Size), unsafe.Pointer(&value))
	for i, v := range fill {
		if v.id != 5 || v.clone != 1 {
			t.Errorf("Fill[%d] = %v", i, v)
		}
	}
}

func TestZeroSizeRange(t *testing.T) {
	d := Of[empty]()
	buf := make([]byte, 4)
	first := unsafe.Pointer(&buf[0])
	if d.Size != 1 {
		t.Fatalf("zero-size stride = %d, want 1", d.Size)
	}
	d.Move.Move(first, unsafe.Add(first, 4), first)
	d.Drop.Drop(first, unsafe.Add(first, 4))
}

func TestOutcome(t *testing.T) {
	dropped = [8]int{}

	if o := Moved(true, tracked{id: 6}); !o.Settle() || dropped[6] != 0 {
		t.Error("taken value must not be dropped")
	}

	o := Moved(false, tracked{id: 7})
	if v, ok := o.Value(); !ok || v.id != 7 {
		t.Errorf("Value() = %v, %v", v, ok)
	}
	if o.Settle() || dropped[7] != 1 {
		t.Errorf("not taken: dropped = %d, want 1", dropped[7])
	}
}
