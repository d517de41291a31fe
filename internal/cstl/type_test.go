package cstl

import (
	"testing"
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
)

func TestTypeOf_RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		size, align uintptr
		wantSize    uintptr
		wantAlign   uintptr
		packed      bool
	}{
		{"zero size", 0, 1, 1, 1, false},
		{"zero size aligned", 0, 8, 1, 1, false},
		{"byte", 1, 1, 1, 1, false},
		{"int64", 8, 8, 8, 8, false},
		{"pair of u32", 8, 4, 8, 4, true},
		{"three bytes", 3, 1, 3, 1, false},
		{"twelve by four", 12, 4, 12, 4, false},
		{"twenty four by eight", 24, 8, 24, 8, false},
		{"sixteen by one", 16, 1, 16, 1, true},
		{"48 by 16", 48, 16, 48, 16, false},
		{"64 by 8", 64, 8, 64, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag := TypeOf(tt.size, tt.align)
			if got := tag.Size(); got != tt.wantSize {
				t.Errorf("Size() = %d, want %d", got, tt.wantSize)
			}
			if got := tag.Align(); got != tt.wantAlign {
				t.Errorf("Align() = %d, want %d", got, tt.wantAlign)
			}
			if got := tag.packed(); got != tt.packed {
				t.Errorf("packed() = %v, want %v", got, tt.packed)
			}
		})
	}
}

func TestTypeOf_Distinct(t *testing.T) {
	if TypeOf(8, 8) == TypeOf(8, 4) {
		t.Error("tags for (8,8) and (8,4) collide")
	}
	if TypeOf(0, 1) != TypeOf(1, 1) {
		t.Error("zero-size tag differs from (1,1)")
	}
}

func TestTypeOf_BadAlign(t *testing.T) {
	mustPanicKind(t, errors.KindBadLayout, func() { TypeOf(12, 3) })
}

func TestListValueOffset(t *testing.T) {
	ptr := unsafe.Sizeof(ListNode{})
	if got := ListValueOffset(TypeOf(1, 1)); got != ptr {
		t.Errorf("offset for byte = %d, want %d", got, ptr)
	}
	if got := ListValueOffset(TypeOf(32, 32)); got != 32 {
		t.Errorf("offset for align 32 = %d, want 32", got)
	}
}

func TestRecordLayout(t *testing.T) {
	word := unsafe.Sizeof(uintptr(0))
	if got := unsafe.Sizeof(VectorVal{}); got != 3*word {
		t.Errorf("sizeof(VectorVal) = %d, want %d", got, 3*word)
	}
	if got := unsafe.Sizeof(ListVal{}); got != 2*word {
		t.Errorf("sizeof(ListVal) = %d, want %d", got, 2*word)
	}
	if got := unsafe.Sizeof(StringVal{}); got != StringBufSize+2*word {
		t.Errorf("sizeof(StringVal) = %d, want %d", got, StringBufSize+2*word)
	}
	if got := unsafe.Offsetof(StringVal{}.Size); got != StringBufSize {
		t.Errorf("offsetof(StringVal.Size) = %d, want %d", got, StringBufSize)
	}
}
