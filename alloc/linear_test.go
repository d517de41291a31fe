package alloc

import (
	"testing"
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
)

func newTestLinear(t *testing.T, pages uint32) *Linear {
	t.Helper()
	l, err := NewLinear(t.Context(), LinearOptions{Pages: pages, Guard: 16})
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	t.Cleanup(func() { l.Close(t.Context()) })
	return l
}

func TestNewLinear_Options(t *testing.T) {
	tests := []struct {
		name string
		opts LinearOptions
	}{
		{"zero pages", LinearOptions{Pages: 0}},
		{"too many pages", LinearOptions{Pages: 70000}},
		{"guard too large", LinearOptions{Pages: 1, Guard: WasmPageSize / 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewLinear(t.Context(), tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}

	d := DefaultLinearOptions()
	if d.Pages != 16 || d.Guard != 16 {
		t.Errorf("DefaultLinearOptions() = %+v", d)
	}
}

func TestLinear_AllocateFree(t *testing.T) {
	l := newTestLinear(t, 1)
	if got := l.Memory().Size(); got != WasmPageSize {
		t.Fatalf("memory size = %d, want %d", got, WasmPageSize)
	}
	initial := l.FreeBytes()

	a := l.Allocate(100, 8)
	b := l.Allocate(10, 64)
	c := l.Allocate(1, 1)
	for i, p := range []unsafe.Pointer{a, b, c} {
		if p == nil {
			t.Fatalf("allocation %d failed", i)
		}
	}
	if uintptr(b)%64 != 0 {
		t.Errorf("pointer %p not 64-aligned", b)
	}

	off, ok := l.Offset(a)
	if !ok || off == 0 {
		t.Errorf("Offset(a) = %d, %v", off, ok)
	}
	copy(unsafe.Slice((*byte)(a), 5), "hello")
	data, _ := l.Memory().Read(off, 5)
	if string(data) != "hello" {
		t.Errorf("memory at offset %d = %q, want hello", off, data)
	}

	if l.LiveBlocks() != 3 {
		t.Errorf("LiveBlocks() = %d, want 3", l.LiveBlocks())
	}
	l.Deallocate(b, 10, 64)
	l.Deallocate(a, 100, 8)
	l.Deallocate(c, 1, 1)
	if l.LiveBlocks() != 0 {
		t.Errorf("LiveBlocks() = %d, want 0", l.LiveBlocks())
	}
	if got := l.FreeBytes(); got != initial {
		t.Errorf("FreeBytes() = %d, want %d", got, initial)
	}
	if len(l.free) != 1 {
		t.Errorf("free list has %d spans after full release, want 1", len(l.free))
	}
}

func TestLinear_ReuseAndExhaustion(t *testing.T) {
	l := newTestLinear(t, 1)

	big := l.Allocate(40000, 8)
	if big == nil {
		t.Fatal("40000-byte allocation failed")
	}
	if p := l.Allocate(40000, 8); p != nil {
		t.Fatal("second 40000-byte allocation should not fit")
	}
	l.Deallocate(big, 40000, 8)
	again := l.Allocate(40000, 8)
	if again != big {
		t.Errorf("first fit returned %p, want %p", again, big)
	}
	l.Deallocate(again, 40000, 8)
}

func TestLinear_InvalidFree(t *testing.T) {
	l := newTestLinear(t, 1)
	p := l.Allocate(16, 8)

	mustPanicKind(t, errors.KindInvalidFree, func() {
		l.Deallocate(unsafe.Add(p, 8), 8, 8)
	})
	var x int64
	mustPanicKind(t, errors.KindInvalidFree, func() {
		l.Deallocate(unsafe.Pointer(&x), 8, 8)
	})
}

func TestLinear_Closed(t *testing.T) {
	l, err := NewLinear(t.Context(), DefaultLinearOptions())
	if err != nil {
		t.Fatalf("NewLinear: %v", err)
	}
	if err := l.Close(t.Context()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if p := l.Allocate(8, 8); p != nil {
		t.Error("allocation after Close succeeded")
	}
	if err := l.Close(t.Context()); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestMemoryModule(t *testing.T) {
	got := memoryModule(1)
	want := []byte{
		0x00, 0x61, 0x73, 0x6d,
		0x01, 0x00, 0x00, 0x00,
		0x05, 0x04, 0x01, 0x01, 0x01, 0x01,
		0x07, 0x0a, 0x01, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	}
	if string(got) != string(want) {
		t.Errorf("memoryModule(1) = %x, want %x", got, want)
	}
	if b := appendULEB(nil, 300); len(b) != 2 || b[0] != 0xac || b[1] != 0x02 {
		t.Errorf("appendULEB(300) = %x, want ac02", b)
	}
}
