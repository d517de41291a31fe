package cstl

import (
	"math/bits"

	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

// Type packs an element's size and alignment into one word.
//
// When the alignment equals the lowest set bit of the size the tag is the
// size itself. Otherwise the tag is the complement of size<<8 | log2(align),
// which sets the top bit. Zero-size types are tagged as size 1, align 1.
type Type uintptr

const packedBit = Type(1) << (bits.UintSize - 1)

// TypeOf returns the tag for the given size and alignment.
func TypeOf(size, align uintptr) Type {
	if size == 0 {
		size, align = 1, 1
	}
	if !abi.IsPowerOfTwo(align) {
		errors.Fatal(errors.BadLayout(errors.PhaseSemantics, size, align))
	}
	if align == size&-size {
		return Type(size)
	}
	if size > abi.MaxSize>>8 {
		errors.Fatal(errors.BadLayout(errors.PhaseSemantics, size, align))
	}
	return ^Type(size<<8 | uintptr(abi.Log2(align)))
}

func (t Type) packed() bool {
	return t&packedBit != 0
}

// Size returns the element stride in bytes.
func (t Type) Size() uintptr {
	if t.packed() {
		return uintptr(^t) >> 8
	}
	return uintptr(t)
}

// Align returns the element alignment in bytes.
func (t Type) Align() uintptr {
	if t.packed() {
		return 1 << (uintptr(^t) & 0xff)
	}
	return uintptr(t & -t)
}
