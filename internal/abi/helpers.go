package abi

import (
	"math"
	"math/bits"
	"unsafe"
)

// MaxSize is the largest object size the platform can represent (isize::MAX).
const MaxSize = uintptr(math.MaxInt)

func SafeMul(a, b uintptr) (uintptr, bool) {
	hi, lo := bits.Mul(uint(a), uint(b))
	if hi != 0 || uintptr(lo) > MaxSize {
		return 0, false
	}
	return uintptr(lo), true
}

func SafeAdd(a, b uintptr) (uintptr, bool) {
	if a > MaxSize || b > MaxSize-a {
		return 0, false
	}
	return a + b, true
}

func AlignTo(offset, align uintptr) uintptr {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

func IsPowerOfTwo(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}

// Log2 returns the exponent of a power of two.
func Log2(x uintptr) uint {
	return uint(bits.TrailingZeros(uint(x)))
}

// ValidLayout reports whether size rounded up to align stays within MaxSize.
func ValidLayout(size, align uintptr) bool {
	if !IsPowerOfTwo(align) {
		return false
	}
	return size <= MaxSize-(align-1)
}

// Span returns the number of size-byte elements in [first, last).
// It fails when last precedes first or the byte distance is not a multiple of size.
func Span(first, last unsafe.Pointer, size uintptr) (uintptr, bool) {
	f, l := uintptr(first), uintptr(last)
	if l < f || size == 0 {
		return 0, false
	}
	d := l - f
	if d%size != 0 {
		return 0, false
	}
	return d / size, true
}
