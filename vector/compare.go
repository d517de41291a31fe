package vector

import (
	"cmp"
	"slices"
)

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b View[T]) bool {
	return slices.Equal(a.AsSlice(), b.AsSlice())
}

// Compare compares a and b lexicographically.
func Compare[T cmp.Ordered](a, b View[T]) int {
	return slices.Compare(a.AsSlice(), b.AsSlice())
}
