package list

import (
	"cmp"
	"iter"
)

// Equal reports whether a and b hold equal elements in the same order.
func Equal[T comparable](a, b View[T]) bool {
	if a.Len() != b.Len() {
		return false
	}
	return equalSeq(a.All(), b.All(), func(x, y T) bool { return x == y })
}

// Compare compares a and b lexicographically.
func Compare[T cmp.Ordered](a, b View[T]) int {
	return compareSeq(a.All(), b.All(), cmp.Compare[T])
}

func equalSeq[T any](a, b iter.Seq[T], eq func(T, T) bool) bool {
	next, stop := iter.Pull(b)
	defer stop()
	for x := range a {
		y, ok := next()
		if !ok || !eq(x, y) {
			return false
		}
	}
	_, more := next()
	return !more
}

func compareSeq[T any](a, b iter.Seq[T], cmp func(T, T) int) int {
	next, stop := iter.Pull(b)
	defer stop()
	for x := range a {
		y, ok := next()
		if !ok {
			return 1
		}
		if c := cmp(x, y); c != 0 {
			return c
		}
	}
	if _, more := next(); more {
		return -1
	}
	return 0
}
