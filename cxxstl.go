package cxxstl

// Dropper is implemented by element and allocator types that hold resources
// which must be released when their owner is destroyed.
type Dropper interface {
	Drop()
}

// Cloner is implemented by element types that need a deep copy. Types that do
// not implement it are copied by assignment.
type Cloner[T any] interface {
	Clone() T
}
