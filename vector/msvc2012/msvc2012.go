// Package msvc2012 provides vectors with the header order of the Visual
// Studio 2012 toolset, where the pointers precede the allocator.
package msvc2012

import (
	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/layout"
	"github.com/wippyai/cxxstl/vector"
)

// Layout is the value-first header layout.
type Layout[A alloc.Allocator] = layout.ValueFirst[A, vector.RawVec]

type VecIn[T any, A alloc.Allocator] = vector.VecLayout[T, A, Layout[A], *Layout[A]]

type Vec[T any] = VecIn[T, alloc.System]

func New[T any]() Vec[T] {
	return NewIn[T](alloc.System{})
}

func NewIn[T any, A alloc.Allocator](a A) VecIn[T, A] {
	return vector.NewLayoutIn[T, A, Layout[A]](a)
}

func FromGoSliceIn[T any, A alloc.Allocator](s *[]T, a A) VecIn[T, A] {
	return vector.FromGoSliceLayoutIn[T, A, Layout[A]](s, a)
}

func FromSliceIn[T any, A alloc.Allocator](s []T, a A) VecIn[T, A] {
	return vector.FromSliceLayoutIn[T, A, Layout[A]](s, a)
}

// FromVecIn moves the elements of a vector of either layout into a new
// value-first vector.
func FromVecIn[T any, A alloc.Allocator](src vector.Source[T], a A) VecIn[T, A] {
	return vector.FromVecLayoutIn[T, A, Layout[A]](src, a)
}
