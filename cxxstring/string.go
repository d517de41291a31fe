package cxxstring

import (
	"fmt"
	"iter"
	"slices"
	"unsafe"

	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
	"github.com/wippyai/cxxstl/internal/cstl"
	"github.com/wippyai/cxxstl/layout"
	"github.com/wippyai/cxxstl/semantics"
)

// RawString is the native std::basic_string header.
type RawString = cstl.StringVal

// BasicString is a string of U code units encoded as E and allocated by A.
// The zero value is an empty string.
type BasicString[U CodeUnit, E Encoding[U], A alloc.Allocator] struct {
	inner layout.AllocFirst[A, RawString]
}

type (
	NarrowStringIn[A alloc.Allocator] = BasicString[uint8, Narrow, A]
	WideStringIn[A alloc.Allocator]   = BasicString[uint16, Wide, A]
	UTF8StringIn[A alloc.Allocator]   = BasicString[uint8, UTF8, A]
	UTF16StringIn[A alloc.Allocator]  = BasicString[uint16, UTF16, A]
	UTF32StringIn[A alloc.Allocator]  = BasicString[uint32, UTF32, A]

	NarrowString = NarrowStringIn[alloc.System]
	WideString   = WideStringIn[alloc.System]
	UTF8String   = UTF8StringIn[alloc.System]
	UTF16String  = UTF16StringIn[alloc.System]
	UTF32String  = UTF32StringIn[alloc.System]
)

// View is anything exposing code units.
type View[U CodeUnit] interface {
	Units() []U
}

// NewIn returns an empty string using a.
func NewIn[U CodeUnit, E Encoding[U], A alloc.Allocator](a A) BasicString[U, E, A] {
	var s BasicString[U, E, A]
	s.inner.Init(a, s.table().Empty())
	return s
}

// FromIn returns s encoded as E using a.
func FromIn[U CodeUnit, E Encoding[U], A alloc.Allocator](s string, a A) BasicString[U, E, A] {
	out := NewIn[U, E](a)
	out.Assign(s)
	return out
}

// FromUnitsIn returns a string holding a copy of units using a.
func FromUnitsIn[U CodeUnit, E Encoding[U], A alloc.Allocator](units []U, a A) BasicString[U, E, A] {
	out := NewIn[U, E](a)
	out.AssignUnits(units)
	return out
}

func NewNarrow(s string) NarrowString { return FromIn[uint8, Narrow](s, alloc.System{}) }
func NewWide(s string) WideString     { return FromIn[uint16, Wide](s, alloc.System{}) }
func NewUTF8(s string) UTF8String     { return FromIn[uint8, UTF8](s, alloc.System{}) }
func NewUTF16(s string) UTF16String   { return FromIn[uint16, UTF16](s, alloc.System{}) }
func NewUTF32(s string) UTF32String   { return FromIn[uint32, UTF32](s, alloc.System{}) }

func (s *BasicString[U, E, A]) table() *cstl.StringABI {
	var e E
	return e.table()
}

func (s *BasicString[U, E, A]) with(f func(val *RawString, p *cstl.Alloc)) {
	layout.WithProxy[A, RawString](&s.inner, f)
}

func unitsPtr[U CodeUnit](units []U) unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(units))
}

// Raw returns the native header.
func (s *BasicString[U, E, A]) Raw() *RawString {
	return s.inner.Value()
}

func (s *BasicString[U, E, A]) Allocator() *A {
	return s.inner.Allocator()
}

// Assign replaces the contents with s encoded as E.
func (s *BasicString[U, E, A]) Assign(str string) {
	var e E
	s.AssignUnits(e.encode(str))
}

// AssignUnits replaces the contents with a copy of units.
func (s *BasicString[U, E, A]) AssignUnits(units []U) {
	t := s.table()
	s.with(func(val *RawString, p *cstl.Alloc) {
		t.AssignN(val, unitsPtr(units), uintptr(len(units)), p)
	})
}

// Append appends str encoded as E.
func (s *BasicString[U, E, A]) Append(str string) {
	var e E
	s.AppendUnits(e.encode(str))
}

// AppendUnits appends a copy of units.
func (s *BasicString[U, E, A]) AppendUnits(units []U) {
	if len(units) == 0 {
		return
	}
	t := s.table()
	s.with(func(val *RawString, p *cstl.Alloc) {
		t.AppendN(val, unitsPtr(units), uintptr(len(units)), p)
	})
}

// AppendUnit appends one code unit as is.
func (s *BasicString[U, E, A]) AppendUnit(c U) {
	t := s.table()
	s.with(func(val *RawString, p *cstl.Alloc) {
		t.PushBack(val, unsafe.Pointer(&c), p)
	})
}

// Extend appends every unit of seq.
func (s *BasicString[U, E, A]) Extend(seq iter.Seq[U]) {
	for c := range seq {
		s.AppendUnit(c)
	}
}

// Clear empties the string and keeps the capacity.
func (s *BasicString[U, E, A]) Clear() {
	s.table().Clear(s.Raw())
}

// Reserve ensures room for at least additional more code units.
func (s *BasicString[U, E, A]) Reserve(additional int) {
	t := s.table()
	limit := t.MaxSize()
	need, ok := abi.SafeAdd(uintptr(s.Len()), uintptr(additional))
	if additional < 0 || !ok || need > limit {
		errors.Fatal(errors.Overflow(errors.PhaseString, "reserve", additional, limit))
	}
	s.with(func(val *RawString, p *cstl.Alloc) {
		t.Reserve(val, need, p)
	})
}

// ShrinkToFit releases unused capacity, moving back inline when the
// contents fit.
func (s *BasicString[U, E, A]) ShrinkToFit() {
	t := s.table()
	s.with(func(val *RawString, p *cstl.Alloc) {
		t.ShrinkToFit(val, p)
	})
}

// Units returns the code units without the terminator. The slice aliases
// the string and is invalidated by any mutation.
func (s *BasicString[U, E, A]) Units() []U {
	return unsafe.Slice(s.CStr(), s.Len())
}

// UnitsWithNul returns the code units followed by the terminator.
func (s *BasicString[U, E, A]) UnitsWithNul() []U {
	return unsafe.Slice(s.CStr(), s.Len()+1)
}

// CStr returns a pointer to the null terminated code units.
func (s *BasicString[U, E, A]) CStr() *U {
	return (*U)(s.table().CStr(s.Raw()))
}

// Len returns the length in code units.
func (s *BasicString[U, E, A]) Len() int {
	return int(s.table().Size(s.Raw()))
}

func (s *BasicString[U, E, A]) IsEmpty() bool {
	return s.Len() == 0
}

// Capacity returns the number of code units that fit without reallocating.
func (s *BasicString[U, E, A]) Capacity() int {
	return int(s.table().Capacity(s.Raw()))
}

func (s *BasicString[U, E, A]) MaxSize() int {
	return int(s.table().MaxSize())
}

// IsLarge reports whether the code units live on the heap.
func (s *BasicString[U, E, A]) IsLarge() bool {
	return s.table().IsLarge(s.Raw())
}

// Clone returns a copy with a clone of the allocator.
func (s *BasicString[U, E, A]) Clone() BasicString[U, E, A] {
	return FromUnitsIn[U, E](s.Units(), semantics.CloneValue(s.Allocator()))
}

// Drop frees the heap block, if any, and releases the allocator.
func (s *BasicString[U, E, A]) Drop() {
	t := s.table()
	layout.Destroy[A, RawString](&s.inner, t.Destroy)
	*s.Raw() = t.Empty()
}

// Equal reports whether s and other hold the same code units.
func (s *BasicString[U, E, A]) Equal(other View[U]) bool {
	return slices.Equal(s.Units(), other.Units())
}

// Compare compares the code units lexicographically.
func (s *BasicString[U, E, A]) Compare(other View[U]) int {
	return slices.Compare(s.Units(), other.Units())
}

// Sum64 hashes the code units with xxhash.
func (s *BasicString[U, E, A]) Sum64() uint64 {
	h := semantics.NewHash[U]()
	h.AddSlice(s.Units())
	return h.Sum64()
}

// String decodes the contents to a Go string.
func (s *BasicString[U, E, A]) String() string {
	var e E
	return e.decode(s.Units())
}

func (s *BasicString[U, E, A]) GoString() string {
	var e E
	return fmt.Sprintf("cxxstring.%s{%q, length: %d, capacity: %d, large_mode: %t}",
		e.name(), s.String(), s.Len(), s.Capacity(), s.IsLarge())
}
