package cstl

import (
	"unsafe"

	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
)

// StringABI is the std::basic_string function table for one code unit width.
type StringABI struct {
	// Unit is the code unit width in bytes.
	Unit uintptr

	Destroy     func(s *StringVal, a *Alloc)
	AssignN     func(s *StringVal, p unsafe.Pointer, n uintptr, a *Alloc)
	AppendN     func(s *StringVal, p unsafe.Pointer, n uintptr, a *Alloc)
	PushBack    func(s *StringVal, c unsafe.Pointer, a *Alloc)
	CStr        func(s *StringVal) unsafe.Pointer
	Clear       func(s *StringVal)
	Reserve     func(s *StringVal, n uintptr, a *Alloc)
	ShrinkToFit func(s *StringVal, a *Alloc)
	Size        func(s *StringVal) uintptr
	Capacity    func(s *StringVal) uintptr
	MaxSize     func() uintptr
}

var (
	String    = newStringABI(1) // std::string
	WString   = newStringABI(2) // std::wstring
	U8String  = newStringABI(1) // std::u8string
	U16String = newStringABI(2) // std::u16string
	U32String = newStringABI(4) // std::u32string
)

// InlineCapacity is the number of code units that fit in the inline buffer
// next to the terminator.
func (s *StringABI) InlineCapacity() uintptr {
	return StringBufSize/s.Unit - 1
}

// Empty returns the default-constructed record.
func (s *StringABI) Empty() StringVal {
	return StringVal{Res: s.InlineCapacity()}
}

// IsLarge reports whether v keeps its code units on the heap.
func (s *StringABI) IsLarge(v *StringVal) bool {
	return v.Res > s.InlineCapacity()
}

type stringImpl struct {
	unit uintptr
	mask uintptr
}

func newStringABI(unit uintptr) StringABI {
	s := &stringImpl{unit: unit, mask: StringBufSize/unit - 1}
	return StringABI{
		Unit:        unit,
		Destroy:     s.destroy,
		AssignN:     s.assign,
		AppendN:     s.append,
		PushBack:    func(v *StringVal, c unsafe.Pointer, a *Alloc) { s.append(v, c, 1, a) },
		CStr:        s.ptr,
		Clear:       s.clear,
		Reserve:     s.reserve,
		ShrinkToFit: s.shrinkToFit,
		Size:        func(v *StringVal) uintptr { return v.Size },
		Capacity:    s.capacity,
		MaxSize:     s.maxSize,
	}
}

func (s *stringImpl) maxSize() uintptr {
	return abi.MaxSize/s.unit - 1
}

func (s *stringImpl) large(v *StringVal) bool {
	return v.Res > s.mask
}

func (s *stringImpl) capacity(v *StringVal) uintptr {
	return max(v.Res, s.mask)
}

func (s *stringImpl) ptr(v *StringVal) unsafe.Pointer {
	if s.large(v) {
		return *(*unsafe.Pointer)(unsafe.Pointer(&v.Bx))
	}
	return unsafe.Pointer(&v.Bx)
}

func (s *stringImpl) setPtr(v *StringVal, p unsafe.Pointer) {
	v.Bx = [StringBufSize]byte{}
	*(*unsafe.Pointer)(unsafe.Pointer(&v.Bx)) = p
}

func (s *stringImpl) terminate(v *StringVal) {
	end := unsafe.Add(s.ptr(v), v.Size*s.unit)
	clear(unsafe.Slice((*byte)(end), s.unit))
}

func (s *stringImpl) lengthError(n uintptr) {
	errors.Fatal(errors.Overflow(errors.PhaseNative, "basic_string", n, s.maxSize()))
}

// growth masks the request up to the allocation granularity and grows by
// half, capped at max_size.
func (s *stringImpl) growth(requested, old uintptr) uintptr {
	limit := s.maxSize()
	masked := requested | s.mask
	if masked > limit {
		return limit
	}
	if old > limit-old/2 {
		return limit
	}
	return max(masked, old+old/2)
}

func (s *stringImpl) allocate(res uintptr, a *Alloc) unsafe.Pointer {
	return a.allocate((res+1)*s.unit, s.unit)
}

func (s *stringImpl) freeHeap(v *StringVal, a *Alloc) {
	if s.large(v) {
		a.free(s.ptr(v), (v.Res+1)*s.unit, s.unit)
	}
}

func (s *stringImpl) destroy(v *StringVal, a *Alloc) {
	s.freeHeap(v, a)
	*v = StringVal{Res: s.mask}
}

func (s *stringImpl) assign(v *StringVal, p unsafe.Pointer, n uintptr, a *Alloc) {
	if n > s.maxSize() {
		s.lengthError(n)
	}
	if n <= s.capacity(v) {
		memmove(s.ptr(v), p, n*s.unit)
		v.Res = s.capacity(v)
		v.Size = n
		s.terminate(v)
		return
	}
	res := s.growth(n, s.capacity(v))
	q := s.allocate(res, a)
	memmove(q, p, n*s.unit)
	s.freeHeap(v, a)
	s.setPtr(v, q)
	v.Res = res
	v.Size = n
	s.terminate(v)
}

func (s *stringImpl) append(v *StringVal, p unsafe.Pointer, n uintptr, a *Alloc) {
	old := v.Size
	if n > s.maxSize()-old {
		s.lengthError(old + n)
	}
	if old+n <= s.capacity(v) {
		memmove(unsafe.Add(s.ptr(v), old*s.unit), p, n*s.unit)
		v.Res = s.capacity(v)
		v.Size = old + n
		s.terminate(v)
		return
	}
	res := s.growth(old+n, s.capacity(v))
	q := s.allocate(res, a)
	memmove(q, s.ptr(v), old*s.unit)
	memmove(unsafe.Add(q, old*s.unit), p, n*s.unit)
	s.freeHeap(v, a)
	s.setPtr(v, q)
	v.Res = res
	v.Size = old + n
	s.terminate(v)
}

func (s *stringImpl) clear(v *StringVal) {
	v.Size = 0
	s.terminate(v)
}

func (s *stringImpl) reallocate(v *StringVal, res uintptr, a *Alloc) {
	q := s.allocate(res, a)
	memmove(q, s.ptr(v), (v.Size+1)*s.unit)
	s.freeHeap(v, a)
	s.setPtr(v, q)
	v.Res = res
}

func (s *stringImpl) reserve(v *StringVal, n uintptr, a *Alloc) {
	if n > s.maxSize() {
		s.lengthError(n)
	}
	if n <= s.capacity(v) {
		return
	}
	s.terminate(v)
	s.reallocate(v, s.growth(n, s.capacity(v)), a)
}

func (s *stringImpl) shrinkToFit(v *StringVal, a *Alloc) {
	if !s.large(v) {
		return
	}
	if v.Size <= s.mask {
		heap, res := s.ptr(v), v.Res
		v.Bx = [StringBufSize]byte{}
		memmove(unsafe.Pointer(&v.Bx), heap, (v.Size+1)*s.unit)
		a.free(heap, (res+1)*s.unit, s.unit)
		v.Res = s.mask
		return
	}
	if target := min(v.Size|s.mask, s.maxSize()); target < v.Res {
		s.reallocate(v, target, a)
	}
}
