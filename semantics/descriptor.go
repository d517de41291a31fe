package semantics

import (
	"reflect"
	"unsafe"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/wippyai/cxxstl"
	"github.com/wippyai/cxxstl/errors"
	"github.com/wippyai/cxxstl/internal/abi"
	"github.com/wippyai/cxxstl/internal/cstl"
)

// Descriptor is the native view of one element type.
type Descriptor struct {
	GoType reflect.Type
	Type   cstl.Type

	// Size and Align are the normalized stride and alignment. Zero-size
	// types use 1 and 1.
	Size  uintptr
	Align uintptr

	// Drop runs Dropper.Drop on every element.
	Drop cstl.DropType
	// Forget discards elements without running anything. It is used for
	// storage whose value has already been read out.
	Forget cstl.DropType
	// Move relocates bitwise. The source is left uninitialized.
	Move cstl.MoveType
	// Take relocates out of Go-owned storage and zeroes the source.
	Take cstl.MoveType
	// Copy clones through Cloner, or by assignment.
	Copy cstl.CopyType

	// Pointers reports whether the type holds Go pointers.
	Pointers bool
	// Dropper and Cloner report the capabilities the adapters use.
	Dropper bool
	Cloner  bool
}

var descriptors = xsync.NewMapOf[reflect.Type, *Descriptor]()

// Of returns the cached descriptor for T.
func Of[T any]() *Descriptor {
	rt := reflect.TypeFor[T]()
	d, _ := descriptors.LoadOrCompute(rt, build[T])
	return d
}

// MustStore returns the descriptor for T and panics when T cannot live in
// foreign memory.
func MustStore[T any]() *Descriptor {
	d := Of[T]()
	if d.Pointers {
		errors.Fatal(errors.UnsupportedType(errors.PhaseSemantics, d.GoType.String(),
			"element type contains Go pointers and cannot be stored in foreign memory"))
	}
	return d
}

func build[T any]() *Descriptor {
	rt := reflect.TypeFor[T]()
	size, align := unsafe.Sizeof(*new(T)), unsafe.Alignof(*new(T))
	if size == 0 {
		size, align = 1, 1
	}
	_, dropper := any((*T)(nil)).(cxxstl.Dropper)
	_, cloner := any((*T)(nil)).(cxxstl.Cloner[T])

	d := &Descriptor{
		GoType:   rt,
		Type:     cstl.TypeOf(size, align),
		Size:     size,
		Align:    align,
		Pointers: hasPointers(rt),
		Dropper:  dropper,
		Cloner:   cloner,
	}
	r := ranger{size: size, name: rt.String()}

	d.Drop = cstl.DropType{Drop: func(first, last unsafe.Pointer) {
		if !dropper {
			r.span(first, last)
			return
		}
		n := r.span(first, last)
		for i := range n {
			DropValue((*T)(unsafe.Add(first, i*size)))
		}
	}}
	d.Forget = cstl.DropType{Drop: func(first, last unsafe.Pointer) {
		r.span(first, last)
	}}

	relocate := func(first, last, dest unsafe.Pointer) {
		n := r.span(first, last)
		for i := range n {
			*(*T)(unsafe.Add(dest, i*size)) = *(*T)(unsafe.Add(first, i*size))
		}
	}
	d.Move = cstl.MoveType{DropType: d.Drop, Move: relocate}
	d.Take = cstl.MoveType{DropType: d.Drop, Move: func(first, last, dest unsafe.Pointer) {
		n := r.span(first, last)
		var zero T
		for i := range n {
			src := (*T)(unsafe.Add(first, i*size))
			*(*T)(unsafe.Add(dest, i*size)) = *src
			*src = zero
		}
	}}
	d.Copy = cstl.CopyType{
		MoveType: d.Move,
		Copy: func(first, last, dest unsafe.Pointer) {
			n := r.span(first, last)
			for i := range n {
				*(*T)(unsafe.Add(dest, i*size)) = CloneValue((*T)(unsafe.Add(first, i*size)))
			}
		},
		Fill: func(first, last, value unsafe.Pointer) {
			n := r.span(first, last)
			v := (*T)(value)
			for i := range n {
				*(*T)(unsafe.Add(first, i*size)) = CloneValue(v)
			}
		},
	}
	return d
}

// ranger validates ranges handed to the adapters.
type ranger struct {
	size uintptr
	name string
}

func (r ranger) span(first, last unsafe.Pointer) uintptr {
	n, ok := abi.Span(first, last, r.size)
	if !ok {
		errors.Fatal(errors.InvalidRange(errors.PhaseSemantics, r.name, uintptr(first), uintptr(last)))
	}
	return n
}

// DropValue drops a single Go-held value.
func DropValue[T any](v *T) {
	if d, ok := any(v).(cxxstl.Dropper); ok {
		d.Drop()
	}
}

// CloneValue returns a clone of *v.
func CloneValue[T any](v *T) T {
	if c, ok := any(v).(cxxstl.Cloner[T]); ok {
		return c.Clone()
	}
	return *v
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
