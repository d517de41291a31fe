package layout

import (
	"reflect"

	"github.com/wippyai/cxxstl"
	"github.com/wippyai/cxxstl/alloc"
	"github.com/wippyai/cxxstl/internal/cstl"
)

// Wrapper gives uniform access to an allocator/value pair regardless of the
// physical field order.
type Wrapper[A, V any] interface {
	// Value returns the native record.
	Value() *V
	// Allocator returns the allocator field.
	Allocator() *A
	// Init overwrites both fields without destroying the previous contents.
	Init(a A, v V)
}

// Ptr constrains L so that its pointer is a Wrapper. Containers hold L by
// value and call the methods through PL.
type Ptr[L, A, V any] interface {
	*L
	Wrapper[A, V]
}

// AllocFirst stores the allocator before the value record.
type AllocFirst[A, V any] struct {
	alloc A
	val   V
}

func (w *AllocFirst[A, V]) Value() *V     { return &w.val }
func (w *AllocFirst[A, V]) Allocator() *A { return &w.alloc }

func (w *AllocFirst[A, V]) Init(a A, v V) {
	w.alloc = a
	w.val = v
}

// ValueFirst stores the value record before the allocator.
type ValueFirst[A, V any] struct {
	val   V
	alloc A
}

func (w *ValueFirst[A, V]) Value() *V     { return &w.val }
func (w *ValueFirst[A, V]) Allocator() *A { return &w.alloc }

func (w *ValueFirst[A, V]) Init(a A, v V) {
	w.val = v
	w.alloc = a
}

// WithProxy calls f with the wrapper's record and a proxy for its allocator.
func WithProxy[A alloc.Allocator, V any](w Wrapper[A, V], f func(v *V, p *cstl.Alloc)) {
	alloc.WithProxy(w.Allocator(), func(p *cstl.Alloc) {
		f(w.Value(), p)
	})
}

// Destroy runs the native destructor with a proxy, resets the record and
// then drops the allocator when it implements cxxstl.Dropper. The allocator
// is never released before the record it backs.
//
// A dropped allocator is reset to its zero value, and a zero allocator is
// never dropped, so destroying the same wrapper twice releases it once.
func Destroy[A alloc.Allocator, V any](w Wrapper[A, V], destroy func(v *V, p *cstl.Alloc)) {
	WithProxy(w, destroy)
	var zero V
	*w.Value() = zero
	a := w.Allocator()
	if reflect.ValueOf(a).Elem().IsZero() {
		return
	}
	if d, ok := any(*a).(cxxstl.Dropper); ok {
		d.Drop()
		var none A
		*a = none
	}
}
