package errors

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/cxxstl"
)

// Phase indicates which layer raised the error
type Phase string

const (
	PhaseSemantics Phase = "semantics" // element descriptors
	PhaseAlloc     Phase = "alloc"     // allocator bridge and allocators
	PhaseLayout    Phase = "layout"    // allocator/value wrappers
	PhaseVector    Phase = "vector"    // std::vector facade
	PhaseList      Phase = "list"      // std::list facade
	PhaseString    Phase = "string"    // std::basic_string facades
	PhaseNative    Phase = "native"    // native container algorithms
)

// Kind categorizes the error
type Kind string

const (
	KindBadLayout       Kind = "bad_layout"
	KindAllocation      Kind = "allocation"
	KindOutOfBounds     Kind = "out_of_bounds"
	KindOverflow        Kind = "overflow"
	KindInvalidRange    Kind = "invalid_range"
	KindInvalidFree     Kind = "invalid_free"
	KindUnsupportedType Kind = "unsupported_type"
	KindNotInitialized  Kind = "not_initialized"
	KindInvalidInput    Kind = "invalid_input"
	KindEncoding        Kind = "encoding"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	GoType     string
	NativeType string
	Detail     string
	Path       []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.NativeType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.NativeType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", native type ")
			b.WriteString(e.NativeType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.NativeType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the operation path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// NativeType sets the native record name
func (b *Builder) NativeType(t string) *Builder {
	b.err.NativeType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Fatal logs err and panics with it. Contract violations never return.
func Fatal(err *Error) {
	cxxstl.Logger().Error("contract violation",
		zap.String("phase", string(err.Phase)),
		zap.String("kind", string(err.Kind)),
		zap.String("go_type", err.GoType),
		zap.String("native_type", err.NativeType),
		zap.String("detail", err.Detail),
	)
	panic(err)
}

// Convenience constructors for common error patterns

// BadLayout creates an error for a size/alignment pair no allocator can serve
func BadLayout(phase Phase, size, align uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindBadLayout,
		Detail: fmt.Sprintf("invalid layout: size %d, align %d", size, align),
		Value:  align,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, op string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   []string{op},
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// Overflow creates an error for a length or capacity beyond max_size
func Overflow(phase Phase, op string, value any, limit uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   []string{op},
		Detail: fmt.Sprintf("value %v exceeds limit %d", value, limit),
		Value:  value,
	}
}

// InvalidRange creates an error for an element range that cannot be walked
func InvalidRange(phase Phase, goType string, first, last uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidRange,
		GoType: goType,
		Detail: fmt.Sprintf("invalid range [%#x, %#x)", first, last),
	}
}

// InvalidFree creates an error for freeing memory the allocator never handed out
func InvalidFree(phase Phase, ptr uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidFree,
		Detail: fmt.Sprintf("pointer %#x was not allocated here", ptr),
		Value:  ptr,
	}
}

// UnsupportedType creates an error for element types that cannot live in foreign memory
func UnsupportedType(phase Phase, goType, why string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedType,
		GoType: goType,
		Detail: why,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Encoding creates an error for text that cannot be converted to or from a code page
func Encoding(phase Phase, nativeType string, cause error) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindEncoding,
		NativeType: nativeType,
		Detail:     "conversion failed",
		Cause:      cause,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
