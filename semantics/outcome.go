package semantics

// Outcome records whether the native side took ownership of a value moved
// into it. A value that was not taken is still owned by the caller.
type Outcome[T any] struct {
	value T
	taken bool
}

// Moved builds the outcome of a move call from its boolean result.
func Moved[T any](taken bool, value T) Outcome[T] {
	if taken {
		return Outcome[T]{taken: true}
	}
	return Outcome[T]{value: value}
}

// Taken reports whether ownership moved to the native side.
func (o Outcome[T]) Taken() bool {
	return o.taken
}

// Value returns the value still owned by the caller.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, !o.taken
}

// Settle drops the value when it was not taken and reports whether it was.
func (o Outcome[T]) Settle() bool {
	if !o.taken {
		DropValue(&o.value)
	}
	return o.taken
}
