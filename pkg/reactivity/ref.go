package reactivity

type valueKey struct{}

// Ref holds a single reactive value. Reads through Value are tracked and
// Set notifies the effects that read it.
//
// Ref is NOT thread-safe. It must only be accessed from the UI goroutine.
type Ref[T any] struct {
	value T
	equal func(a, b T) bool
}

// NewRef creates a ref that skips notification when the new value equals
// the old one.
func NewRef[T comparable](initial T) *Ref[T] {
	return &Ref[T]{
		value: initial,
		equal: func(a, b T) bool { return a == b },
	}
}

// NewRefFunc creates a ref with a custom equality function. A nil equal
// notifies on every Set.
func NewRefFunc[T any](initial T, equal func(a, b T) bool) *Ref[T] {
	return &Ref[T]{value: initial, equal: equal}
}

// Value returns the current value and tracks the read.
func (r *Ref[T]) Value() T {
	Track(r, valueKey{})
	return r.value
}

// Peek returns the current value without tracking.
func (r *Ref[T]) Peek() T {
	return r.value
}

// Set updates the value and notifies dependents.
func (r *Ref[T]) Set(value T) {
	if r.equal != nil && r.equal(r.value, value) {
		return
	}
	r.value = value
	Trigger(r, valueKey{})
}

// Update applies a transformation to the current value.
func (r *Ref[T]) Update(transform func(T) T) {
	r.Set(transform(r.value))
}
