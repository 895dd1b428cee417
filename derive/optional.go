package derive

import "fmt"

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Value returns the held value, or the zero value of T when absent.
func (o Optional[T]) Value() T {
	return o.value
}

// OrElse returns the held value, or fallback when absent.
func (o Optional[T]) OrElse(fallback T) T {
	if !o.set {
		return fallback
	}

	return o.value
}

// Format renders "Some(v)" or "None". v is formatted with %v and the '#'
// and '+' flags of f.
func (o Optional[T]) Format(f fmt.State, _ rune) {
	if !o.set {
		_, _ = fmt.Fprint(f, "None")
		return
	}

	_, _ = fmt.Fprint(f, "Some(")
	_, _ = fmt.Fprintf(f, valueFormat(f), o.value)
	_, _ = fmt.Fprint(f, ")")
}
