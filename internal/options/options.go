// Package options implements the generic functional-option plumbing shared
// by the public packages. Each package exposes its own With... constructors
// as thin wrappers over New or NoError, keeping option validation next to
// the type it configures.
package options

// Option configures a value of type T and may reject an invalid setting.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option[T].
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.fn(target)
}

// New wraps a fallible configuration function as an option.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError wraps an infallible configuration function as an option.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Apply runs every option against target in order, stopping at the first
// error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
