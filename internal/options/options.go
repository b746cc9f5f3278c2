// Package options implements the generic functional option pattern shared by
// the converter, mutable string, format engine, collator and string table
// configuration types.
package options

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func is a functional option backed by a plain function.
type Func[T any] struct {
	applyFunc func(T) error
}

// apply implements the Option interface.
func (f *Func[T]) apply(target T) error {
	if f == nil || f.applyFunc == nil {
		return nil
	}

	return f.applyFunc(target)
}

// New creates an option from a function that may reject the configuration.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError creates an option from a function that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies opts to target in order and stops at the first error.
// Nil options are skipped so callers can build option slices conditionally.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}

// MustApply is Apply for option sets built only from NoError options.
// It panics if any option reports an error.
func MustApply[T any](target T, opts ...Option[T]) {
	if err := Apply(target, opts...); err != nil {
		panic("options: " + err.Error())
	}
}
