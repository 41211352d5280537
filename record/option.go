package record

// Option is the optional-wrapper type recognized by the generator. A field
// declared as Option[T] is classified as optional and stored unwrapped: the
// entry's presence in the backing map encodes Some, its absence None.
//
// Option also appears in generated companion types, where each field is held
// as an Option and drained once through its Take accessor.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, some: true}
}

// None returns the empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and whether one is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.some
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.some
}

// MustGet returns the held value and panics if the Option is empty.
func (o Option[T]) MustGet() T {
	if !o.some {
		panic("record: MustGet on empty Option")
	}

	return o.value
}

// Take returns the held value and whether one was present, leaving the
// Option empty.
func (o *Option[T]) Take() (T, bool) {
	v, ok := o.value, o.some

	var zero T
	o.value, o.some = zero, false

	return v, ok
}
