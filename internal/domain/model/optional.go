package model

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field: absent, null, or a value.
// Use it with the omitzero tag option so absent fields are not emitted.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// IsZero reports whether the field was absent.
func (o Optional[T]) IsZero() bool { return !o.set }

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool { return o.set && o.null }

// Get returns the value and true when the field holds a non-null value.
func (o Optional[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked for keys
// present in the input, which is what marks the field as set.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var zero T
	o.set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.value = zero
		o.null = true
		return nil
	}
	o.null = false
	o.value = zero
	return json.Unmarshal(data, &o.value)
}
