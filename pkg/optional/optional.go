// Package optional models PATCH-style request fields that distinguish an
// omitted key from an explicit null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Value is a tri-state field: unset, set to null, or set to a value.
type Value[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a field set to v.
func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, Value: v}
}

// Null returns a field explicitly set to null.
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// UnmarshalJSON is only invoked when the key is present.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON renders an unset or null field as null.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Present reports whether the field carries a non-null value.
func (o Value[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns the value as a pointer, nil when null or unset.
func (o Value[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}

// Apply records the field under column when it was supplied.
func (o Value[T]) Apply(values map[string]any, column string) {
	if !o.Set {
		return
	}
	if o.Null {
		values[column] = nil
		return
	}
	values[column] = o.Value
}
