package model

import (
	"bytes"
	"encoding/json"
)

// Field is a write value that is absent, explicitly null, or set. Structs
// tag Field members with omitzero so absent fields are not sent.
type Field[T any] struct {
	set   bool
	null  bool
	value T
}

// Set returns a field carrying v.
func Set[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

// Null returns a field that clears the stored value.
func Null[T any]() Field[T] {
	return Field[T]{set: true, null: true}
}

func (f Field[T]) IsZero() bool {
	return !f.set
}

// IsNull reports whether the field explicitly clears the value.
func (f Field[T]) IsNull() bool {
	return f.set && f.null
}

// Get returns the value when the field is set and not null.
func (f Field[T]) Get() (T, bool) {
	if !f.set || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set || f.null {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	*f = Field[T]{set: true}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		return nil
	}
	return json.Unmarshal(data, &f.value)
}
