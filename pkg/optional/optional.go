// Package optional provides a JSON field that tells "absent" apart from
// an explicit null, used by partial-update payloads.
package optional

import (
	"bytes"
	"encoding/json"
)

// Field holds a value decoded from JSON. Set reports whether the key was
// present at all; Null reports an explicit null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a field set to v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// HasValue is true when the field carries a non-null value.
func (f Field[T]) HasValue() bool {
	return f.Set && !f.Null
}

// Apply overwrites dst only when a value was supplied.
func (f Field[T]) Apply(dst *T) {
	if f.HasValue() {
		*dst = f.Value
	}
}

// ApplyPtr overwrites a nullable column: unset keeps, null clears, value sets.
func (f Field[T]) ApplyPtr(dst **T) {
	if !f.Set {
		return
	}
	if f.Null {
		*dst = nil
		return
	}
	v := f.Value
	*dst = &v
}

// ApplyOrZero is Apply, except an explicit null resets dst to its zero value.
func (f Field[T]) ApplyOrZero(dst *T) {
	if !f.Set {
		return
	}
	if f.Null {
		var zero T
		*dst = zero
		return
	}
	*dst = f.Value
}
