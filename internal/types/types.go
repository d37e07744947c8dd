// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, storage, and utils can all import types without depending
// on each other.
package types

import (
	"bytes"
	"encoding/json"
)

// Student is the stored form of a student record. Every stored record has
// all three fields populated.
//
// The json tags fix the wire names and the field order of encoded records.
type Student struct {
	Name string `json:"name"`
	Age  int64  `json:"age"`
	Year string `json:"year"`
}

// Optional is a tri-state JSON field: absent, present as null, or present
// with a value. encoding/json only calls UnmarshalJSON for keys that appear
// in the document, so the zero Optional means "absent".
type Optional[T any] struct {
	Value   T
	Present bool
	Null    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Present: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// IsSet reports whether the field carries a usable value.
func (o Optional[T]) IsSet() bool {
	return o.Present && !o.Null
}

// Ptr returns a pointer to the value, or nil when the field is absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.IsSet() {
		return nil
	}
	v := o.Value
	return &v
}

// StudentUpdate is the input form of a partial update. Absent and null
// fields leave the stored value unchanged.
type StudentUpdate struct {
	Name Optional[string] `json:"name"`
	Age  Optional[int64]  `json:"age"`
	Year Optional[string] `json:"year"`
}

// Apply returns s with every set field of u written over it.
func (u StudentUpdate) Apply(s Student) Student {
	if u.Name.IsSet() {
		s.Name = u.Name.Value
	}
	if u.Age.IsSet() {
		s.Age = u.Age.Value
	}
	if u.Year.IsSet() {
		s.Year = u.Year.Value
	}
	return s
}
