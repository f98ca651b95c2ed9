package config

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Store holds parsed field values keyed by field name.
// It is filled by Deserialize and read-only afterwards.
type Store struct {
	values map[string]any
}

func newStore(capacity int) *Store {
	return &Store{
		values: make(map[string]any, capacity),
	}
}

// insert stores value under field and reports whether an entry was replaced.
func (s *Store) insert(field string, value any) bool {
	_, replaced := s.values[field]
	s.values[field] = value

	return replaced
}

// Get returns the erased value stored for field.
func (s *Store) Get(field string) (any, bool) {
	value, ok := s.values[field]

	return value, ok
}

// Len returns the number of stored fields.
func (s *Store) Len() int {
	return len(s.values)
}

// Fields returns the stored field names in sorted order.
func (s *Store) Fields() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// Get returns the value of field as T.
func Get[T any](store *Store, field string) (T, error) {
	var zero T

	value, ok := store.Get(field)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	// A nil interface value stored for an interface-typed field is its zero value.
	if value == nil && reflect.TypeFor[T]().Kind() == reflect.Interface {
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: field %q holds %T, not %T", ErrTypeMismatch, field, value, zero)
	}

	return typed, nil
}

// MustGet is like Get but panics on error.
func MustGet[T any](store *Store, field string) T {
	value, err := Get[T](store, field)
	if err != nil {
		panic(err)
	}

	return value
}
