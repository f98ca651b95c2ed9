package config

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Field is a typed handle to one declared schema field.
// The handle is the only way to read the value with its declared type.
type Field[T any] struct {
	name   string
	schema *Schema
}

// Declare declares field name of type T in the default schema.
//
// It panics if name is empty, if name or T is already declared, or if the
// default schema has started initializing. Declare is meant to be called
// from package-level variable initializers:
//
//	var listenPort = config.Declare[ListenPort]("listen_port")
func Declare[T any](name string) *Field[T] {
	return DeclareIn[T](defaultSchema, name)
}

// DeclareIn declares field name of type T in schema s. It panics like Declare.
func DeclareIn[T any](s *Schema, name string) *Field[T] {
	field, err := TryDeclareIn[T](s, name)
	if err != nil {
		panic(err)
	}

	return field
}

// TryDeclareIn is like DeclareIn but returns the registry error instead of panicking.
func TryDeclareIn[T any](s *Schema, name string) (*Field[T], error) {
	err := s.registry.Add(Registration{
		Field:  name,
		TypeOf: reflect.TypeFor[T],
		Parse:  parseAs[T](name),
	})
	if err != nil {
		return nil, err
	}

	return &Field[T]{
		name:   name,
		schema: s,
	}, nil
}

// FieldOf returns a handle to the field declared with type T in s.
func FieldOf[T any](s *Schema) (*Field[T], bool) {
	name, ok := s.registry.FieldFor(reflect.TypeFor[T]())
	if !ok {
		return nil, false
	}

	return &Field[T]{
		name:   name,
		schema: s,
	}, true
}

// Name returns the document key of the field.
func (f *Field[T]) Name() string {
	return f.name
}

// Configured returns the parsed value. It panics with ErrNotInitialized
// before the schema was initialized.
func (f *Field[T]) Configured() T {
	return MustGet[T](f.schema.Store(), f.name)
}

// Configured returns the value of the field declared with type T in the default schema.
func Configured[T any]() T {
	return ConfiguredIn[T](defaultSchema)
}

// ConfiguredIn returns the value of the field declared with type T in s.
// It panics if no field has type T or if s is not initialized.
func ConfiguredIn[T any](s *Schema) T {
	typ := reflect.TypeFor[T]()

	name, ok := s.registry.FieldFor(typ)
	if !ok {
		panic(fmt.Errorf("%w: no field has type %s", ErrUnknownField, typ))
	}

	return MustGet[T](s.Store(), name)
}

// parseAs builds the parse routine for a field of type T.
// Defaults are applied and the value validated when *T implements Defaulter or Validator.
func parseAs[T any](name string) ParseFunc {
	return func(dec ValueDecoder) (any, error) {
		target := new(T)

		err := dec.Decode(target)
		if err != nil {
			return nil, err
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("field", name))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return *target, nil
	}
}
