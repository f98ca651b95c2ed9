package config

import (
	"errors"
	"fmt"
)

// Registry contract violations. Declare and DeclareIn panic with these.
var (
	// ErrEmptyFieldName is returned when a registration has no field name.
	ErrEmptyFieldName = errors.New("field name must not be empty")
	// ErrInvalidRegistration is returned when a registration lacks its type or parse function.
	ErrInvalidRegistration = errors.New("registration must have a type and a parse function")
	// ErrDuplicateFieldName is returned when a field name is registered more than once.
	ErrDuplicateFieldName = errors.New("field name registered more than once")
	// ErrDuplicateFieldType is returned when two fields share the same value type.
	ErrDuplicateFieldType = errors.New("field type registered more than once")
	// ErrRegistrySealed is returned when a field is declared after initialization has begun.
	ErrRegistrySealed = errors.New("registry is sealed")
)

// Document errors. These are returned by Deserialize and Init, never panicked.
var (
	// ErrDuplicateField is returned when the document holds the same field twice.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrMissingField is returned when a declared field is absent from the document.
	ErrMissingField = errors.New("missing field")
	// ErrFieldDeserialization is returned when a field's parse routine fails.
	ErrFieldDeserialization = errors.New("field deserialization failed")
	// ErrUnexpectedDocumentShape is returned when the document root is not a map.
	ErrUnexpectedDocumentShape = errors.New("document root is not a map")
	// ErrMalformedDocument is returned when the document cannot be read.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrValueConsumed is returned when a value is decoded more than once.
	ErrValueConsumed = errors.New("value already consumed")
)

// API misuse.
var (
	// ErrNotInitialized is the panic value when configuration is read before Init succeeded.
	ErrNotInitialized = errors.New("configuration is not initialized")
	// ErrAlreadyInitialized is returned when a store has already been published.
	ErrAlreadyInitialized = errors.New("configuration is already initialized")
	// ErrUnknownField is returned when a store has no value for a field.
	ErrUnknownField = errors.New("unknown field")
	// ErrTypeMismatch is returned when a stored value does not have the requested type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// FieldError reports a document error tied to one field.
// Kind is one of ErrDuplicateField, ErrMissingField or ErrFieldDeserialization.
type FieldError struct {
	Field string
	Kind  error
	Cause error
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %q: %v", e.Kind, e.Field, e.Cause)
	}

	return fmt.Sprintf("%s %q", e.Kind, e.Field)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *FieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

func newFieldError(field string, kind, cause error) *FieldError {
	return &FieldError{
		Field: field,
		Kind:  kind,
		Cause: cause,
	}
}
