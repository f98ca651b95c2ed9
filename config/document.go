package config

// ValueDecoder decodes a single document value into target.
// Target must be a non-nil pointer.
type ValueDecoder interface {
	Decode(target any) error
}

// MapReader walks the top-level entries of a document exactly once.
//
// After Next reports a key, the caller must consume its value with either
// Decode or Skip before calling Next again. Values cannot be revisited.
type MapReader interface {
	// Next advances to the next key. ok is false once the map is exhausted.
	Next() (key string, ok bool, err error)
	// Decode decodes the value of the current key into target.
	Decode(target any) error
	// Skip discards the value of the current key.
	Skip() error
}

// Document is a structured input whose root is a key-value map.
//
// Entries opens the root map. Implementations return an error wrapping
// ErrUnexpectedDocumentShape when the root is not a map. A Document may
// only be walked once.
type Document interface {
	Entries() (MapReader, error)
}

// Validator defines an interface for validating configuration values after parsing.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration values.
type Defaulter interface {
	SetDefaults() (changed bool)
}
