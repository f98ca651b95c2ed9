package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// Schema ties a Registry of declared fields to the Cell holding their parsed values.
// Most programs use the process-wide schema returned by Default.
type Schema struct {
	registry *Registry
	cell     Cell
}

// NewSchema creates an empty, uninitialized Schema.
func NewSchema() *Schema {
	return &Schema{
		registry: NewRegistry(),
		cell:     Cell{},
	}
}

//nolint:gochecknoglobals // process-wide schema, populated once at startup.
var defaultSchema = NewSchema()

// Default returns the process-wide Schema used by Declare, Init and Configured.
func Default() *Schema {
	return defaultSchema
}

// Registry returns the registry of declared fields.
func (s *Schema) Registry() *Registry {
	return s.registry
}

// TryInit deserializes doc and publishes the result.
// Once called, no more fields can be declared. It returns ErrAlreadyInitialized
// if a store was published before, and a document error if doc is invalid.
func (s *Schema) TryInit(doc Document) error {
	if s.cell.State() == StatePopulated {
		return ErrAlreadyInitialized
	}

	regs := s.registry.seal()

	store, err := Deserialize(regs, doc)
	if err != nil {
		return fmt.Errorf("deserializing configuration: %w", err)
	}

	err = s.cell.Set(store)
	if err != nil {
		return err
	}

	slog.Info("configuration initialized", slog.Int("fields", store.Len()))

	return nil
}

// Init is like TryInit but panics if the schema was already initialized.
// Document errors are returned.
func (s *Schema) Init(doc Document) error {
	err := s.TryInit(doc)
	if errors.Is(err, ErrAlreadyInitialized) {
		panic(err)
	}

	return err
}

// Initialized reports whether Init has succeeded.
func (s *Schema) Initialized() bool {
	return s.cell.State() == StatePopulated
}

// Store returns the published store. It panics with ErrNotInitialized before Init succeeded.
func (s *Schema) Store() *Store {
	store, ok := s.cell.Get()
	if !ok {
		panic(ErrNotInitialized)
	}

	return store
}

// Init initializes the default schema. See Schema.Init.
func Init(doc Document) error {
	return defaultSchema.Init(doc)
}
