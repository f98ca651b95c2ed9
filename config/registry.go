package config

import (
	"fmt"
	"reflect"
	"sync"
)

// ParseFunc decodes one document value into a field's concrete type.
// The returned value is stored as-is and must always have the same dynamic type.
type ParseFunc func(dec ValueDecoder) (any, error)

// Registration declares a single schema field.
type Registration struct {
	// Field is the top-level document key of the field.
	Field string
	// TypeOf reports the concrete type produced by Parse.
	TypeOf func() reflect.Type
	// Parse decodes the field value.
	Parse ParseFunc
}

// Registry collects registrations before a document is deserialized.
// It enforces that field names and field types are each unique.
type Registry struct {
	mu     sync.RWMutex
	regs   []Registration
	byName map[string]int
	byType map[reflect.Type]string
	sealed bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:     sync.RWMutex{},
		regs:   nil,
		byName: make(map[string]int),
		byType: make(map[reflect.Type]string),
		sealed: false,
	}
}

// Add appends a registration after checking it against the ones already present.
func (r *Registry) Add(reg Registration) error {
	if reg.Field == "" {
		return ErrEmptyFieldName
	}

	if reg.Parse == nil || reg.TypeOf == nil {
		return fmt.Errorf("field %q: %w", reg.Field, ErrInvalidRegistration)
	}

	typ := reg.TypeOf()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return fmt.Errorf("field %q: %w", reg.Field, ErrRegistrySealed)
	}

	if _, exists := r.byName[reg.Field]; exists {
		return fmt.Errorf("field %q: %w", reg.Field, ErrDuplicateFieldName)
	}

	if owner, exists := r.byType[typ]; exists {
		return fmt.Errorf("field %q: type %s already used by field %q: %w", reg.Field, typ, owner, ErrDuplicateFieldType)
	}

	r.byName[reg.Field] = len(r.regs)
	r.byType[typ] = reg.Field
	r.regs = append(r.regs, reg)

	return nil
}

// Registrations returns the registrations in declaration order.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]Registration, len(r.regs))
	copy(regs, r.regs)

	return regs
}

// FieldFor returns the name of the field declared with type typ.
func (r *Registry) FieldFor(typ reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byType[typ]

	return name, ok
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.regs)
}

// seal rejects further additions and returns the final registrations.
func (r *Registry) seal() []Registration {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()

	return r.Registrations()
}
