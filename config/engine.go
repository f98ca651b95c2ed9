package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// Deserialize walks doc once and parses every registered field into a new Store.
//
// Keys are matched against registrations by field name. Unknown keys are
// skipped. A field appearing twice fails with ErrDuplicateField, a parse
// failure with ErrFieldDeserialization and every absent field with
// ErrMissingField. No partial Store is returned on failure.
//
// Deserialize panics if regs holds the same field name twice.
func Deserialize(regs []Registration, doc Document) (*Store, error) {
	lookup := indexRegistrations(regs)

	entries, err := doc.Entries()
	if err != nil {
		return nil, fmt.Errorf("opening document: %w", err)
	}

	store := newStore(len(regs))

	for {
		key, ok, err := entries.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}

		if !ok {
			break
		}

		reg, known := lookup[key]
		if !known {
			slog.Debug("ignoring unknown field", slog.String("field", key))

			err = entries.Skip()
			if err != nil {
				return nil, fmt.Errorf("%w: skipping %q: %w", ErrMalformedDocument, key, err)
			}

			continue
		}

		if _, filled := store.Get(key); filled {
			return nil, newFieldError(key, ErrDuplicateField, nil)
		}

		value, err := parseField(reg, entries)
		if err != nil {
			return nil, newFieldError(key, ErrFieldDeserialization, err)
		}

		store.insert(key, value)

		slog.Debug("field parsed", slog.String("field", key))
	}

	var missing []error

	for _, reg := range regs {
		if _, filled := store.Get(reg.Field); !filled {
			missing = append(missing, newFieldError(reg.Field, ErrMissingField, nil))
		}
	}

	if len(missing) > 0 {
		return nil, errors.Join(missing...)
	}

	return store, nil
}

func indexRegistrations(regs []Registration) map[string]*Registration {
	lookup := make(map[string]*Registration, len(regs))

	for i := range regs {
		reg := &regs[i]

		if _, exists := lookup[reg.Field]; exists {
			panic(fmt.Errorf("field %q: %w", reg.Field, ErrDuplicateFieldName))
		}

		lookup[reg.Field] = reg
	}

	return lookup
}

// parseField runs the parse routine of reg against the current value of entries.
// The value is consumed exactly once even if the routine never decodes it.
func parseField(reg *Registration, entries MapReader) (any, error) {
	dec := &onceDecoder{entries: entries, used: false}

	value, err := reg.Parse(dec)
	if err != nil {
		return nil, err
	}

	if !dec.used {
		err = entries.Skip()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
		}
	}

	return value, nil
}

type onceDecoder struct {
	entries MapReader
	used    bool
}

func (d *onceDecoder) Decode(target any) error {
	if d.used {
		return ErrValueConsumed
	}

	d.used = true

	return d.entries.Decode(target)
}
