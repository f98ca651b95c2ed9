package config

import (
	"go.uber.org/fx"
)

// Module creates an Fx module that initializes schema s from the Document
// found in the container and supplies the published *Store.
// Declarations into s must be complete before the app is started.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(s *Schema) fx.Option {
	return fx.Module("config",
		fx.Provide(func(doc Document) (*Store, error) {
			err := s.TryInit(doc)
			if err != nil {
				return nil, err
			}

			return s.Store(), nil
		}),
	)
}

// Provide supplies the value of field f to the Fx container.
// The value is resolved after the store of f's schema is published.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Provide[T any](f *Field[T]) fx.Option {
	return fx.Provide(func(_ *Store) T {
		return f.Configured()
	})
}
