package hjarta

import (
	"github.com/0xalexb/hjarta/config"
	"github.com/0xalexb/hjarta/config/loader"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules           []fx.Option
	LogLevel          string
	Schema            *config.Schema
	Document          func() (config.Document, error)
	ConfiguredLogging bool
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithSchema sets the schema initialized at startup.
// If not set, the process-wide config.Default schema is used.
func WithSchema(schema *config.Schema) Option {
	return func(opts *Options) {
		opts.Schema = schema
	}
}

// WithDocument initializes the schema from doc when the application starts.
func WithDocument(doc config.Document) Option {
	return func(opts *Options) {
		opts.Document = func() (config.Document, error) {
			return doc, nil
		}
	}
}

// WithConfigFile initializes the schema from the file at fpath when the application starts.
// The file format follows its extension unless loader.WithFormat is given.
func WithConfigFile(fpath string, loaderOpts ...loader.Option) Option {
	return func(opts *Options) {
		opts.Document = loader.NewDocument(fpath, loaderOpts...)
	}
}

// WithConfiguredLogging declares the "logging" field in the schema and, once
// the configuration is initialized, replaces the default logger with one built
// from that field. Has no effect without a document.
func WithConfiguredLogging() Option {
	return func(opts *Options) {
		opts.ConfiguredLogging = true
	}
}
