package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0xalexb/hjarta/config"
	jsondoc "github.com/0xalexb/hjarta/config/document/json"
	tomldoc "github.com/0xalexb/hjarta/config/document/toml"
	yamldoc "github.com/0xalexb/hjarta/config/document/yaml"

	"github.com/joho/godotenv"
)

// ErrPathIsDirectory is returned when the path provided to FromFile points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrUnknownFormat is returned when the document format cannot be determined or is not supported.
var ErrUnknownFormat = errors.New("unknown document format")

// Format names a document encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Options holds settings for building a document.
type Options struct {
	Format    Format
	EnvFiles  []string
	ExpandEnv bool
}

// Option defines a function type for applying loader options.
type Option func(*Options)

// WithFormat forces the document format instead of deriving it from the file extension.
func WithFormat(format Format) Option {
	return func(opts *Options) {
		opts.Format = format
	}
}

// WithEnvExpansion expands environment variable references in the raw data.
func WithEnvExpansion() Option {
	return func(opts *Options) {
		opts.ExpandEnv = true
	}
}

// WithDotEnv reads variables from the given .env files and expands references in the raw data.
func WithDotEnv(files ...string) Option {
	return func(opts *Options) {
		opts.EnvFiles = append(opts.EnvFiles, files...)
		opts.ExpandEnv = true
	}
}

// FormatOf returns the format matching the extension of fpath.
func FormatOf(fpath string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fpath)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, fpath)
	}
}

// NewDocument returns a constructor function that reads fpath into a config.Document.
// This pattern is Fx-friendly, allowing the DI container to control when the file is read.
func NewDocument(fpath string, opts ...Option) func() (config.Document, error) {
	return func() (config.Document, error) {
		return FromFile(fpath, opts...)
	}
}

// FromFile reads fpath and returns it as a config.Document.
func FromFile(fpath string, opts ...Option) (config.Document, error) { //nolint:ireturn // format is chosen at runtime
	options := apply(opts)

	cleanPath := filepath.Clean(fpath)

	if options.Format == "" {
		format, err := FormatOf(cleanPath)
		if err != nil {
			return nil, err
		}

		options.Format = format
	}

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if stat.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := os.ReadFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return build(data, options)
}

// FromBytes returns data as a config.Document of the given format.
func FromBytes(data []byte, format Format, opts ...Option) (config.Document, error) { //nolint:ireturn // format is chosen at runtime
	options := apply(opts)
	options.Format = format

	return build(data, options)
}

func apply(opts []Option) Options {
	var options Options

	for _, opt := range opts {
		opt(&options)
	}

	return options
}

func build(data []byte, options Options) (config.Document, error) { //nolint:ireturn // format is chosen at runtime
	if options.ExpandEnv {
		expanded, err := expandEnv(data, options.EnvFiles)
		if err != nil {
			return nil, err
		}

		data = expanded
	}

	switch options.Format {
	case FormatYAML:
		return yamldoc.NewDocument(data), nil
	case FormatJSON:
		return jsondoc.NewBytes(data), nil
	case FormatTOML:
		return tomldoc.NewBytes(data), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, options.Format)
	}
}

// expandEnv replaces variable references using the process environment first,
// then the variables read from envFiles.
func expandEnv(data []byte, envFiles []string) ([]byte, error) {
	fileVars := map[string]string{}

	if len(envFiles) > 0 {
		vars, err := godotenv.Read(envFiles...)
		if err != nil {
			return nil, fmt.Errorf("reading env files: %w", err)
		}

		fileVars = vars
	}

	expanded := os.Expand(string(data), func(name string) string {
		value, ok := os.LookupEnv(name)
		if ok {
			return value
		}

		return fileVars[name]
	})

	return []byte(expanded), nil
}
