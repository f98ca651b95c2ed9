package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/0xalexb/hjarta/config"
)

// FieldName is the document key of the logging section.
const FieldName = "logging"

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ErrInvalidLevel is returned when the configured level is not recognized.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidFormat is returned when the configured format is not recognized.
var ErrInvalidFormat = errors.New("invalid log format")

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level     string `json:"level"      toml:"level"      yaml:"level"`
	Format    string `json:"format"     toml:"format"     yaml:"format"`
	AddSource bool   `json:"add_source" toml:"add_source" yaml:"add_source"`
}

// SetDefaults fills an empty level and format.
func (c *LoggerConfig) SetDefaults() bool {
	changed := false

	if c.Level == "" {
		c.Level = "info"
		changed = true
	}

	if c.Format == "" {
		c.Format = FormatJSON
		changed = true
	}

	return changed
}

// Validate rejects unknown levels and formats.
func (c *LoggerConfig) Validate() error {
	_, known := levels[strings.ToUpper(c.Level)]
	if !known {
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Level)
	}

	switch strings.ToLower(c.Format) {
	case FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
}

// Declare declares the logging section in schema s.
func Declare(s *config.Schema) *config.Field[LoggerConfig] {
	return config.DeclareIn[LoggerConfig](s, FieldName)
}

// Ensure returns the logging field of schema s, declaring it under FieldName
// when no field of type LoggerConfig exists yet. Unlike Declare, it can be
// called any number of times and reports registry errors instead of panicking.
func Ensure(s *config.Schema) (*config.Field[LoggerConfig], error) {
	field, ok := config.FieldOf[LoggerConfig](s)
	if ok {
		return field, nil
	}

	field, err := config.TryDeclareIn[LoggerConfig](s, FieldName)
	if err != nil {
		existing, ok := config.FieldOf[LoggerConfig](s)
		if ok {
			return existing, nil
		}

		return nil, fmt.Errorf("declaring %q field: %w", FieldName, err)
	}

	return field, nil
}

// NewLogger creates a new slog.Logger writing to w.
// The level is parsed from the config; defaults to INFO if invalid or empty.
// The format selects the JSON or text handler; anything but "text" means JSON.
func NewLogger(cfg LoggerConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		AddSource:   cfg.AddSource,
		Level:       parseLevel(cfg.Level),
		ReplaceAttr: nil,
	}

	if strings.ToLower(cfg.Format) == FormatText {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

//nolint:gochecknoglobals // read-only lookup table.
var levels = map[string]slog.Level{
	"DEBUG":   slog.LevelDebug,
	"INFO":    slog.LevelInfo,
	"WARN":    slog.LevelWarn,
	"WARNING": slog.LevelWarn,
	"ERROR":   slog.LevelError,
}

func parseLevel(level string) slog.Level {
	parsed, ok := levels[strings.ToUpper(level)]
	if !ok {
		return slog.LevelInfo
	}

	return parsed
}
