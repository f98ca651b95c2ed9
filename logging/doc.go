// Package logging provides structured logging using Go's standard library log/slog.
// It outputs logs in JSON or text format, and its LoggerConfig can be declared
// as the "logging" field of a config schema.
package logging
