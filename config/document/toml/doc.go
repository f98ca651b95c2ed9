// Package toml provides a TOML document driver for the config package.
//
// Parsing uses github.com/BurntSushi/toml. Every top-level key becomes one
// entry whose value stays an undecoded toml.Primitive until its field is
// dispatched, so struct fields use the `toml` tag. A TOML document is always
// a table, so its shape is never rejected.
//
// TOML forbids redefining a key, so duplicates fail while parsing. A redefined
// top-level key is reported as a *config.FieldError of kind config.ErrDuplicateField.
package toml
