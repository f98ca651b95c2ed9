// Package config lets independent packages each declare one field of a shared
// configuration schema and read it back, typed and validated, after a single
// initialization pass.
//
// The package has four parts:
//   - Registry: collects field declarations and rejects duplicate names or types
//   - Deserialize: walks a Document once and dispatches each key to its field
//   - Store: holds the parsed values keyed by field name
//   - Cell and Schema: publish the Store exactly once and serve reads afterwards
//
// # Declaring fields
//
// A package declares its field at package level. Declare panics on a duplicate
// name or type, so conflicts surface when the program starts:
//
//	type MysqlConfig struct {
//	    Host     string `yaml:"host"`
//	    Database string `yaml:"database"`
//	}
//
//	var mysql = config.Declare[MysqlConfig]("mysql")
//
// # Initializing
//
// Exactly one call to Init consumes the document. Every declared field is
// required; unknown top-level keys are ignored:
//
//	doc, err := loader.FromFile("config.yaml")
//	if err != nil {
//	    return err
//	}
//
//	err = config.Init(doc)
//
// After Init succeeded, mysql.Configured() returns the parsed MysqlConfig.
// Reading before Init, or calling Init again after it succeeded, panics.
//
// # Documents
//
// Document drivers live in config/document: yaml (goccy/go-yaml), json
// (streaming goccy/go-json), toml (BurntSushi/toml) and tree (already parsed
// maps via mapstructure). A field value implementing Defaulter or Validator
// has defaults applied and is validated right after it is decoded.
package config
