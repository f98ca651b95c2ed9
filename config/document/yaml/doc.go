// Package yaml provides a YAML document driver for the config package.
//
// This package uses github.com/goccy/go-yaml to parse the data into an AST.
// The root must be a mapping; each top-level value is decoded on its own with
// yaml.NodeToValue when its field is dispatched, so struct fields use the
// `yaml` tag (falling back to `json`). Repeated top-level keys are passed on
// to the config package, which rejects them as duplicate fields.
//
// Usage:
//
//	doc := yaml.NewDocument(data)
//	err := config.Init(doc)
//
// Limitations:
//   - Only a single YAML document is accepted
//   - Aliases must refer to anchors declared inside the same top-level value
package yaml
