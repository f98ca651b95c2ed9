// Package tree provides a config.Document over values that are already parsed,
// such as map[string]any trees produced by encoding/json or a YAML library.
//
// Field values are decoded with github.com/mitchellh/mapstructure using the
// `yaml` tag by default. Decode hooks convert strings into time.Duration,
// time.Time (RFC 3339), net.IP, url.URL and comma separated slices.
//
// FromYAML builds such a tree from YAML text with gopkg.in/yaml.v3, for callers
// that want the lenient decoding of mapstructure over the strict YAML driver.
package tree
