package toml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/0xalexb/hjarta/config"

	"github.com/BurntSushi/toml"
)

// ErrDocumentConsumed is returned when Entries is called twice on the same Document.
var ErrDocumentConsumed = errors.New("document already consumed")

// Document implements config.Document for TOML data.
// The input is split into one undecoded toml.Primitive per top-level key,
// and each primitive is decoded when its field is dispatched.
type Document struct {
	r        io.Reader
	consumed bool
}

// NewDocument creates a TOML document reading from r.
func NewDocument(r io.Reader) *Document {
	return &Document{
		r:        r,
		consumed: false,
	}
}

// NewBytes creates a TOML document from data.
func NewBytes(data []byte) *Document {
	return NewDocument(bytes.NewReader(data))
}

// Entries parses the input and lists its top-level keys in document order.
// TOML rejects duplicate keys while parsing, so a redefined top-level key fails
// here with a *config.FieldError of kind config.ErrDuplicateField.
func (d *Document) Entries() (config.MapReader, error) { //nolint:ireturn // implements config.Document
	if d.consumed {
		return nil, ErrDocumentConsumed
	}

	d.consumed = true

	var root map[string]toml.Primitive

	meta, err := toml.NewDecoder(d.r).Decode(&root)
	if err != nil {
		field, duplicate := duplicateField(err)
		if duplicate {
			return nil, &config.FieldError{Field: field, Kind: config.ErrDuplicateField, Cause: err}
		}

		return nil, fmt.Errorf("parsing error: %w", err)
	}

	return &reader{
		meta:    meta,
		root:    root,
		keys:    topLevelKeys(meta.Keys(), root),
		pos:     -1,
		pending: false,
	}, nil
}

// duplicateField reports whether err is the parser rejecting a redefined
// top-level key, and returns that key.
func duplicateField(err error) (string, bool) {
	var parseErr toml.ParseError
	if !errors.As(err, &parseErr) {
		return "", false
	}

	key, found := strings.CutPrefix(parseErr.Message, "Key '")
	if !found {
		return "", false
	}

	key, found = strings.CutSuffix(key, "' has already been defined.")
	if !found || strings.Contains(key, ".") {
		return "", false
	}

	return key, true
}

// topLevelKeys returns the first segment of every key in document order.
// Tables only defined through sub-tables are appended in sorted order.
func topLevelKeys(ordered []toml.Key, root map[string]toml.Primitive) []string {
	seen := make(map[string]bool, len(root))
	keys := make([]string, 0, len(root))

	for _, key := range ordered {
		if len(key) == 0 || seen[key[0]] {
			continue
		}

		if _, ok := root[key[0]]; !ok {
			continue
		}

		seen[key[0]] = true
		keys = append(keys, key[0])
	}

	var rest []string

	for key := range root {
		if !seen[key] {
			rest = append(rest, key)
		}
	}

	slices.Sort(rest)

	return append(keys, rest...)
}

type reader struct {
	meta    toml.MetaData
	root    map[string]toml.Primitive
	keys    []string
	pos     int
	pending bool
}

func (r *reader) Next() (string, bool, error) {
	r.pos++
	r.pending = false

	if r.pos >= len(r.keys) {
		return "", false, nil
	}

	r.pending = true

	return r.keys[r.pos], true, nil
}

func (r *reader) Decode(target any) error {
	if !r.pending {
		return config.ErrValueConsumed
	}

	r.pending = false

	err := r.meta.PrimitiveDecode(r.root[r.keys[r.pos]], target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

func (r *reader) Skip() error {
	if !r.pending {
		return config.ErrValueConsumed
	}

	r.pending = false

	return nil
}
