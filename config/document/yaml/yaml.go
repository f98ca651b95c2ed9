package yaml

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta/config"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrMultipleDocuments is returned when the input holds more than one YAML document.
var ErrMultipleDocuments = errors.New("multiple YAML documents")

// ErrDocumentConsumed is returned when Entries is called twice on the same Document.
var ErrDocumentConsumed = errors.New("document already consumed")

// Document implements config.Document for YAML data.
// It uses goccy/go-yaml to parse the data into an AST and decodes each
// top-level value on its own with yaml.NodeToValue.
type Document struct {
	data     []byte
	opts     []yaml.DecodeOption
	consumed bool
}

// NewDocument creates a YAML document from data.
// The decode options apply to every field value.
func NewDocument(data []byte, opts ...yaml.DecodeOption) *Document {
	return &Document{
		data:     data,
		opts:     opts,
		consumed: false,
	}
}

// Entries parses the data and opens its root mapping.
func (d *Document) Entries() (config.MapReader, error) { //nolint:ireturn // implements config.Document
	if d.consumed {
		return nil, ErrDocumentConsumed
	}

	d.consumed = true

	if len(d.data) == 0 {
		return nil, ErrEmptyData
	}

	// Repeated top-level keys reach the reader so they fail as duplicate fields.
	// Nested values are still checked for duplicates by yaml.NodeToValue.
	file, err := parser.ParseBytes(d.data, 0, parser.AllowDuplicateMapKey())
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	if len(file.Docs) > 1 {
		return nil, fmt.Errorf("%w: got %d", ErrMultipleDocuments, len(file.Docs))
	}

	if len(file.Docs) == 0 || file.Docs[0] == nil {
		return nil, fmt.Errorf("%w: empty document", config.ErrUnexpectedDocumentShape)
	}

	values, err := rootValues(file.Docs[0].Body)
	if err != nil {
		return nil, err
	}

	return &reader{
		values:  values,
		opts:    d.opts,
		pos:     -1,
		pending: false,
	}, nil
}

func rootValues(body ast.Node) ([]*ast.MappingValueNode, error) {
	switch node := body.(type) {
	case *ast.MappingNode:
		return node.Values, nil
	case *ast.MappingValueNode:
		return []*ast.MappingValueNode{node}, nil
	case nil:
		return nil, fmt.Errorf("%w: empty document", config.ErrUnexpectedDocumentShape)
	default:
		return nil, fmt.Errorf("%w: got %s", config.ErrUnexpectedDocumentShape, node.Type())
	}
}

type reader struct {
	values  []*ast.MappingValueNode
	opts    []yaml.DecodeOption
	pos     int
	pending bool
}

func (r *reader) Next() (string, bool, error) {
	r.pos++
	r.pending = false

	if r.pos >= len(r.values) {
		return "", false, nil
	}

	r.pending = true

	return keyString(r.values[r.pos].Key), true, nil
}

func (r *reader) Decode(target any) error {
	if !r.pending {
		return config.ErrValueConsumed
	}

	r.pending = false

	err := yaml.NodeToValue(r.values[r.pos].Value, target, r.opts...)
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

// keyString returns the scalar text of a mapping key.
func keyString(key ast.Node) string {
	switch node := key.(type) {
	case *ast.StringNode:
		return node.Value
	case *ast.MappingKeyNode:
		return keyString(node.Value)
	default:
		return node.GetToken().Value
	}
}
