package tree

import (
	"errors"
	"fmt"
	"maps"
	"net"
	"net/url"
	"reflect"
	"slices"
	"time"

	"github.com/0xalexb/hjarta/config"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultTagName is the struct tag used to map keys to fields.
const DefaultTagName = "yaml"

// ErrDocumentConsumed is returned when Entries is called twice on the same Document.
var ErrDocumentConsumed = errors.New("document already consumed")

// Document implements config.Document for an already parsed value tree,
// such as the result of unmarshaling JSON or YAML into any.
type Document struct {
	root     any
	tagName  string
	weak     bool
	consumed bool
}

// Option configures a Document.
type Option func(*Document)

// WithTagName sets the struct tag used to map keys to fields.
func WithTagName(tag string) Option {
	return func(d *Document) {
		d.tagName = tag
	}
}

// WithWeaklyTypedInput allows lenient conversions such as "8080" to int.
func WithWeaklyTypedInput() Option {
	return func(d *Document) {
		d.weak = true
	}
}

// NewDocument creates a document over root, which must be a map with string keys.
func NewDocument(root any, opts ...Option) *Document {
	doc := &Document{
		root:     root,
		tagName:  DefaultTagName,
		weak:     false,
		consumed: false,
	}

	for _, apply := range opts {
		apply(doc)
	}

	return doc
}

// FromYAML unmarshals data with gopkg.in/yaml.v3 and returns the resulting tree as a Document.
// Only the first YAML document in data is read.
func FromYAML(data []byte, opts ...Option) (*Document, error) {
	var root any

	err := yaml.Unmarshal(data, &root)
	if err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return NewDocument(root, opts...), nil
}

// Entries opens the root map. Keys are walked in sorted order.
func (d *Document) Entries() (config.MapReader, error) { //nolint:ireturn // implements config.Document
	if d.consumed {
		return nil, ErrDocumentConsumed
	}

	d.consumed = true

	root, err := toStringMap(d.root)
	if err != nil {
		return nil, err
	}

	return &reader{
		doc:     d,
		root:    root,
		keys:    slices.Sorted(maps.Keys(root)),
		pos:     -1,
		pending: false,
	}, nil
}

func toStringMap(root any) (map[string]any, error) {
	switch typed := root.(type) {
	case map[string]any:
		return typed, nil
	case map[any]any:
		result := make(map[string]any, len(typed))

		for key, value := range typed {
			name, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: key %v is %T, not string", config.ErrUnexpectedDocumentShape, key, key)
			}

			result[name] = value
		}

		return result, nil
	default:
		return nil, fmt.Errorf("%w: got %T", config.ErrUnexpectedDocumentShape, root)
	}
}

type reader struct {
	doc     *Document
	root    map[string]any
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

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{ //nolint:exhaustruct // only relevant fields needed
		Result:           target,
		TagName:          r.doc.tagName,
		WeaklyTypedInput: r.doc.weak,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	err = decoder.Decode(r.root[r.keys[r.pos]])
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

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToURLHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

func stringToNetIPHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str, _ := data.(string)

		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %q", str)
		}

		return ip, nil
	}
}

func stringToURLHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		if to != reflect.TypeOf(url.URL{}) && to != reflect.TypeOf(&url.URL{}) {
			return data, nil
		}

		str, _ := data.(string)

		parsed, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL %q: %w", str, err)
		}

		if to.Kind() == reflect.Struct {
			return *parsed, nil
		}

		return parsed, nil
	}
}
