package json

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/0xalexb/hjarta/config"

	gojson "github.com/goccy/go-json"
)

// ErrTrailingData is returned when data follows the root object.
var ErrTrailingData = errors.New("trailing data after root object")

// ErrSyntax is returned when the input is not valid JSON.
var ErrSyntax = errors.New("invalid JSON syntax")

// ErrDocumentConsumed is returned when Entries is called twice on the same Document.
var ErrDocumentConsumed = errors.New("document already consumed")

// Document implements config.Document over a JSON stream.
// Tokens are pulled from a goccy/go-json Decoder; values are decoded in place
// without buffering the whole input.
type Document struct {
	dec      *gojson.Decoder
	data     []byte
	consumed bool
}

// NewDocument creates a JSON document reading from r.
func NewDocument(r io.Reader) *Document {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()

	return &Document{
		dec:      dec,
		data:     nil,
		consumed: false,
	}
}

// NewBytes creates a JSON document from data.
// Unlike NewDocument, the whole input is validated before the first key is read.
func NewBytes(data []byte) *Document {
	doc := NewDocument(bytes.NewReader(data))
	doc.data = data

	return doc
}

// DisallowUnknownFields makes field values fail to decode when they contain
// keys their Go type does not declare. Unknown top-level keys stay tolerated.
func (d *Document) DisallowUnknownFields() *Document {
	d.dec.DisallowUnknownFields()

	return d
}

// Entries reads the opening brace of the root object.
func (d *Document) Entries() (config.MapReader, error) { //nolint:ireturn // implements config.Document
	if d.consumed {
		return nil, ErrDocumentConsumed
	}

	d.consumed = true

	if len(bytes.TrimSpace(d.data)) > 0 && !gojson.Valid(d.data) {
		return nil, fmt.Errorf("%w: %w", config.ErrMalformedDocument, ErrSyntax)
	}

	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", config.ErrUnexpectedDocumentShape)
		}

		return nil, fmt.Errorf("reading root: %w", err)
	}

	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: got %v", config.ErrUnexpectedDocumentShape, tok)
	}

	return &reader{
		dec:     d.dec,
		entries: 0,
		pending: false,
		done:    false,
	}, nil
}

type reader struct {
	dec     *gojson.Decoder
	entries int
	pending bool
	done    bool
}

func (r *reader) Next() (string, bool, error) {
	if r.done {
		return "", false, nil
	}

	if r.pending {
		err := r.Skip()
		if err != nil {
			return "", false, err
		}
	}

	if !r.dec.More() {
		return "", false, r.finish()
	}

	// Token skips separators without checking them, so they are checked here.
	sep, _ := r.peek()

	switch {
	case r.entries > 0 && sep != ',':
		return "", false, fmt.Errorf("%w: missing ',' before entry %d", ErrSyntax, r.entries+1)
	case r.entries == 0 && sep == ',':
		return "", false, fmt.Errorf("%w: unexpected ',' before first entry", ErrSyntax)
	}

	tok, err := r.dec.Token()
	if err != nil {
		return "", false, fmt.Errorf("reading key: %w", err)
	}

	key, ok := tok.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: expected object key, got %v", ErrSyntax, tok)
	}

	colon, ok := r.peek()
	if !ok || colon != ':' {
		return "", false, fmt.Errorf("%w: missing ':' after key %q", ErrSyntax, key)
	}

	r.entries++
	r.pending = true

	return key, true, nil
}

// peek returns the next non-space byte without consuming it.
// It reports false at the end of the current object or input.
func (r *reader) peek() (byte, bool) {
	if !r.dec.More() {
		return 0, false
	}

	var next [1]byte

	n, _ := r.dec.Buffered().Read(next[:])

	return next[0], n == 1
}

func (r *reader) Decode(target any) error {
	if !r.pending {
		return config.ErrValueConsumed
	}

	r.pending = false

	err := r.dec.Decode(target)
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

	var raw gojson.RawMessage

	err := r.dec.Decode(&raw)
	if err != nil {
		return fmt.Errorf("skipping value: %w", err)
	}

	return nil
}

// finish consumes the closing brace and checks nothing follows it.
func (r *reader) finish() error {
	r.done = true

	tok, err := r.dec.Token()
	if err != nil {
		return fmt.Errorf("reading end of root: %w", err)
	}

	if delim, ok := tok.(gojson.Delim); !ok || delim != '}' {
		return fmt.Errorf("expected end of root object, got %v", tok)
	}

	_, err = r.dec.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("reading after root: %w", err)
	}

	return ErrTrailingData
}
