package config

import (
	"errors"
	"fmt"
	"reflect"
)

type mysqlConfig struct {
	Host     string
	Database string
	User     string
	Password string
}

type pair struct {
	key   string
	value any
}

// pairsDocument is an in-memory Document yielding its pairs in order.
// A value of type error is returned by Decode instead of being assigned.
type pairsDocument struct {
	pairs   []pair
	openErr error
	nextErr error
	reader  *pairsReader
}

func newPairs(pairs ...pair) *pairsDocument {
	return &pairsDocument{
		pairs:   pairs,
		openErr: nil,
		nextErr: nil,
		reader:  nil,
	}
}

func (d *pairsDocument) Entries() (MapReader, error) {
	if d.openErr != nil {
		return nil, d.openErr
	}

	d.reader = &pairsReader{
		pairs:    d.pairs,
		nextErr:  d.nextErr,
		pos:      -1,
		consumed: make([]int, len(d.pairs)),
		pending:  false,
	}

	return d.reader, nil
}

type pairsReader struct {
	pairs    []pair
	nextErr  error
	pos      int
	consumed []int
	pending  bool
}

var errNothingPending = errors.New("no pending value")

func (r *pairsReader) Next() (string, bool, error) {
	if r.pending {
		return "", false, fmt.Errorf("value of %q was not consumed", r.pairs[r.pos].key)
	}

	r.pos++

	if r.pos >= len(r.pairs) {
		if r.nextErr != nil {
			return "", false, r.nextErr
		}

		return "", false, nil
	}

	r.pending = true

	return r.pairs[r.pos].key, true, nil
}

func (r *pairsReader) Decode(target any) error {
	if !r.pending {
		return errNothingPending
	}

	r.pending = false
	r.consumed[r.pos]++

	value := r.pairs[r.pos].value

	if err, isErr := value.(error); isErr {
		return err
	}

	dst := reflect.ValueOf(target).Elem()
	src := reflect.ValueOf(value)

	if !src.Type().AssignableTo(dst.Type()) {
		return fmt.Errorf("cannot assign %s to %s", src.Type(), dst.Type())
	}

	dst.Set(src)

	return nil
}

func (r *pairsReader) Skip() error {
	if !r.pending {
		return errNothingPending
	}

	r.pending = false
	r.consumed[r.pos]++

	return nil
}

func testRegistrations() []Registration {
	return []Registration{
		{
			Field:  "mysql",
			TypeOf: reflect.TypeFor[mysqlConfig],
			Parse:  parseAs[mysqlConfig]("mysql"),
		},
		{
			Field:  "listen_port",
			TypeOf: reflect.TypeFor[uint16],
			Parse:  parseAs[uint16]("listen_port"),
		},
	}
}

func testMysql() mysqlConfig {
	return mysqlConfig{
		Host:     "localhost:5432",
		Database: "test",
		User:     "root",
		Password: "toor",
	}
}
