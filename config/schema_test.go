package config

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listenPort uint16

type tlsConfig struct {
	CertFile string
	KeyFile  string
	changed  bool
}

func (c *tlsConfig) SetDefaults() bool {
	if c.KeyFile != "" {
		return false
	}

	c.KeyFile = "server.key"
	c.changed = true

	return true
}

func (c *tlsConfig) Validate() error {
	if c.CertFile == "" {
		return errors.New("cert file is required")
	}

	return nil
}

func validDocument() *pairsDocument {
	return newPairs(
		pair{key: "mysql", value: testMysql()},
		pair{key: "listen_port", value: listenPort(8080)},
	)
}

func newTestSchema() (*Schema, *Field[mysqlConfig], *Field[listenPort]) {
	schema := NewSchema()

	return schema, DeclareIn[mysqlConfig](schema, "mysql"), DeclareIn[listenPort](schema, "listen_port")
}

func TestSchema_Init(t *testing.T) {
	t.Parallel()

	schema, mysql, port := newTestSchema()

	require.False(t, schema.Initialized())
	require.NoError(t, schema.Init(validDocument()))
	require.True(t, schema.Initialized())

	assert.Equal(t, "mysql", mysql.Name())
	assert.Equal(t, testMysql(), mysql.Configured())
	assert.Equal(t, listenPort(8080), port.Configured())
	assert.Equal(t, listenPort(8080), ConfiguredIn[listenPort](schema))
	assert.Equal(t, testMysql(), ConfiguredIn[mysqlConfig](schema))
}

func TestSchema_Init_MissingField(t *testing.T) {
	t.Parallel()

	schema, mysql, _ := newTestSchema()

	err := schema.Init(newPairs(pair{key: "listen_port", value: listenPort(8080)}))

	require.ErrorIs(t, err, ErrMissingField)
	assert.False(t, schema.Initialized())
	require.PanicsWithError(t, ErrNotInitialized.Error(), func() { mysql.Configured() })
}

func TestSchema_Init_RetryAfterFailure(t *testing.T) {
	t.Parallel()

	schema, _, port := newTestSchema()

	require.Error(t, schema.TryInit(newPairs()))
	require.NoError(t, schema.TryInit(validDocument()))

	assert.Equal(t, listenPort(8080), port.Configured())
}

func TestSchema_Init_Twice(t *testing.T) {
	t.Parallel()

	schema, _, port := newTestSchema()

	require.NoError(t, schema.Init(validDocument()))

	second := newPairs(
		pair{key: "mysql", value: testMysql()},
		pair{key: "listen_port", value: listenPort(9090)},
	)

	require.PanicsWithError(t, ErrAlreadyInitialized.Error(), func() {
		_ = schema.Init(second)
	})

	assert.Equal(t, listenPort(8080), port.Configured(), "published store is unchanged")

	err := schema.TryInit(validDocument())
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestSchema_ConcurrentTryInit(t *testing.T) {
	t.Parallel()

	schema, _, _ := newTestSchema()

	const callers = 16

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	for range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := schema.TryInit(validDocument())

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrAlreadyInitialized):
				conflicts++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicts)
}

func TestSchema_StoreBeforeInit(t *testing.T) {
	t.Parallel()

	schema := NewSchema()

	require.PanicsWithError(t, ErrNotInitialized.Error(), func() { schema.Store() })
}

func TestSchema_DeclareAfterInit(t *testing.T) {
	t.Parallel()

	schema, _, _ := newTestSchema()

	require.NoError(t, schema.Init(validDocument()))

	assert.Panics(t, func() { DeclareIn[string](schema, "late") })
}

func TestDeclareIn_Conflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		declare func(*Schema)
		wantErr error
	}{
		{
			name:    "same type twice",
			declare: func(s *Schema) { DeclareIn[listenPort](s, "admin_port") },
			wantErr: ErrDuplicateFieldType,
		},
		{
			name:    "same name twice",
			declare: func(s *Schema) { DeclareIn[string](s, "mysql") },
			wantErr: ErrDuplicateFieldName,
		},
		{
			name:    "empty name",
			declare: func(s *Schema) { DeclareIn[string](s, "") },
			wantErr: ErrEmptyFieldName,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			schema, _, _ := newTestSchema()

			defer func() {
				recovered := recover()
				require.NotNil(t, recovered)

				err, ok := recovered.(error)
				require.True(t, ok)
				require.ErrorIs(t, err, testInfo.wantErr)
			}()

			testInfo.declare(schema)
		})
	}
}

func TestTryDeclareIn(t *testing.T) {
	t.Parallel()

	schema, _, _ := newTestSchema()

	field, err := TryDeclareIn[string](schema, "name")
	require.NoError(t, err)
	assert.Equal(t, "name", field.Name())

	_, err = TryDeclareIn[listenPort](schema, "admin_port")
	require.ErrorIs(t, err, ErrDuplicateFieldType)

	require.NoError(t, schema.Init(newPairs(
		pair{key: "mysql", value: testMysql()},
		pair{key: "listen_port", value: listenPort(8080)},
		pair{key: "name", value: "api"},
	)))

	_, err = TryDeclareIn[int](schema, "late")
	require.ErrorIs(t, err, ErrRegistrySealed)
}

func TestFieldOf(t *testing.T) {
	t.Parallel()

	schema, _, _ := newTestSchema()

	port, ok := FieldOf[listenPort](schema)
	require.True(t, ok)
	assert.Equal(t, "listen_port", port.Name())

	_, ok = FieldOf[float64](schema)
	assert.False(t, ok)

	require.NoError(t, schema.Init(validDocument()))
	assert.Equal(t, listenPort(8080), port.Configured())
}

func TestConfiguredIn_UnknownType(t *testing.T) {
	t.Parallel()

	schema, _, _ := newTestSchema()

	require.NoError(t, schema.Init(validDocument()))

	assert.Panics(t, func() { ConfiguredIn[float64](schema) })
}

func TestField_DefaultsAndValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   tlsConfig
		want    tlsConfig
		wantErr bool
	}{
		{
			name:  "defaults applied",
			value: tlsConfig{CertFile: "server.crt"},
			want:  tlsConfig{CertFile: "server.crt", KeyFile: "server.key", changed: true},
		},
		{
			name:  "defaults not needed",
			value: tlsConfig{CertFile: "server.crt", KeyFile: "custom.key"},
			want:  tlsConfig{CertFile: "server.crt", KeyFile: "custom.key"},
		},
		{
			name:    "validation fails",
			value:   tlsConfig{},
			wantErr: true,
		},
	}

	for _, testInfo := range tests {
		t.Run(testInfo.name, func(t *testing.T) {
			t.Parallel()

			schema := NewSchema()
			field := DeclareIn[tlsConfig](schema, "tls")

			err := schema.Init(newPairs(pair{key: "tls", value: testInfo.value}))
			if testInfo.wantErr {
				require.ErrorIs(t, err, ErrFieldDeserialization)
				assert.Contains(t, err.Error(), "cert file is required")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, testInfo.want, field.Configured())
		})
	}
}

func TestCell(t *testing.T) {
	t.Parallel()

	var cell Cell

	assert.Equal(t, StateEmpty, cell.State())
	assert.Equal(t, "empty", cell.State().String())

	_, ok := cell.Get()
	assert.False(t, ok)

	first := newStore(0)

	require.NoError(t, cell.Set(first))
	require.ErrorIs(t, cell.Set(newStore(0)), ErrAlreadyInitialized)

	got, ok := cell.Get()
	require.True(t, ok)
	assert.Same(t, first, got)
	assert.Equal(t, "populated", cell.State().String())
}

func TestCell_ConcurrentSet(t *testing.T) {
	t.Parallel()

	var (
		cell Cell
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins []*Store
	)

	for range 32 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			store := newStore(0)

			if cell.Set(store) == nil {
				mu.Lock()
				wins = append(wins, store)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	require.Len(t, wins, 1)

	got, ok := cell.Get()
	require.True(t, ok)
	assert.Same(t, wins[0], got)
}
