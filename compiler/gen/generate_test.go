package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	c := MustNewConfig(WithTarget(&fakeTarget{name: "ts", mode: Client}, t.TempDir()))

	_, err := NewGenerator(nil, c)
	require.Error(t, err)
	assert.True(t, IsSchemaError(err))

	_, err = NewGenerator(testSchema(), nil)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	_, err = NewGenerator(testSchema(), MustNewConfig())
	require.Error(t, err)
	assert.True(t, IsConfigError(err))

	g, err := NewGenerator(testSchema(), c)
	require.NoError(t, err)
	require.NotNil(t, g)
}

func TestGenerate(t *testing.T) {
	client := t.TempDir()
	entity := t.TempDir()
	ledger := newMemLedger()

	report, err := Generate(context.Background(), testSchema(),
		WithTarget(&fakeTarget{name: "ts", mode: Client}, client),
		WithTarget(&fakeTarget{name: "rust", mode: Entity}, entity),
		WithHeader("// generated"),
		WithWorkers(2),
		WithLedger(ledger),
	)
	require.NoError(t, err)
	assert.NotEmpty(t, report.Run)
	assert.ElementsMatch(t, []string{"ts", "rust"}, report.Targets)
	assert.Equal(t, 6, report.Metrics.FilesWritten)
	assert.Equal(t, 6, ledger.records)

	got, err := os.ReadFile(filepath.Join(client, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "// generated\nAddress\nPoint\nUser\nUserCreateInput\nUserSummary\n", string(got))

	got, err = os.ReadFile(filepath.Join(entity, "shop", "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "// generated\n", string(got))

	t.Run("second run is unchanged", func(t *testing.T) {
		report, err := Generate(context.Background(), testSchema(),
			WithTarget(&fakeTarget{name: "ts", mode: Client}, client),
			WithHeader("// generated"),
			WithLedger(ledger),
		)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Metrics.FilesWritten)
		assert.Equal(t, 3, report.Metrics.FilesUnchanged)
	})
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("render error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Generate(context.Background(), testSchema(),
			WithTarget(&fakeTarget{name: "ts", mode: Client, err: boom}, t.TempDir()),
		)
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
		assert.ErrorIs(t, err, boom)
		assert.ErrorIs(t, err, ErrGenerationFailed)
	})

	t.Run("outline error", func(t *testing.T) {
		ns := testSchema()
		ns.Models[0].BuiltinHandlers = []string{"truncate"}
		_, err := Generate(context.Background(), ns,
			WithTarget(&fakeTarget{name: "ts", mode: Client}, t.TempDir()),
		)
		require.Error(t, err)
		assert.True(t, IsGenerationError(err))
		assert.True(t, IsSchemaError(err))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Generate(ctx, testSchema(),
			WithTarget(&fakeTarget{name: "ts", mode: Client}, t.TempDir()),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
