package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/teogen/compiler/gen"
)

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"admin", "dart", "go", "graphql", "kotlin", "node", "python", "rust", "swift", "ts"}, Names())

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			tgt, err := New(name)
			require.NoError(t, err)
			assert.Equal(t, name, tgt.Name())
		})
	}

	_, err := New("cobol")
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
	assert.Contains(t, err.Error(), "available")

	assert.Panics(t, func() { MustNew("cobol") })
	assert.NotPanics(t, func() { MustNew("ts") })
}

func TestRegistry_Modes(t *testing.T) {
	assert.Equal(t, gen.Entity, MustNew("node").Mode())
	assert.Equal(t, gen.Entity, MustNew("rust").Mode())
	assert.Equal(t, gen.Client, MustNew("dart").Mode())
	assert.Equal(t, gen.Client, MustNew("admin").Mode())
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("go", func() gen.Target { return NewGo("api") })
	tgt, err := r.Get("go")
	require.NoError(t, err)
	assert.Equal(t, "api", tgt.(*Go).pkg)

	r.Register("typescript", func() gen.Target { return NewTypeScript() })
	assert.Contains(t, r.List(), "typescript")
	assert.NotContains(t, Names(), "typescript")
}
