package gen

import (
	"context"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/teogen/schema"
)

// fakeTarget renders one file per outline node.
type fakeTarget struct {
	name string
	mode Mode
	err  error
}

func (f *fakeTarget) Name() string { return f.name }
func (f *fakeTarget) Mode() Mode   { return f.mode }

func (f *fakeTarget) Lookup(t *schema.Type, current []string) (string, error) {
	return NewLookup(testSyntax(), f.mode, current).Render(t)
}

func (f *fakeTarget) Render(rc *RenderContext) ([]*File, error) {
	if f.err != nil {
		return nil, f.err
	}
	var files []*File
	rc.Outline.Walk(func(o *Outline) {
		content := rc.Header + "\n"
		for _, i := range o.Interfaces {
			content += i.Name + "\n"
		}
		files = append(files, &File{Path: joinPath(o.Path, "out.txt"), Content: []byte(content)})
	})
	return files, nil
}

func joinPath(path []string, file string) string {
	out := ""
	for _, p := range path {
		out += p + "/"
	}
	return out + file
}

// memLedger is an in-memory Ledger.
type memLedger struct {
	sums    map[string]string
	records int
}

func newMemLedger() *memLedger { return &memLedger{sums: make(map[string]string)} }

func (m *memLedger) Checksum(_ context.Context, path string) (string, bool, error) {
	s, ok := m.sums[path]
	return s, ok, nil
}

func (m *memLedger) Record(_ context.Context, _, _, path, sum string) error {
	m.sums[path] = sum
	m.records++
	return nil
}

func TestWithTarget(t *testing.T) {
	t.Run("adds job", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithTarget(&fakeTarget{name: "ts", mode: Client}, "out/ts")(c))
		require.Len(t, c.Jobs, 1)
		assert.Equal(t, "out/ts", c.Jobs[0].Dest)
	})

	t.Run("nil target", func(t *testing.T) {
		err := WithTarget(nil, "out")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("empty destination", func(t *testing.T) {
		err := WithTarget(&fakeTarget{name: "ts"}, "")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithHeader(t *testing.T) {
	t.Run("sets header", func(t *testing.T) {
		c := &Config{}
		err := WithHeader("// Custom header")(c)

		require.NoError(t, err)
		assert.Equal(t, "// Custom header", c.Header)
	})

	t.Run("empty header is allowed", func(t *testing.T) {
		c := &Config{Header: "existing"}
		err := WithHeader("")(c)

		require.NoError(t, err)
		assert.Equal(t, "", c.Header)
	})
}

func TestWithObjectName(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithObjectName("api")(c))
	assert.Equal(t, "api", c.ObjectName)

	err := WithObjectName("")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"positive", 4, false},
		{"one", 1, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithWorkers(tt.n)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.n, c.Workers)
		})
	}
}

func TestWithFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"none", false},
		{"goimports", false},
		{"gofumpt", false},
		{"gofmt", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			c := &Config{}
			err := WithFormat(tt.format)(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Format(tt.format), c.Format)
		})
	}
}

func TestWithDryRunLoggerLedger(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithDryRun(true)(c))
	assert.True(t, c.DryRun)

	l := zerolog.New(zerolog.NewTestWriter(t))
	require.NoError(t, WithLogger(l)(c))

	ledger := newMemLedger()
	require.NoError(t, WithLedger(ledger)(c))
	assert.Same(t, ledger, c.Ledger)

	err := WithLedger(nil)(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestConfig_Apply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithWorkers(0), WithHeader("x"))
		require.Error(t, err)
		assert.Empty(t, c.Header)
	})

	t.Run("apply all collects errors", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithWorkers(0), WithHeader("x"), WithFormat("bad"))
		require.Error(t, err)
		assert.Equal(t, "x", c.Header)
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "Format")
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultObjectName, c.ObjectName)
		assert.Equal(t, runtime.GOMAXPROCS(0), c.Workers)
		assert.Equal(t, FormatGoimports, c.Format)
		assert.Nil(t, c.Ledger)
	})

	t.Run("validate", func(t *testing.T) {
		c := MustNewConfig()
		err := c.Validate()
		require.Error(t, err)
		assert.True(t, IsConfigError(err))

		c = MustNewConfig(
			WithTarget(&fakeTarget{name: "ts", mode: Client}, "out"),
			WithTarget(&fakeTarget{name: "dart", mode: Client}, "out"),
		)
		err = c.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ts and dart")
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithWorkers(-1)) })
	})
}
