package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"gopkg.in/yaml.v3"
)

func TestGraphQL_Render(t *testing.T) {
	files := render(t, NewGraphQL(), "graphql")
	require.Len(t, files, 2)

	src := content(t, files, "schema.graphql")
	assert.Contains(t, src, "# Code generated by teogen. DO NOT EDIT.")

	s, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: src})
	require.NoError(t, err)

	require.NotNil(t, s.Query)
	for _, name := range []string{"userFindMany", "userCount", "userProfile", "shopOrderFindUnique", "shopPing"} {
		assert.NotNil(t, s.Query.Fields.ForName(name), "query %s", name)
	}
	require.NotNil(t, s.Mutation)
	assert.NotNil(t, s.Mutation.Fields.ForName("shopCartCheckout"))
	assert.Nil(t, s.Query.Fields.ForName("shopInternal"))

	findMany := s.Query.Fields.ForName("userFindMany")
	assert.Equal(t, "[User!]!", findMany.Type.String())
	require.NotNil(t, findMany.Arguments.ForName("input"))
	assert.Equal(t, "UserFindManyArgs!", findMany.Arguments.ForName("input").Type.String())
	assert.Equal(t, "Long!", s.Query.Fields.ForName("userCount").Type.String())

	profile := s.Query.Fields.ForName("userProfile")
	require.NotNil(t, profile.Arguments.ForName("pathArgs"))
	assert.Equal(t, "ProfilePathArgs!", profile.Arguments.ForName("pathArgs").Type.String())

	assert.Equal(t, ast.Object, s.Types["User"].Kind)
	assert.Equal(t, ast.InputObject, s.Types["UserFindManyArgs"].Kind)
	assert.Equal(t, ast.Enum, s.Types["Role"].Kind)
	assert.Equal(t, ast.Object, s.Types["shop_Order"].Kind)
	assert.Nil(t, s.Types["std_Data"])

	point := s.Types["Point"]
	require.NotNil(t, point)
	for _, name := range []string{"x", "y", "city", "createdAt"} {
		assert.NotNil(t, point.Fields.ForName(name), "field %s", name)
	}
	assert.Equal(t, "Float", point.Fields.ForName("y").Type.String())
}

func TestGQLGenPatch(t *testing.T) {
	existing := []byte(`schema:
  - graph/*.graphqls
exec:
  filename: graph/generated.go
models:
  Long:
    model: example.com/app/scalars.Long
federation:
  version: 2
`)
	out, err := gqlgenPatch("schema.graphql")(existing)
	require.NoError(t, err)

	var cfg GQLGenConfig
	require.NoError(t, yaml.Unmarshal(out, &cfg))
	assert.Equal(t, StringList{"graph/*.graphqls", "schema.graphql"}, cfg.SchemaFilename)
	assert.Equal(t, "graph/generated.go", cfg.Exec.Filename)
	assert.Equal(t, StringList{"example.com/app/scalars.Long"}, cfg.Models["Long"].Model)
	assert.Equal(t, StringList{"github.com/99designs/gqlgen/graphql.Time"}, cfg.Models["DateTime"].Model)
	assert.Contains(t, cfg.Extra, "federation")

	again, err := gqlgenPatch("schema.graphql")(out)
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestGQLGenPatch_Empty(t *testing.T) {
	out, err := gqlgenPatch("schema.graphql")(nil)
	require.NoError(t, err)

	var cfg GQLGenConfig
	require.NoError(t, yaml.Unmarshal(out, &cfg))
	assert.Equal(t, StringList{"schema.graphql"}, cfg.SchemaFilename)
	assert.Equal(t, StringList{"github.com/99designs/gqlgen/graphql.Int64"}, cfg.Models["Long"].Model)
}

func TestStringList_UnmarshalYAML(t *testing.T) {
	var cfg GQLGenConfig
	require.NoError(t, yaml.Unmarshal([]byte("schema: one.graphql\n"), &cfg))
	assert.Equal(t, StringList{"one.graphql"}, cfg.SchemaFilename)

	err := yaml.Unmarshal([]byte("schema:\n  a: b\n"), &cfg)
	require.Error(t, err)
}
