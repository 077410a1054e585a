package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/syssam/teogen/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.True(t, schema.KindInt.Valid())
		assert.True(t, schema.KindShapeReference.Valid())
		assert.False(t, schema.Kind("bogus").Valid())
	})

	t.Run("IsInternal", func(t *testing.T) {
		for _, k := range []schema.Kind{
			schema.KindUndetermined, schema.KindIgnored, schema.KindFieldType,
			schema.KindFieldName, schema.KindKeyword, schema.KindModel,
			schema.KindDataSet, schema.KindPipeline,
		} {
			assert.True(t, k.IsInternal(), k.String())
		}
		assert.False(t, schema.KindString.IsInternal())
		assert.False(t, schema.KindOptional.IsInternal())
	})

	t.Run("Classes", func(t *testing.T) {
		assert.True(t, schema.KindDecimal.IsScalar())
		assert.False(t, schema.KindArray.IsScalar())
		assert.True(t, schema.KindEnumReference.IsReference())
		assert.False(t, schema.KindGenericItem.IsReference())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Float", schema.KindFloat64.String())
		assert.Equal(t, "Kind(x)", schema.Kind("x").String())
	})
}

func TestType_String(t *testing.T) {
	tests := []struct {
		name string
		typ  *schema.Type
		want string
	}{
		{"scalar", schema.Int64(), "Int64"},
		{"optional", schema.Optional(schema.String()), "String?"},
		{"array of optional", schema.Array(schema.Optional(schema.Int())), "Int?[]"},
		{"dictionary", schema.Dictionary(schema.Bool()), "{Bool}"},
		{"tuple", schema.Tuple(schema.Int(), schema.String()), "(Int, String)"},
		{"union", schema.Union(schema.Null(), schema.String()), "Null | String"},
		{"model", schema.ModelObject("shop", "Order"), "shop.Order"},
		{"interface with args", schema.InterfaceObject([]string{"std", "Data"}, schema.Int()), "std.Data<Int>"},
		{"shape", schema.ShapeRef(schema.ShapeCreateInputWithout, schema.ModelObject("User"), "posts"), "User.CreateInputWithout(posts)"},
		{"enum", schema.EnumRef(schema.EnumScalarFields, schema.ModelObject("User")), "User.ScalarFields"},
		{"declared", schema.DeclaredShapeRef([]string{"Summary"}, schema.ModelObject("User")), "User.Summary"},
		{"generic", schema.GenericItem("T"), "T"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestType_Optional(t *testing.T) {
	s := schema.String()
	o := s.WrapInOptional()
	require.True(t, o.IsOptional())
	assert.Same(t, o, o.WrapInOptional(), "must not double wrap")
	assert.Same(t, s, o.Unwrap())
	assert.Same(t, s, s.Unwrap())
}

func TestType_Walk(t *testing.T) {
	typ := schema.Union(
		schema.Array(schema.ModelObject("User")),
		schema.InterfaceObject([]string{"std", "Data"}, schema.Date()),
		schema.ShapeRef(schema.ShapeResult, schema.ModelObject("shop", "Order"), ""),
	)
	var kinds []schema.Kind
	typ.Walk(func(t *schema.Type) bool {
		kinds = append(kinds, t.Kind)
		return true
	})
	assert.Equal(t, []schema.Kind{
		schema.KindUnion,
		schema.KindArray, schema.KindModelObject,
		schema.KindInterfaceObject, schema.KindDate,
		schema.KindShapeReference, schema.KindModelObject,
	}, kinds)

	var visited int
	typ.Walk(func(t *schema.Type) bool {
		visited++
		return t.Kind != schema.KindUnion
	})
	assert.Equal(t, 1, visited)
}

func TestType_JSON(t *testing.T) {
	typ := schema.Optional(schema.ShapeRef(schema.ShapeUpdateInputWithout, schema.ModelObject("shop", "Order"), "items"))
	data, err := json.Marshal(typ)
	require.NoError(t, err)
	var got schema.Type
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, typ, &got)
}

func TestNamespace(t *testing.T) {
	order := &schema.Model{Name: "Order", Path: []string{"shop", "Order"}, BuiltinHandlers: []string{"findMany"}}
	data := &schema.Interface{Name: "Data", Path: []string{"std", "Data"}}
	main := &schema.Namespace{
		Namespaces: []*schema.Namespace{
			{Name: "std", Path: []string{"std"}, Interfaces: []*schema.Interface{data}},
			{
				Name:   "shop",
				Path:   []string{"shop"},
				Models: []*schema.Model{order},
				Enums: []*schema.Enum{
					{Name: "Status", Path: []string{"shop", "Status"}},
					{Name: "Opt", Path: []string{"shop", "Opt"}, Option: true},
				},
				ModelHandlerGroups: []*schema.HandlerGroup{{Name: "Order", Path: []string{"shop", "Order"}}},
			},
		},
	}

	t.Run("Lookup", func(t *testing.T) {
		require.NotNil(t, main.Lookup([]string{"shop"}))
		assert.Nil(t, main.Lookup([]string{"shop", "missing"}))
		assert.Same(t, main, main.Lookup(nil))
	})

	t.Run("Declarations", func(t *testing.T) {
		assert.True(t, main.IsMain())
		assert.True(t, main.Child("std").IsStd())
		assert.Same(t, data, main.InterfaceAt([]string{"std", "Data"}))
		assert.Nil(t, main.InterfaceAt([]string{"std", "Missing"}))
		assert.Same(t, order, main.ModelAt([]string{"shop", "Order"}))
		assert.NotNil(t, main.Child("shop").ModelHandlerGroup("Order"))
		assert.True(t, order.HasBuiltinHandler("findMany"))
		assert.Equal(t, schema.ModelObject("shop", "Order"), order.Object())
	})

	t.Run("Collect", func(t *testing.T) {
		enums := main.CollectEnums(func(e *schema.Enum) bool { return !e.Option })
		require.Len(t, enums, 1)
		assert.Equal(t, "Status", enums[0].Name)
		assert.Len(t, main.CollectModels(nil), 1)
	})
}
