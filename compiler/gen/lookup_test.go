package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/teogen/schema"
)

// testSyntax is a minimal table exercising every hook of the engine.
func testSyntax() *Syntax {
	return &Syntax{
		Target: "test",
		Style:  PathStyleQualified,
		Path:   PathOptions{Separator: "."},
		Scalars: map[schema.Kind]string{
			schema.KindNull:     "null",
			schema.KindBool:     "bool",
			schema.KindInt:      "int",
			schema.KindString:   "string",
			schema.KindDateTime: "time",
			schema.KindAny:      "any",
		},
		Opaque: map[schema.Kind]string{
			schema.KindEnumerable: "iter",
		},
		Contextual: func(k schema.Kind, nested bool) (string, bool) {
			if k == schema.KindAny && nested {
				return "boxed", true
			}
			return "", false
		},
		Optional:   func(inner string, _ *schema.Type) string { return inner + "?" },
		Array:      func(elem string, _ *schema.Type) string { return "[" + elem + "]" },
		Dictionary: func(v string) string { return "map<" + v + ">" },
		Tuple:      func(items []string) string { return "(" + strings.Join(items, ", ") + ")" },
		Union:      func(items []string, _ []*schema.Type) string { return strings.Join(items, " | ") },
		Generic:    func(name string, args []string) string { return name + "<" + strings.Join(args, ", ") + ">" },
	}
}

func TestLookup_Render(t *testing.T) {
	user := schema.ModelObject("User")
	tests := []struct {
		name string
		typ  *schema.Type
		want string
	}{
		{"scalar", schema.Int(), "int"},
		{"contextual top level", schema.Any(), "any"},
		{"contextual nested", schema.Array(schema.Any()), "[boxed]"},
		{"optional", schema.Optional(schema.String()), "string?"},
		{"optional nested", schema.Array(schema.Optional(schema.Any())), "[boxed?]"},
		{"dictionary", schema.Dictionary(schema.DateTime()), "map<time>"},
		{"tuple", schema.Tuple(schema.Int(), schema.Any()), "(int, boxed)"},
		{"union", schema.Union(schema.Null(), schema.Bool()), "null | bool"},
		{"opaque", schema.Enumerable(schema.Regex()), "iter"},
		{"enum", schema.EnumVariant("shop", "Status"), "Status"},
		{"model", user, "User"},
		{"generic", schema.InterfaceObject([]string{"std", "Data"}, schema.Any()), "std.Data<boxed>"},
		{"generic item", schema.GenericItem("T"), "T"},
		{"shape", schema.ShapeRef(schema.ShapeWhereInput, user, ""), "UserWhereInput"},
		{"result", schema.ShapeRef(schema.ShapeResult, user, ""), "User"},
		{"enum ref", schema.EnumRef(schema.EnumScalarFields, schema.ModelObject("shop", "Order")), "OrderScalarFields"},
		{"declared", schema.DeclaredShapeRef([]string{"Summary"}, user), "UserSummary"},
	}
	l := NewLookup(testSyntax(), Client, []string{"shop"})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Render(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	nested, err := l.RenderNested(schema.Any())
	require.NoError(t, err)
	assert.Equal(t, "boxed", nested)
}

func TestLookup_Unsupported(t *testing.T) {
	l := NewLookup(testSyntax(), Client, nil)
	tests := []struct {
		name string
		typ  *schema.Type
	}{
		{"missing scalar", schema.Decimal()},
		{"missing hook", schema.Range(schema.Int())},
		{"internal", schema.Scalar(schema.KindKeyword)},
		{"undetermined", schema.Scalar(schema.KindUndetermined)},
		{"nested", schema.Array(schema.Optional(schema.File()))},
		{"nil", nil},
		{"unknown kind", schema.Scalar("mystery")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Render(tt.typ)
			require.Error(t, err)
			assert.True(t, IsUnresolvableTypeError(err))
			assert.Contains(t, err.Error(), "test")
		})
	}

	t.Run("generic without hook", func(t *testing.T) {
		s := testSyntax()
		s.Generic = nil
		_, err := NewLookup(s, Client, nil).Render(schema.InterfaceObject([]string{"Page"}, schema.Int()))
		require.Error(t, err)
		assert.True(t, IsUnresolvableTypeError(err))
	})

	t.Run("malformed reference", func(t *testing.T) {
		_, err := l.Render(schema.ShapeRef(schema.ShapeResult, nil, ""))
		require.Error(t, err)
		assert.True(t, IsMalformedReferenceError(err))
	})
}

func TestLookup_Namespace(t *testing.T) {
	s := testSyntax()
	s.Style = PathStyleAncestor
	s.Path = PathOptions{Separator: "::", Ancestor: "super"}
	s.Namespace = Snake

	l := NewLookup(s, Entity, []string{"AdminPanel"})
	got, err := l.Render(schema.ModelObject("ShopFront", "Order"))
	require.NoError(t, err)
	assert.Equal(t, "super::shop_front::Order", got)

	got, err = l.Render(schema.ShapeRef(schema.ShapeResult, schema.ModelObject("AdminPanel", "User"), ""))
	require.NoError(t, err)
	assert.Equal(t, "UserResult", got)
}
