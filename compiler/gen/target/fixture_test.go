package target

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

const testHeader = "// Code generated by teogen. DO NOT EDIT."

// fixture returns a schema with a standard library namespace, a root model
// with built-in and custom handlers and a child namespace with its own
// model, handler group and handlers.
func fixture() *schema.Namespace {
	user := schema.ModelObject("User")
	order := schema.ModelObject("shop", "Order")
	return &schema.Namespace{
		Namespaces: []*schema.Namespace{
			{
				Name: "std",
				Path: []string{"std"},
				Interfaces: []*schema.Interface{
					{
						Name:     "Data",
						Path:     []string{"std", "Data"},
						Generics: []string{"T"},
						Fields: []*schema.Field{
							{Name: "data", Type: schema.GenericItem("T")},
						},
					},
				},
			},
			{
				Name: "shop",
				Path: []string{"shop"},
				Models: []*schema.Model{
					{
						Name:             "Order",
						Path:             []string{"shop", "Order"},
						GenerateClient:   true,
						GenerateEntity:   true,
						SynthesizeShapes: true,
						BuiltinHandlers:  []string{"findUnique"},
						Shapes: []*schema.ShapeEntry{
							{Name: "Result", Shape: &schema.Shape{Fields: []*schema.Field{
								{Name: "id", Type: schema.Int()},
								{Name: "total", Type: schema.Decimal()},
								{Name: "user", Type: schema.Optional(schema.ShapeRef(schema.ShapeResult, user, ""))},
							}}},
							{Name: "FindUniqueArgs", Shape: &schema.Shape{Fields: []*schema.Field{
								{Name: "id", Type: schema.Int()},
							}}},
						},
					},
				},
				HandlerGroups: []*schema.HandlerGroup{
					{
						Name: "Cart",
						Path: []string{"shop", "Cart"},
						Handlers: []*schema.Handler{
							{Name: "checkout", Path: []string{"shop", "Cart", "checkout"}, Input: schema.String(), Output: schema.Bool()},
						},
					},
				},
				Handlers: []*schema.Handler{
					{Name: "ping", Path: []string{"shop", "ping"}, Input: schema.Any(), Output: schema.String(), Method: "get"},
					{Name: "internal", Path: []string{"shop", "internal"}, Input: schema.Any(), Output: schema.Any(), NonAPI: true},
				},
			},
		},
		Enums: []*schema.Enum{
			{
				Name: "Role",
				Path: []string{"Role"},
				Members: []*schema.Member{
					{Name: "admin"},
					{Name: "user", Title: "Regular user"},
				},
			},
		},
		Interfaces: []*schema.Interface{
			{
				Name: "Address",
				Path: []string{"Address"},
				Fields: []*schema.Field{
					{Name: "city", Type: schema.String()},
					{Name: "createdAt", Type: schema.DateTime()},
				},
			},
			{
				Name:    "Point",
				Path:    []string{"Point"},
				Extends: []*schema.Type{schema.InterfaceObject([]string{"Address"})},
				Fields: []*schema.Field{
					{Name: "x", Type: schema.Float64()},
					{Name: "y", Type: schema.Optional(schema.Float64())},
				},
			},
		},
		Models: []*schema.Model{
			{
				Name:             "User",
				Path:             []string{"User"},
				GenerateClient:   true,
				GenerateEntity:   true,
				SynthesizeShapes: true,
				BuiltinHandlers:  []string{"findMany", "count"},
				Shapes: []*schema.ShapeEntry{
					{Name: "Result", Shape: &schema.Shape{Fields: []*schema.Field{
						{Name: "id", Type: schema.Int()},
						{Name: "name", Type: schema.String()},
						{Name: "role", Type: schema.EnumVariant("Role")},
						{Name: "orders", Type: schema.Optional(schema.Array(schema.ShapeRef(schema.ShapeResult, order, "")))},
					}}},
					{Name: "FindManyArgs", Shape: &schema.Shape{Fields: []*schema.Field{
						{Name: "take", Type: schema.Optional(schema.Int64())},
						{Name: "distinct", Type: schema.Optional(schema.Array(schema.EnumRef(schema.EnumScalarFields, user)))},
					}}},
					{Name: "CountArgs", Shape: &schema.Shape{Fields: []*schema.Field{
						{Name: "take", Type: schema.Optional(schema.Int64())},
					}}},
					{Name: "ScalarFields", Enum: &schema.SynthesizedEnum{Members: []string{"id", "name"}}},
				},
				DeclaredShapes: []*schema.DeclaredShape{
					{Path: []string{"Summary"}, Shape: &schema.Shape{Fields: []*schema.Field{
						{Name: "name", Type: schema.String()},
					}}},
				},
			},
		},
		ModelHandlerGroups: []*schema.HandlerGroup{
			{
				Name: "User",
				Path: []string{"User"},
				Handlers: []*schema.Handler{
					{
						Name:      "profile",
						Path:      []string{"User", "profile"},
						Input:     schema.Any(),
						Output:    schema.ShapeRef(schema.ShapeResult, user, ""),
						Method:    "get",
						URL:       "/users/:id/*rest",
						Interface: "ProfilePathArgs",
					},
				},
			},
		},
	}
}

// renderContext builds the outline of the fixture for mode.
func renderContext(t *testing.T, mode gen.Mode, dest string) *gen.RenderContext {
	t.Helper()
	ns := fixture()
	o, err := gen.NewOutline(ns, mode, ns)
	require.NoError(t, err)
	return &gen.RenderContext{
		Outline:      o,
		Schema:       ns,
		Dest:         dest,
		ObjectName:   gen.DefaultObjectName,
		Header:       testHeader,
		Capabilities: gen.CapabilitiesOf(o),
	}
}

// render renders the fixture with tgt and returns the files by path.
func render(t *testing.T, tgt gen.Target, dest string) map[string]*gen.File {
	t.Helper()
	files, err := tgt.Render(renderContext(t, tgt.Mode(), dest))
	require.NoError(t, err)
	byPath := make(map[string]*gen.File, len(files))
	for _, f := range files {
		require.NotContains(t, byPath, f.Path, "duplicate file")
		byPath[f.Path] = f
	}
	return byPath
}

// content returns the content of the rendered file at path.
func content(t *testing.T, files map[string]*gen.File, path string) string {
	t.Helper()
	f, ok := files[path]
	require.True(t, ok, "missing file %s", path)
	return string(f.Content)
}
