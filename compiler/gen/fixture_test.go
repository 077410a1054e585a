package gen

import "github.com/syssam/teogen/schema"

// testSchema returns a small schema with a standard library namespace, a
// root model with custom handlers and a child namespace referencing it.
func testSchema() *schema.Namespace {
	user := schema.ModelObject("User")
	return &schema.Namespace{
		Name: "",
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
						SynthesizeShapes: true,
						BuiltinHandlers:  []string{"findUnique"},
						Shapes: []*schema.ShapeEntry{
							{Name: "Result", Shape: &schema.Shape{Fields: []*schema.Field{
								{Name: "id", Type: schema.Int()},
								{Name: "total", Type: schema.Decimal()},
								{Name: "user", Type: schema.Optional(schema.ShapeRef(schema.ShapeResult, user, ""))},
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
			{Name: "Flag", Path: []string{"Flag"}, Interface: true, Members: []*schema.Member{{Name: "x"}}},
			{Name: "Sort", Path: []string{"Sort"}, Option: true, Members: []*schema.Member{{Name: "asc"}}},
		},
		Interfaces: []*schema.Interface{
			{
				Name: "Point",
				Path: []string{"Point"},
				Fields: []*schema.Field{
					{Name: "x", Type: schema.Float64()},
					{Name: "y", Type: schema.Float64()},
				},
			},
			{
				Name: "Address",
				Path: []string{"Address"},
				Fields: []*schema.Field{
					{Name: "city", Type: schema.String()},
					{Name: "createdAt", Type: schema.DateTime()},
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
					}}},
					{Name: "CreateInput", Shape: &schema.Shape{Fields: []*schema.Field{
						{Name: "name", Type: schema.String()},
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
