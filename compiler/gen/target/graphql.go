package target

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

// graphqlScalars are declared by every generated schema.
var graphqlScalars = []string{"Long", "Decimal", "Date", "DateTime", "Upload", "JSON"}

// GraphQL renders the client surface as a GraphQL schema.
type GraphQL struct {
	// Filename of the generated schema.
	Filename string
}

// NewGraphQL returns the GraphQL target.
func NewGraphQL() *GraphQL { return &GraphQL{Filename: "schema.graphql"} }

// Name implements gen.Target.
func (*GraphQL) Name() string { return "graphql" }

// Mode implements gen.Target.
func (*GraphQL) Mode() gen.Mode { return gen.Client }

// Lookup implements gen.Target. Declarations are flattened into one
// namespace, so current is ignored.
func (*GraphQL) Lookup(t *schema.Type, _ []string) (string, error) {
	s, err := gen.NewLookup(graphqlSyntax(), gen.Client, nil).Render(t)
	if err != nil {
		return "", err
	}
	return graphqlTop(s), nil
}

// Nullable positions are marked with a trailing "?" while rendering and
// every other position becomes non-null.
func graphqlSyntax() *gen.Syntax {
	return &gen.Syntax{
		Target: "graphql",
		Style:  gen.PathStyleQualified,
		Path:   gen.PathOptions{Separator: "_"},
		Scalars: map[schema.Kind]string{
			schema.KindBool:     "Boolean",
			schema.KindInt:      "Int",
			schema.KindInt64:    "Long",
			schema.KindFloat32:  "Float",
			schema.KindFloat64:  "Float",
			schema.KindDecimal:  "Decimal",
			schema.KindString:   "String",
			schema.KindObjectID: "ID",
			schema.KindDate:     "Date",
			schema.KindDateTime: "DateTime",
			schema.KindFile:     "Upload",
			schema.KindAny:      "JSON",
		},
		Opaque: map[schema.Kind]string{
			schema.KindDictionary: "JSON",
		},
		Optional: func(inner string, _ *schema.Type) string {
			return strings.TrimSuffix(inner, "?") + "?"
		},
		Array:         func(elem string, _ *schema.Type) string { return "[" + graphqlTop(elem) + "]" },
		Enumerable:    func(inner string) string { return "[" + graphqlTop(inner) + "]" },
		NullableUnion: true,
	}
}

func graphqlTop(s string) string {
	if strings.HasSuffix(s, "?") {
		return strings.TrimSuffix(s, "?")
	}
	return s + "!"
}

// parseGraphQLType parses the type strings produced by Lookup.
func parseGraphQLType(s string) (*ast.Type, error) {
	t := &ast.Type{}
	if strings.HasSuffix(s, "!") {
		t.NonNull = true
		s = strings.TrimSuffix(s, "!")
	}
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("unbalanced list type %q", s)
		}
		elem, err := parseGraphQLType(s[1 : len(s)-1])
		if err != nil {
			return nil, err
		}
		t.Elem = elem
		return t, nil
	}
	if s == "" {
		return nil, fmt.Errorf("empty type")
	}
	t.NamedType = s
	return t, nil
}

type graphqlRenderer struct {
	g          *GraphQL
	interfaces map[string]*gen.Interface
	doc        *ast.SchemaDocument
	query      *ast.Definition
	mutation   *ast.Definition
}

// Render implements gen.Target.
func (g *GraphQL) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	r := &graphqlRenderer{
		g:          g,
		interfaces: make(map[string]*gen.Interface),
		doc:        &ast.SchemaDocument{},
		query:      &ast.Definition{Kind: ast.Object, Name: "Query"},
		mutation:   &ast.Definition{Kind: ast.Object, Name: "Mutation"},
	}
	rc.Outline.Walk(func(o *gen.Outline) {
		for _, i := range o.Interfaces {
			r.interfaces[strings.Join(i.Path, ".")] = i
		}
	})
	for _, s := range graphqlScalars {
		r.doc.Definitions = append(r.doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: s})
	}
	var err error
	rc.Outline.Walk(func(o *gen.Outline) {
		if err == nil {
			err = r.namespace(o)
		}
	})
	if err != nil {
		return nil, err
	}
	for _, root := range []*ast.Definition{r.query, r.mutation} {
		emptyPlaceholder(root)
		r.doc.Definitions = append(r.doc.Definitions, root)
	}
	var b bytes.Buffer
	if rc.Header != "" {
		b.WriteString(graphqlHeader(rc.Header))
		b.WriteString("\n")
	}
	formatter.NewFormatter(&b).FormatSchemaDocument(r.doc)
	return []*gen.File{
		{Path: g.Filename, Content: b.Bytes()},
		{Path: "gqlgen.yml", Patch: gqlgenPatch(g.Filename), FindUpward: true},
	}, nil
}

func (r *graphqlRenderer) typeOf(t *schema.Type) (*ast.Type, error) {
	s, err := r.g.Lookup(t, nil)
	if err != nil {
		return nil, err
	}
	return parseGraphQLType(s)
}

func (r *graphqlRenderer) name(path []string) string {
	return strings.Join(path, "_")
}

func (r *graphqlRenderer) namespace(o *gen.Outline) error {
	for _, e := range o.Enums {
		def := &ast.Definition{Kind: ast.Enum, Name: r.name(e.Path), Description: describe(e.Title, e.Desc)}
		for _, m := range e.Members {
			def.EnumValues = append(def.EnumValues, &ast.EnumValueDefinition{Name: m.Name, Description: m.Title})
		}
		r.doc.Definitions = append(r.doc.Definitions, def)
	}
	for _, p := range o.PathArguments {
		def := &ast.Definition{Kind: ast.InputObject, Name: r.name(append(slices.Clone(o.Path), p.Name))}
		for _, item := range p.Items {
			def.Fields = append(def.Fields, &ast.FieldDefinition{Name: item, Type: ast.NonNullNamedType("String", nil)})
		}
		r.doc.Definitions = append(r.doc.Definitions, def)
	}
	for _, i := range o.Interfaces {
		if len(i.Generics) > 0 {
			// Generic interfaces have no GraphQL counterpart; their uses are
			// unwrapped or rejected.
			continue
		}
		def, err := r.object(i)
		if err != nil {
			return err
		}
		r.doc.Definitions = append(r.doc.Definitions, def)
	}
	for _, d := range o.Delegates {
		for _, req := range d.RequestItems {
			if err := r.operation(o, d, req); err != nil {
				return fmt.Errorf("request %s.%s: %w", d.Name, req.Name, err)
			}
		}
	}
	return nil
}

// graphqlObjectShapes are synthesized shapes rendered as output objects.
var graphqlObjectShapes = map[string]bool{
	string(schema.ShapeResult):          true,
	string(schema.ShapeAggregateResult): true,
	string(schema.ShapeGroupByResult):   true,
}

func (r *graphqlRenderer) object(i *gen.Interface) (*ast.Definition, error) {
	kind := ast.Object
	if i.Shape != "" && !graphqlObjectShapes[i.Shape] {
		kind = ast.InputObject
	}
	def := &ast.Definition{Kind: kind, Name: r.name(i.Path), Description: describe(i.Title, i.Desc)}
	seen := make(map[string]bool)
	add := func(f *gen.Field) error {
		if seen[f.Name] {
			return nil
		}
		seen[f.Name] = true
		t, err := r.typeOf(f.Type)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", i.Name, f.Name, err)
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{Name: f.Name, Description: f.Title, Type: t})
		return nil
	}
	for _, f := range i.Fields {
		if err := add(f); err != nil {
			return nil, err
		}
	}
	// Extended interfaces are inlined.
	for _, ext := range i.Extends {
		parent, ok := r.interfaces[strings.Join(ext.Path, ".")]
		if !ok || len(ext.Args) > 0 {
			return nil, gen.NewUnresolvableTypeError("graphql", ext.String())
		}
		for _, f := range parent.Fields {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}
	emptyPlaceholder(def)
	return def, nil
}

func (r *graphqlRenderer) operation(o *gen.Outline, d *gen.Delegate, req *gen.RequestItem) error {
	output := req.Output
	if output.Kind == schema.KindInterfaceObject && slices.Equal(output.Path, []string{"std", "Data"}) && len(output.Args) == 1 {
		output = output.Args[0]
	}
	out, err := r.typeOf(output)
	if err != nil {
		return err
	}
	var parts []string
	parts = append(parts, o.Path...)
	if d != o.RootDelegate() {
		parts = append(parts, strings.TrimSuffix(d.Name, "Delegate"))
	}
	parts = append(parts, req.Name)
	field := &ast.FieldDefinition{Name: graphqlFieldName(parts), Type: out, Description: req.Method + " " + req.Path}
	if req.HasBodyInput {
		in, err := r.typeOf(req.Input)
		if err != nil {
			return err
		}
		field.Arguments = append(field.Arguments, &ast.ArgumentDefinition{Name: "input", Type: in})
	}
	if req.HasCustomURLArgs {
		t := ast.NonNullNamedType("JSON", nil)
		if len(req.CustomURLArgsPath) > 0 {
			t = ast.NonNullNamedType(r.name(req.CustomURLArgsPath), nil)
		}
		field.Arguments = append(field.Arguments, &ast.ArgumentDefinition{Name: "pathArgs", Type: t})
	}
	if graphqlIsQuery(req) {
		r.query.Fields = append(r.query.Fields, field)
	} else {
		r.mutation.Fields = append(r.mutation.Fields, field)
	}
	return nil
}

func graphqlIsQuery(req *gen.RequestItem) bool {
	if req.IsBuiltin {
		return strings.HasPrefix(req.Name, "find") || req.IsCount || req.IsAggregate || req.IsGroupBy
	}
	return req.Method == "GET"
}

func graphqlFieldName(parts []string) string {
	var b strings.Builder
	for i, p := range parts {
		if i == 0 {
			b.WriteString(gen.Camel(p))
			continue
		}
		b.WriteString(gen.Pascal(p))
	}
	return b.String()
}

// emptyPlaceholder gives a type without fields a placeholder field, since
// GraphQL rejects empty object types.
func emptyPlaceholder(def *ast.Definition) {
	if len(def.Fields) == 0 {
		def.Fields = append(def.Fields, &ast.FieldDefinition{Name: "_empty", Type: ast.NamedType("Boolean", nil)})
	}
}

func describe(title, desc string) string {
	if desc == "" {
		return title
	}
	return title + "\n\n" + desc
}

func graphqlHeader(h string) string {
	lines := strings.Split(h, "\n")
	for i, l := range lines {
		lines[i] = "# " + strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "//"))
	}
	return strings.Join(lines, "\n")
}
