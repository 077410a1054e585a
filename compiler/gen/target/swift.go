package target

import (
	"strings"
	"text/template"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

var swiftTemplates = mustParse("swift/*.tmpl", template.FuncMap{"codingKey": swiftCodingKey})

// Swift renders a single Swift file with one caseless enum per namespace.
type Swift struct{}

// NewSwift returns the Swift client target.
func NewSwift() *Swift { return &Swift{} }

// Name implements gen.Target.
func (*Swift) Name() string { return "swift" }

// Mode implements gen.Target.
func (*Swift) Mode() gen.Mode { return gen.Client }

// Lookup implements gen.Target.
func (*Swift) Lookup(t *schema.Type, current []string) (string, error) {
	return gen.NewLookup(swiftSyntax(), gen.Client, current).Render(t)
}

func swiftSyntax() *gen.Syntax {
	return &gen.Syntax{
		Target: "swift",
		Style:  gen.PathStyleQualified,
		Path:   gen.PathOptions{Separator: "."},
		Scalars: map[schema.Kind]string{
			schema.KindNull:     "NullValue",
			schema.KindBool:     "Bool",
			schema.KindInt:      "Int32",
			schema.KindInt64:    "Int64",
			schema.KindFloat32:  "Float32",
			schema.KindFloat64:  "Double",
			schema.KindDecimal:  "Decimal",
			schema.KindString:   "String",
			schema.KindObjectID: "String",
			schema.KindDate:     "String",
			schema.KindDateTime: "Date",
			schema.KindAny:      "AnyCodable",
		},
		Opaque: map[schema.Kind]string{
			schema.KindEnumerable: "AnyCodable",
		},
		Optional:   func(inner string, _ *schema.Type) string { return inner + "?" },
		Array:      func(elem string, _ *schema.Type) string { return "Array<" + elem + ">" },
		Dictionary: func(v string) string { return "Dictionary<String, " + v + ">" },
		Union: func(items []string, types []*schema.Type) string {
			// Null or T is the only union Codable can express.
			if len(types) == 2 {
				for i, t := range types {
					if t.IsNull() {
						return "NullOr<" + items[1-i] + ">"
					}
				}
			}
			return "AnyCodable"
		},
		Generic:   func(name string, args []string) string { return name + "<" + strings.Join(args, ", ") + ">" },
		Namespace: gen.Pascal,
	}
}

// Render implements gen.Target.
func (s *Swift) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	c := syntaxConverter(swiftSyntax(), gen.Client)
	c.field = swiftIdent
	c.namespace = gen.Pascal
	c.member = func(m string) string { return swiftIdent(gen.Camel(m)) }
	root, err := c.build(rc.Outline)
	if err != nil {
		return nil, err
	}
	client := gen.Pascal(rc.ObjectName)
	if root.Root != nil {
		root.Root.Name = client
	}
	content, err := execute(swiftTemplates.Lookup("client.swift.tmpl"), &singleFile{
		Header:       rc.Header,
		Client:       client,
		Capabilities: rc.Capabilities,
		Root:         root,
	})
	if err != nil {
		return nil, err
	}
	return []*gen.File{{Path: client + ".swift", Content: content}}, nil
}

// swiftCodingKey reports if a field needs an explicit coding key.
func swiftCodingKey(fields []*fieldView) bool {
	for _, f := range fields {
		if strings.Trim(f.Ident, "`") != f.Name {
			return true
		}
	}
	return false
}
