package target

import (
	"sort"
	"strings"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

var pythonTemplates = mustParse("python/*.tmpl", nil)

// Python renders a single Python module with one nested class per
// namespace.
type Python struct{}

// NewPython returns the Python client target.
func NewPython() *Python { return &Python{} }

// Name implements gen.Target.
func (*Python) Name() string { return "python" }

// Mode implements gen.Target.
func (*Python) Mode() gen.Mode { return gen.Client }

// Lookup implements gen.Target.
func (*Python) Lookup(t *schema.Type, current []string) (string, error) {
	return gen.NewLookup(pythonSyntax(), gen.Client, current).Render(t)
}

func pythonSyntax() *gen.Syntax {
	return &gen.Syntax{
		Target: "python",
		Style:  gen.PathStyleQualified,
		Path:   gen.PathOptions{Separator: "."},
		Scalars: map[schema.Kind]string{
			schema.KindNull:     "None",
			schema.KindBool:     "bool",
			schema.KindInt:      "int",
			schema.KindInt64:    "int",
			schema.KindFloat32:  "float",
			schema.KindFloat64:  "float",
			schema.KindDecimal:  "Decimal",
			schema.KindString:   "str",
			schema.KindObjectID: "ObjectId",
			schema.KindDate:     "date",
			schema.KindDateTime: "datetime",
			schema.KindFile:     "File",
			schema.KindRegex:    "Pattern",
			schema.KindAny:      "Any",
		},
		Optional:   func(inner string, _ *schema.Type) string { return "Optional[" + inner + "]" },
		Array:      func(elem string, _ *schema.Type) string { return "list[" + elem + "]" },
		Dictionary: func(v string) string { return "dict[str, " + v + "]" },
		Tuple:      func(items []string) string { return "tuple[" + strings.Join(items, ", ") + "]" },
		Union:      func(items []string, _ []*schema.Type) string { return strings.Join(items, " | ") },
		Enumerable: func(inner string) string { return inner + " | list[" + inner + "]" },
		Generic:    func(name string, args []string) string { return name + "[" + strings.Join(args, ", ") + "]" },
		Namespace:  gen.Snake,
	}
}

type pythonFile struct {
	singleFile
	TypeVars []string
}

// Render implements gen.Target.
func (p *Python) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	c := syntaxConverter(pythonSyntax(), gen.Client)
	c.field = pythonIdent
	c.member = pythonIdent
	c.method = func(s string) string { return pythonIdent(gen.Snake(s)) }
	c.namespace = gen.Snake
	// Class bodies do not enclose their methods, so every reference is
	// rendered from the module scope.
	lookup, reference := c.lookup, c.reference
	c.lookup = func(t *schema.Type, _ []string) (string, error) { return lookup(t, nil) }
	c.reference = func(decl, _ []string) (string, error) { return reference(decl, nil) }
	root, err := c.build(rc.Outline)
	if err != nil {
		return nil, err
	}
	client := gen.Pascal(rc.ObjectName)
	if root.Root != nil {
		root.Root.Name = client
	}
	vars := make(map[string]struct{})
	rc.Outline.Walk(func(o *gen.Outline) {
		for _, i := range o.Interfaces {
			for _, g := range i.Generics {
				vars[g] = struct{}{}
			}
		}
	})
	data := &pythonFile{singleFile: singleFile{
		Header:       pythonHeader(rc.Header),
		Client:       client,
		Capabilities: rc.Capabilities,
		Root:         root,
	}}
	for v := range vars {
		data.TypeVars = append(data.TypeVars, v)
	}
	sort.Strings(data.TypeVars)
	content, err := execute(pythonTemplates.Lookup("client.py.tmpl"), data)
	if err != nil {
		return nil, err
	}
	return []*gen.File{{Path: "__init__.py", Content: content}}, nil
}

// pythonHeader turns a "//" header into a Python comment.
func pythonHeader(h string) string {
	if h == "" {
		return ""
	}
	lines := strings.Split(h, "\n")
	for i, l := range lines {
		lines[i] = "# " + strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "//"))
	}
	return strings.Join(lines, "\n")
}
