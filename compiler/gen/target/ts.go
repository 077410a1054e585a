package target

import (
	"strings"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/manifest"
	"github.com/syssam/teogen/schema"
)

var tsTemplates = mustParse("ts/*.tmpl", nil)

// TypeScript renders the TypeScript client ("ts") and the node entity
// declarations ("node").
type TypeScript struct {
	name string
	mode gen.Mode
}

// NewTypeScript returns the TypeScript client target.
func NewTypeScript() *TypeScript { return &TypeScript{name: "ts", mode: gen.Client} }

// NewNode returns the node entity target.
func NewNode() *TypeScript { return &TypeScript{name: "node", mode: gen.Entity} }

// Name implements gen.Target.
func (t *TypeScript) Name() string { return t.name }

// Mode implements gen.Target.
func (t *TypeScript) Mode() gen.Mode { return t.mode }

// Lookup implements gen.Target.
func (t *TypeScript) Lookup(typ *schema.Type, current []string) (string, error) {
	return gen.NewLookup(tsSyntax(t.name), t.mode, current).Render(typ)
}

func tsSyntax(target string) *gen.Syntax {
	return &gen.Syntax{
		Target: target,
		Style:  gen.PathStyleQualified,
		Path:   gen.PathOptions{Separator: "."},
		Scalars: map[schema.Kind]string{
			schema.KindNull:     "null",
			schema.KindBool:     "boolean",
			schema.KindInt:      "number",
			schema.KindInt64:    "number",
			schema.KindFloat32:  "number",
			schema.KindFloat64:  "number",
			schema.KindDecimal:  "Decimal",
			schema.KindString:   "string",
			schema.KindObjectID: "ObjectId",
			schema.KindDate:     "DateOnly",
			schema.KindDateTime: "Date",
			schema.KindFile:     "File",
			schema.KindRegex:    "RegExp",
			schema.KindAny:      "any",
		},
		Optional: func(inner string, _ *schema.Type) string { return inner + " | undefined" },
		Array: func(elem string, t *schema.Type) string {
			if t.IsUnion() || t.IsOptional() {
				return "(" + elem + ")[]"
			}
			return elem + "[]"
		},
		Dictionary: func(v string) string { return "{[key: string]: " + v + "}" },
		Tuple:      func(items []string) string { return "[" + strings.Join(items, ", ") + "]" },
		Range:      func(inner string) string { return "Range<" + inner + ">" },
		Union:      func(items []string, _ []*schema.Type) string { return strings.Join(items, " | ") },
		Enumerable: func(inner string) string { return "Enumerable<" + inner + ">" },
		Generic:    func(name string, args []string) string { return name + "<" + strings.Join(args, ", ") + ">" },
	}
}

type tsData struct {
	Header     string
	Client     bool
	ClientName string
	Decimal    bool
	Root       *namespaceView
	Delegates  []*tsDelegate
	Handlers   []*tsDelegate
}

// tsDelegate is a group or namespace delegate of the runtime maps.
type tsDelegate struct {
	Key      string
	Requests []*requestView
}

// Render implements gen.Target.
func (t *TypeScript) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	c := syntaxConverter(tsSyntax(t.name), t.mode)
	c.field = tsProperty
	if t.mode == gen.Client {
		c.request = tsResultRequest(c)
	}
	root, err := c.build(rc.Outline)
	if err != nil {
		return nil, err
	}
	data := &tsData{
		Header:     rc.Header,
		Client:     t.mode == gen.Client,
		ClientName: gen.Pascal(rc.ObjectName) + "Client",
		Decimal:    rc.Capabilities.Has(gen.CapDecimal),
		Root:       root,
	}
	if root.Root != nil {
		root.Root.Name = data.ClientName
		root.Root.Options = data.ClientName + "Options"
	}
	tsMaps(root, nil, data)

	decl, err := execute(tsTemplates.Lookup("index.d.ts.tmpl"), data)
	if err != nil {
		return nil, err
	}
	files := []*gen.File{{Path: "index.d.ts", Content: decl}}
	deps := []manifest.Dependency{{Name: "@teocloud/teo", Version: "^0.3.0"}}
	if data.Client {
		js, err := execute(tsTemplates.Lookup("index.js.tmpl"), data)
		if err != nil {
			return nil, err
		}
		files = append(files, &gen.File{Path: "index.js", Content: js})
		deps = []manifest.Dependency{{Name: "decimal.js", Version: "^10.4.3"}}
	}
	files = append(files, &gen.File{
		Path:       "package.json",
		Patch:      manifest.PackageJSON(deps...),
		FindUpward: true,
	})
	return files, nil
}

// tsMaps collects the runtime request maps keyed by the dotted property
// path of each delegate.
func tsMaps(n *namespaceView, path []string, data *tsData) {
	for _, d := range n.Delegates {
		key := append(append([]string{}, path...), gen.Camel(strings.TrimSuffix(d.Name, "Delegate")))
		data.Delegates = append(data.Delegates, &tsDelegate{Key: strings.Join(key, "."), Requests: d.Requests})
	}
	if n.Root != nil && len(n.Root.Requests) > 0 {
		data.Handlers = append(data.Handlers, &tsDelegate{Key: strings.Join(path, "."), Requests: n.Root.Requests})
	}
	for _, c := range n.Children {
		tsMaps(c, append(append([]string{}, path...), gen.Camel(c.Name)), data)
	}
}

// tsResultRequest renders the output of find and mutation built-ins in
// result mode: model results depend on the select and include arguments.
func tsResultRequest(c *converter) func(r *gen.RequestItem, v *requestView, current []string) error {
	return func(r *gen.RequestItem, v *requestView, current []string) error {
		if !r.IsBuiltin || r.IsCount || r.IsAggregate || r.IsGroupBy {
			return nil
		}
		output, err := c.lookup(substitute(r.Output, resultMode), current)
		if err != nil {
			return err
		}
		v.Generic = "<T extends " + v.Input + ">"
		v.Input = "Subset<T, " + v.Input + ">"
		v.Output = output
		return nil
	}
}

// resultMode replaces model results with their select-dependent payload.
func resultMode(t *schema.Type) *schema.Type {
	if t.Kind != schema.KindShapeReference || t.Shape == nil || t.Shape.Kind != schema.ShapeResult ||
		t.Shape.Owner == nil || t.Shape.Owner.Kind != schema.KindModelObject {
		return nil
	}
	owner := t.Shape.Owner.Path
	if len(owner) == 0 {
		return nil
	}
	payload := append(append([]string{}, owner[:len(owner)-1]...), owner[len(owner)-1]+"GetPayload")
	return schema.InterfaceObject([]string{"CheckSelectInclude"},
		schema.GenericItem("T"),
		t,
		schema.InterfaceObject(payload, schema.GenericItem("T")),
	)
}

// substitute returns a copy of t where fn replaced the nodes it returns
// non-nil for.
func substitute(t *schema.Type, fn func(*schema.Type) *schema.Type) *schema.Type {
	if t == nil {
		return nil
	}
	if r := fn(t); r != nil {
		return r
	}
	out := *t
	out.Inner = substitute(t.Inner, fn)
	if t.Items != nil {
		out.Items = make([]*schema.Type, len(t.Items))
		for i, it := range t.Items {
			out.Items[i] = substitute(it, fn)
		}
	}
	if t.Args != nil {
		out.Args = make([]*schema.Type, len(t.Args))
		for i, a := range t.Args {
			out.Args[i] = substitute(a, fn)
		}
	}
	return &out
}
