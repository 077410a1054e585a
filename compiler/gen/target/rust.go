package target

import (
	"path"
	"strings"
	"text/template"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/manifest"
	"github.com/syssam/teogen/schema"
)

var rustTemplates = mustParse("rust/*.tmpl", template.FuncMap{"extendsField": rustExtendsField})

// rustReservedModules renames root modules that shadow crates.
var rustReservedModules = map[string]string{"std": "stdlib"}

// Rust renders Rust entities with one module file per namespace.
type Rust struct{}

// NewRust returns the Rust entity target.
func NewRust() *Rust { return &Rust{} }

// Name implements gen.Target.
func (*Rust) Name() string { return "rust" }

// Mode implements gen.Target.
func (*Rust) Mode() gen.Mode { return gen.Entity }

// Lookup implements gen.Target.
func (*Rust) Lookup(t *schema.Type, current []string) (string, error) {
	return gen.NewLookup(rustSyntax(), gen.Entity, current).Render(t)
}

// LookupRef renders the borrowed form of t used for parameters.
func (r *Rust) LookupRef(t *schema.Type, current []string) (string, error) {
	switch {
	case t == nil:
		return r.Lookup(t, current)
	case t.Kind == schema.KindString:
		return "&str", nil
	case t.Kind == schema.KindOptional:
		inner, err := r.LookupRef(t.Inner, current)
		if err != nil {
			return "", err
		}
		return "Option<" + inner + ">", nil
	}
	owned, err := r.Lookup(t, current)
	if err != nil {
		return "", err
	}
	return "&" + owned, nil
}

func rustSyntax() *gen.Syntax {
	return &gen.Syntax{
		Target: "rust",
		Style:  gen.PathStyleAncestor,
		Path:   gen.PathOptions{Separator: "::", Ancestor: "super", Reserved: rustReservedModules},
		Scalars: map[schema.Kind]string{
			schema.KindBool:     "bool",
			schema.KindInt:      "i32",
			schema.KindInt64:    "i64",
			schema.KindFloat32:  "f32",
			schema.KindFloat64:  "f64",
			schema.KindDecimal:  "BigDecimal",
			schema.KindString:   "String",
			schema.KindObjectID: "ObjectId",
			schema.KindDate:     "NaiveDate",
			schema.KindDateTime: "DateTime<Utc>",
			schema.KindFile:     "File",
			schema.KindAny:      "Value",
		},
		Opaque: map[schema.Kind]string{
			schema.KindUnion:      "Value",
			schema.KindEnumerable: "Value",
		},
		Optional:   func(inner string, _ *schema.Type) string { return "Option<" + inner + ">" },
		Array:      func(elem string, _ *schema.Type) string { return "Vec<" + elem + ">" },
		Dictionary: func(v string) string { return "IndexMap<String, " + v + ">" },
		Tuple:      func(items []string) string { return "(" + strings.Join(items, ", ") + ")" },
		Range:      func(inner string) string { return "Range<" + inner + ">" },
		Generic:    func(name string, args []string) string { return name + "<" + strings.Join(args, ", ") + ">" },
		Namespace:  gen.Snake,
	}
}

type rustFile struct {
	Header string
	Uses   []string
	NS     *namespaceView
}

// Render implements gen.Target.
func (r *Rust) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	c := syntaxConverter(rustSyntax(), gen.Entity)
	c.field = rustIdent
	c.member = gen.Pascal
	c.method = rustIdent
	c.namespace = gen.Snake
	c.request = func(item *gen.RequestItem, v *requestView, current []string) error {
		input, err := r.LookupRef(item.Input, current)
		if err != nil {
			return err
		}
		v.Input = input
		return nil
	}
	root, err := c.build(rc.Outline)
	if err != nil {
		return nil, err
	}
	var (
		files []*gen.File
		walk  func(o *gen.Outline, v *namespaceView, dir string) error
	)
	walk = func(o *gen.Outline, v *namespaceView, dir string) error {
		for _, child := range v.Children {
			if alias, ok := rustReservedModules[child.Name]; ok && o.IsMain {
				child.Ident = alias
			}
		}
		file := path.Join(dir, "mod.rs")
		if !o.IsMain && len(o.Children) == 0 {
			file = dir + ".rs"
		}
		content, err := execute(rustTemplates.Lookup("mod.rs.tmpl"), &rustFile{
			Header: rc.Header,
			Uses:   rustUses(nodeCapabilities(o)),
			NS:     v,
		})
		if err != nil {
			return err
		}
		files = append(files, &gen.File{Path: file, Content: content})
		for i, child := range o.Children {
			if err := walk(child, v.Children[i], path.Join(dir, v.Children[i].Ident)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rc.Outline, root, ""); err != nil {
		return nil, err
	}
	files = append(files, &gen.File{
		Path:       "Cargo.toml",
		Patch:      manifest.Cargo(rustDependencies(rc.Capabilities)...),
		FindUpward: true,
	})
	return files, nil
}

// nodeCapabilities folds the types declared by o itself.
func nodeCapabilities(o *gen.Outline) gen.Capabilities {
	var c gen.Capabilities
	for _, t := range o.Types() {
		c |= gen.TypeCapabilities(t)
	}
	return c
}

func rustUses(c gen.Capabilities) []string {
	uses := []string{
		"serde::{Deserialize, Serialize}",
		"serde_json::Value",
		"indexmap::IndexMap",
		"std::ops::Range",
	}
	if c.Has(gen.CapDecimal) {
		uses = append(uses, "bigdecimal::BigDecimal")
	}
	if c.Has(gen.CapObjectID) {
		uses = append(uses, "bson::oid::ObjectId")
	}
	switch {
	case c.Has(gen.CapDate | gen.CapDateTime):
		uses = append(uses, "chrono::{DateTime, NaiveDate, Utc}")
	case c.Has(gen.CapDate):
		uses = append(uses, "chrono::NaiveDate")
	case c.Has(gen.CapDateTime):
		uses = append(uses, "chrono::{DateTime, Utc}")
	}
	if c.Has(gen.CapFile) {
		uses = append(uses, "teo::prelude::File")
	}
	return uses
}

func rustDependencies(c gen.Capabilities) []manifest.Dependency {
	deps := []manifest.Dependency{
		{Name: "serde", Version: "1.0", Features: []string{"derive"}},
		{Name: "serde_json", Version: "1.0"},
		{Name: "indexmap", Version: "2.0", Features: []string{"serde"}},
		{Name: "async-trait", Version: "0.1"},
	}
	if c.Has(gen.CapDecimal) {
		deps = append(deps, manifest.Dependency{Name: "bigdecimal", Version: "0.4", Features: []string{"serde"}})
	}
	if c.Has(gen.CapObjectID) {
		deps = append(deps, manifest.Dependency{Name: "bson", Version: "2.7"})
	}
	if c.Has(gen.CapDate) || c.Has(gen.CapDateTime) {
		deps = append(deps, manifest.Dependency{Name: "chrono", Version: "0.4", Features: []string{"serde"}})
	}
	if c.Has(gen.CapFile) {
		deps = append(deps, manifest.Dependency{Name: "teo", Version: "0.3"})
	}
	return deps
}

// rustExtendsField names the flattened field holding an extended struct.
func rustExtendsField(typ string) string {
	name, _, _ := strings.Cut(typ, "<")
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	return rustIdent(name)
}
