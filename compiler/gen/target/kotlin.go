package target

import (
	"strings"
	"text/template"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

var kotlinTemplates = mustParse("kotlin/*.tmpl", template.FuncMap{"serialName": kotlinSerialName})

// Kotlin renders a single Kotlin file with one nested object per namespace.
type Kotlin struct{}

// NewKotlin returns the Kotlin client target.
func NewKotlin() *Kotlin { return &Kotlin{} }

// Name implements gen.Target.
func (*Kotlin) Name() string { return "kotlin" }

// Mode implements gen.Target.
func (*Kotlin) Mode() gen.Mode { return gen.Client }

// Lookup implements gen.Target.
func (*Kotlin) Lookup(t *schema.Type, current []string) (string, error) {
	return gen.NewLookup(kotlinSyntax(), gen.Client, current).Render(t)
}

// kotlinAny is the annotated form of a bare Any field.
const kotlinAny = "@Serializable(with = AnySerializer::class) Any"

func kotlinSyntax() *gen.Syntax {
	return &gen.Syntax{
		Target: "kotlin",
		Style:  gen.PathStyleQualified,
		Path:   gen.PathOptions{Separator: "."},
		Scalars: map[schema.Kind]string{
			schema.KindNull:     "Nothing?",
			schema.KindBool:     "Boolean",
			schema.KindInt:      "Int",
			schema.KindInt64:    "Long",
			schema.KindFloat32:  "Float",
			schema.KindFloat64:  "Double",
			schema.KindDecimal:  "BigDecimal",
			schema.KindString:   "String",
			schema.KindObjectID: "String",
			schema.KindDate:     "LocalDate",
			schema.KindDateTime: "OffsetDateTime",
		},
		Opaque: map[schema.Kind]string{
			schema.KindUnion:      "JsonElement",
			schema.KindEnumerable: "JsonElement",
		},
		Contextual: func(k schema.Kind, nested bool) (string, bool) {
			if k != schema.KindAny {
				return "", false
			}
			if nested {
				return "JsonElement", true
			}
			return kotlinAny, true
		},
		Optional: func(inner string, _ *schema.Type) string {
			if strings.HasSuffix(inner, "?") {
				return inner
			}
			return inner + "?"
		},
		Array:      func(elem string, _ *schema.Type) string { return "List<" + elem + ">" },
		Dictionary: func(v string) string { return "Map<String, " + v + ">" },
		Generic:    func(name string, args []string) string { return name + "<" + strings.Join(args, ", ") + ">" },
		Namespace:  gen.Pascal,
	}
}

// singleFile is the data of targets rendering every namespace into one file.
type singleFile struct {
	Header       string
	Package      string
	Client       string
	Capabilities gen.Capabilities
	Root         *namespaceView
}

// Has reports if the outline uses the named capability.
func (f *singleFile) Has(name string) bool {
	for _, n := range f.Capabilities.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Render implements gen.Target.
func (k *Kotlin) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	c := syntaxConverter(kotlinSyntax(), gen.Client)
	c.field = kotlinIdent
	c.namespace = gen.Pascal
	c.member = func(m string) string { return kotlinIdent(strings.ToUpper(gen.Snake(m))) }
	root, err := c.build(rc.Outline)
	if err != nil {
		return nil, err
	}
	client := gen.Pascal(rc.ObjectName)
	if root.Root != nil {
		root.Root.Name = client
	}
	content, err := execute(kotlinTemplates.Lookup("client.kt.tmpl"), &singleFile{
		Header:       rc.Header,
		Package:      strings.ToLower(rc.PackageName()),
		Client:       client,
		Capabilities: rc.Capabilities,
		Root:         root,
	})
	if err != nil {
		return nil, err
	}
	return []*gen.File{{Path: client + ".kt", Content: content}}, nil
}

// kotlinSerialName reports if a field needs @SerialName to keep its wire
// name.
func kotlinSerialName(f *fieldView) bool {
	return strings.Trim(f.Ident, "`") != f.Name
}
