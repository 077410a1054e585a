package target

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/manifest"
	"github.com/syssam/teogen/schema"
)

var dartTemplates = mustParse("dart/*.tmpl", nil)

// dartRuntime is the request runtime declared in the root file.
const dartRuntime = "TeoRuntime"

// Dart renders a Dart client with one index.dart per namespace.
type Dart struct{}

// NewDart returns the Dart client target.
func NewDart() *Dart { return &Dart{} }

// Name implements gen.Target.
func (*Dart) Name() string { return "dart" }

// Mode implements gen.Target.
func (*Dart) Mode() gen.Mode { return gen.Client }

// Lookup implements gen.Target.
func (d *Dart) Lookup(t *schema.Type, current []string) (string, error) {
	return gen.NewLookup(dartSyntax(gen.DefaultObjectName), gen.Client, current).Render(t)
}

func dartPathOptions(objectName string) gen.PathOptions {
	return gen.PathOptions{Separator: ".", ObjectName: objectName, FileName: "index.dart", AliasPrefix: "$"}
}

func dartSyntax(objectName string) *gen.Syntax {
	return &gen.Syntax{
		Target: "dart",
		Style:  gen.PathStyleDirectory,
		Path:   dartPathOptions(objectName),
		Scalars: map[schema.Kind]string{
			schema.KindNull:     "Null",
			schema.KindBool:     "bool",
			schema.KindInt:      "int",
			schema.KindInt64:    "int",
			schema.KindFloat32:  "double",
			schema.KindFloat64:  "double",
			schema.KindDecimal:  "Decimal",
			schema.KindString:   "String",
			schema.KindObjectID: "String",
			schema.KindDate:     "DateTime",
			schema.KindDateTime: "DateTime",
			schema.KindFile:     "File",
			schema.KindAny:      "dynamic",
		},
		Opaque: map[schema.Kind]string{
			schema.KindUnion:      "dynamic",
			schema.KindEnumerable: "dynamic",
		},
		Optional: func(inner string, _ *schema.Type) string {
			if inner == "dynamic" || strings.HasSuffix(inner, "?") {
				return inner
			}
			return inner + "?"
		},
		Array:      func(elem string, _ *schema.Type) string { return "List<" + elem + ">" },
		Dictionary: func(v string) string { return "Map<String, " + v + ">" },
		Generic:    func(name string, args []string) string { return name + "<" + strings.Join(args, ", ") + ">" },
	}
}

type dartFile struct {
	Header     string
	Decimal    bool
	Runtime    string
	ObjectName string
	NS         *namespaceView
}

// Render implements gen.Target.
func (d *Dart) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	s := dartSyntax(rc.ObjectName)
	c := syntaxConverter(s, gen.Client)
	imports := make(map[string]*gen.ImportSet)
	c.reference = func(decl, current []string) (string, error) {
		ref, imp, err := gen.RenderReference(decl, current, s.Style, s.Path)
		if err != nil {
			return "", err
		}
		if imp != nil {
			if err := importSet(imports, current).Add(*imp); err != nil {
				return "", err
			}
		}
		return ref, nil
	}
	c.field = dartIdent
	c.member = func(m string) string { return dartIdent(gen.Camel(m)) }
	c.request = func(r *gen.RequestItem, v *requestView, current []string) error {
		decode, err := dartDecode(r.Output, "json", func(t *schema.Type) (string, error) { return c.lookup(t, current) })
		if err != nil {
			return err
		}
		v.Decode = decode
		return nil
	}
	root, err := c.build(rc.Outline)
	if err != nil {
		return nil, err
	}

	var (
		files []*gen.File
		walk  func(o *gen.Outline, v *namespaceView) error
	)
	walk = func(o *gen.Outline, v *namespaceView) error {
		runtime := dartRuntime
		if !o.IsMain {
			ref, err := c.reference([]string{dartRuntime}, o.Path)
			if err != nil {
				return err
			}
			runtime = ref
		}
		list, err := gen.CollectImports(o, s.Path)
		if err != nil {
			return err
		}
		set := importSet(imports, o.Path)
		for _, imp := range list {
			if err := set.Add(imp); err != nil {
				return err
			}
		}
		v.Imports = set.List()
		if v.Root != nil && o.IsMain {
			v.Root.Name = gen.Pascal(rc.ObjectName)
		}
		content, err := execute(dartTemplates.Lookup("index.dart.tmpl"), &dartFile{
			Header:     rc.Header,
			Decimal:    rc.Capabilities.Has(gen.CapDecimal),
			Runtime:    runtime,
			ObjectName: gen.Pascal(rc.ObjectName),
			NS:         v,
		})
		if err != nil {
			return err
		}
		files = append(files, &gen.File{Path: path.Join(append(slices.Clone(o.Path), "index.dart")...), Content: content})
		for i, child := range o.Children {
			if err := walk(child, v.Children[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(rc.Outline, root); err != nil {
		return nil, err
	}
	deps := []manifest.Dependency{
		{Name: "json_annotation", Version: "^4.8.1"},
		{Name: "http", Version: "^1.1.0"},
	}
	if rc.Capabilities.Has(gen.CapDecimal) {
		deps = append(deps, manifest.Dependency{Name: "decimal", Version: "^2.3.3"})
	}
	files = append(files, &gen.File{Path: "pubspec.yaml", Patch: manifest.Pubspec(deps...), FindUpward: true})
	return files, nil
}

func importSet(m map[string]*gen.ImportSet, current []string) *gen.ImportSet {
	key := strings.Join(current, "/")
	if s, ok := m[key]; ok {
		return s
	}
	s := gen.NewImportSet(current)
	m[key] = s
	return s
}

// dartDecode returns the expression converting the decoded JSON value expr
// into t.
func dartDecode(t *schema.Type, expr string, lookup func(*schema.Type) (string, error)) (string, error) {
	switch t.Kind {
	case schema.KindOptional:
		inner, err := dartDecode(t.Inner, expr, lookup)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s == null ? null : %s", expr, inner), nil
	case schema.KindArray:
		elem, err := dartDecode(t.Inner, "e", lookup)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s as List).map((e) => %s).toList()", expr, elem), nil
	case schema.KindDictionary:
		value, err := dartDecode(t.Inner, "v", lookup)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("(%s as Map<String, dynamic>).map((k, v) => MapEntry(k, %s))", expr, value), nil
	case schema.KindDate, schema.KindDateTime:
		return fmt.Sprintf("DateTime.parse(%s as String)", expr), nil
	case schema.KindDecimal:
		return fmt.Sprintf("Decimal.parse(%s as String)", expr), nil
	case schema.KindEnumVariant, schema.KindEnumReference:
		name, err := lookup(t)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.fromJson(%s as String)", name, expr), nil
	case schema.KindModelObject, schema.KindShapeReference, schema.KindDeclaredShape, schema.KindStructObject:
		name, err := lookup(t)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>)", name, expr), nil
	case schema.KindInterfaceObject:
		name, err := lookup(&schema.Type{Kind: t.Kind, Path: t.Path})
		if err != nil {
			return "", err
		}
		args := make([]string, len(t.Args))
		for i, a := range t.Args {
			arg, err := dartDecode(a, "e", lookup)
			if err != nil {
				return "", err
			}
			args[i] = "(e) => " + arg
		}
		if len(args) == 0 {
			return fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>)", name, expr), nil
		}
		return fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>, %s)", name, expr, strings.Join(args, ", ")), nil
	default:
		name, err := lookup(t)
		if err != nil {
			return "", err
		}
		if name == "dynamic" {
			return expr, nil
		}
		return fmt.Sprintf("%s as %s", expr, name), nil
	}
}
