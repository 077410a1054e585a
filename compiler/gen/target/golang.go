package target

import (
	"bytes"
	"fmt"
	"go/token"
	"path"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

const (
	decimalPkg = "github.com/shopspring/decimal"
	timePkg    = "time"
)

// Go renders a Go client. Namespaces share one package: each namespace is
// rendered into its own file and its declarations are prefixed with the
// namespace path, since child and parent namespaces reference each other.
type Go struct {
	pkg string
}

// NewGo returns the Go client target. pkg names the generated package and
// defaults to the destination directory name.
func NewGo(pkg string) *Go { return &Go{pkg: pkg} }

// Name implements gen.Target.
func (*Go) Name() string { return "go" }

// Mode implements gen.Target.
func (*Go) Mode() gen.Mode { return gen.Client }

// Lookup implements gen.Target.
func (g *Go) Lookup(t *schema.Type, _ []string) (string, error) {
	code, err := goType(t, false)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%#v", code), nil
}

// goDeclName flattens an absolute declaration path into one identifier.
func goDeclName(decl []string) string {
	var b strings.Builder
	for _, seg := range decl[:len(decl)-1] {
		b.WriteString(gen.Pascal(seg))
	}
	b.WriteString(decl[len(decl)-1])
	return b.String()
}

func goUnsupported(t *schema.Type) error {
	return gen.NewUnresolvableTypeError("go", t.String())
}

// goType renders t as a jennifer type expression. Optional values become
// pointers, except for types that are nil-able already.
func goType(t *schema.Type, nested bool) (*jen.Statement, error) {
	if t == nil {
		return nil, gen.NewUnresolvableTypeError("go", "<nil>")
	}
	switch t.Kind {
	case schema.KindBool:
		return jen.Bool(), nil
	case schema.KindInt:
		return jen.Int32(), nil
	case schema.KindInt64:
		return jen.Int64(), nil
	case schema.KindFloat32:
		return jen.Float32(), nil
	case schema.KindFloat64:
		return jen.Float64(), nil
	case schema.KindDecimal:
		return jen.Qual(decimalPkg, "Decimal"), nil
	case schema.KindString, schema.KindObjectID:
		return jen.String(), nil
	case schema.KindDate:
		return jen.String(), nil
	case schema.KindDateTime:
		return jen.Qual(timePkg, "Time"), nil
	case schema.KindFile:
		return jen.Index().Byte(), nil
	case schema.KindAny, schema.KindUnion, schema.KindEnumerable:
		return jen.Any(), nil
	case schema.KindOptional:
		inner, err := goType(t.Inner, nested)
		if err != nil {
			return nil, err
		}
		switch t.Inner.Kind {
		case schema.KindArray, schema.KindDictionary, schema.KindAny, schema.KindUnion, schema.KindEnumerable, schema.KindFile:
			return inner, nil
		}
		return jen.Op("*").Add(inner), nil
	case schema.KindArray:
		elem, err := goType(t.Inner, true)
		if err != nil {
			return nil, err
		}
		return jen.Index().Add(elem), nil
	case schema.KindDictionary:
		v, err := goType(t.Inner, true)
		if err != nil {
			return nil, err
		}
		return jen.Map(jen.String()).Add(v), nil
	case schema.KindEnumVariant, schema.KindModelObject:
		if len(t.Path) == 0 {
			return nil, gen.NewMalformedReferenceError(t.Kind.String(), "", "empty path")
		}
		return jen.Id(goDeclName(t.Path)), nil
	case schema.KindInterfaceObject, schema.KindStructObject:
		if len(t.Path) == 0 {
			return nil, gen.NewMalformedReferenceError(t.Kind.String(), "", "empty path")
		}
		s := jen.Id(goDeclName(t.Path))
		if len(t.Args) == 0 {
			return s, nil
		}
		args := make([]jen.Code, len(t.Args))
		for i, a := range t.Args {
			arg, err := goType(a, true)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return s.Types(args...), nil
	case schema.KindGenericItem:
		return jen.Id(t.Name), nil
	case schema.KindShapeReference, schema.KindEnumReference, schema.KindDeclaredShape:
		decl, err := gen.ReferencePath(t, gen.Client)
		if err != nil {
			return nil, err
		}
		return jen.Id(goDeclName(decl)), nil
	default:
		// Null, Regex, tuples, ranges and compiler-internal kinds.
		return nil, goUnsupported(t)
	}
}

// Render implements gen.Target.
func (g *Go) Render(rc *gen.RenderContext) ([]*gen.File, error) {
	pkg := g.pkg
	if pkg == "" {
		pkg = goPackageName(rc.PackageName())
	}
	client := gen.Pascal(rc.ObjectName)
	var files []*gen.File
	var err error
	rc.Outline.Walk(func(o *gen.Outline) {
		if err != nil {
			return
		}
		f := jen.NewFile(pkg)
		if rc.Header != "" {
			f.HeaderComment(rc.Header)
		}
		if o.IsMain {
			goRuntime(f)
		}
		if err = goNamespace(f, o, client); err != nil {
			err = fmt.Errorf("namespace %s: %w", strings.Join(o.Path, "."), err)
			return
		}
		var b bytes.Buffer
		if err = f.Render(&b); err != nil {
			return
		}
		name := pkg
		if !o.IsMain {
			name = gen.Snake(strings.Join(o.Path, "_"))
		}
		files = append(files, &gen.File{Path: path.Clean(name + ".go"), Content: b.Bytes()})
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func goPackageName(dir string) string {
	name := strings.ToLower(strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r == ' ' {
			return -1
		}
		return r
	}, dir))
	if !token.IsIdentifier(name) {
		return gen.DefaultObjectName
	}
	return name
}

func goNamespace(f *jen.File, o *gen.Outline, client string) error {
	for _, e := range o.Enums {
		name := goDeclName(e.Path)
		f.Commentf("%s %s", name, goDoc(e.Title, e.Desc))
		f.Type().Id(name).String()
		f.Const().DefsFunc(func(g *jen.Group) {
			for _, m := range e.Members {
				g.Id(name + goIdent(m.Name)).Id(name).Op("=").Lit(m.Name)
			}
		})
	}
	for _, p := range o.PathArguments {
		name := goDeclName(append(append([]string{}, o.Path...), p.Name))
		f.Type().Id(name).StructFunc(func(g *jen.Group) {
			for _, item := range p.Items {
				g.Id(goIdent(item)).String().Tag(map[string]string{"json": item})
			}
		})
		f.Func().Params(jen.Id("a").Id(name)).Id("values").Params().Map(jen.String()).String().Block(
			jen.Return(jen.Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
				for _, item := range p.Items {
					d[jen.Lit(item)] = jen.Id("a").Dot(goIdent(item))
				}
			}))),
		)
	}
	for _, i := range o.Interfaces {
		if err := goStruct(f, i); err != nil {
			return err
		}
	}
	for _, d := range o.Delegates {
		name := d.Name
		if len(d.Path) > 0 {
			name = goDeclName(d.Path)
		} else {
			name = client
		}
		if err := goDelegate(f, name, d, o.IsMain); err != nil {
			return err
		}
	}
	return nil
}

func goDoc(title, desc string) string {
	if desc == "" {
		return "is " + strings.ToLower(title) + "."
	}
	return "is " + strings.ToLower(title) + ". " + desc
}

func goStruct(f *jen.File, i *gen.Interface) error {
	name := goDeclName(i.Path)
	f.Commentf("%s %s", name, goDoc(i.Title, i.Desc))
	var fields []jen.Code
	for _, t := range i.Extends {
		ext, err := goType(t, false)
		if err != nil {
			return err
		}
		fields = append(fields, ext)
	}
	for _, fl := range i.Fields {
		typ, err := goType(fl.Type, false)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", i.Name, fl.Name, err)
		}
		tag := fl.Name
		if fl.Type.IsOptional() {
			tag += ",omitempty"
		}
		fields = append(fields, jen.Id(goIdent(fl.Name)).Add(typ).Tag(map[string]string{"json": tag}))
	}
	decl := f.Type().Id(name)
	if len(i.Generics) > 0 {
		params := make([]jen.Code, len(i.Generics))
		for k, g := range i.Generics {
			params[k] = jen.Id(g).Any()
		}
		decl.Types(params...)
	}
	decl.Struct(fields...)
	return nil
}

func goDelegate(f *jen.File, name string, d *gen.Delegate, main bool) error {
	if main {
		f.Commentf("%s is the client of the API.", name)
	}
	f.Type().Id(name).Struct(jen.Id("runtime").Op("*").Id("Runtime"))
	if main {
		f.Commentf("New%s returns a client sending requests through r.", name)
		f.Func().Id("New"+name).Params(jen.Id("r").Op("*").Id("Runtime")).Op("*").Id(name).Block(
			jen.Return(jen.Op("&").Id(name).Values(jen.Dict{jen.Id("runtime"): jen.Id("r")})),
		)
	}
	recv := jen.Id("d").Op("*").Id(name)
	for _, g := range d.GroupItems {
		typ := goDeclName(g.Path)
		f.Func().Params(recv.Clone()).Id(gen.Pascal(g.PropertyName)).Params().Op("*").Id(typ).Block(
			jen.Return(jen.Op("&").Id(typ).Values(jen.Dict{jen.Id("runtime"): jen.Id("d").Dot("runtime")})),
		)
	}
	for _, n := range d.NamespaceItems {
		typ := goDeclName(n.Path)
		f.Func().Params(recv.Clone()).Id(gen.Pascal(n.PropertyName)).Params().Op("*").Id(typ).Block(
			jen.Return(jen.Op("&").Id(typ).Values(jen.Dict{jen.Id("runtime"): jen.Id("d").Dot("runtime")})),
		)
	}
	for _, r := range d.RequestItems {
		out, err := goType(r.Output, false)
		if err != nil {
			return fmt.Errorf("request %s.%s: %w", name, r.Name, err)
		}
		params := []jen.Code{jen.Id("ctx").Qual("context", "Context")}
		body := jen.Nil()
		if r.HasBodyInput {
			in, err := goType(r.Input, false)
			if err != nil {
				return fmt.Errorf("request %s.%s: %w", name, r.Name, err)
			}
			params = append(params, jen.Id("body").Add(in))
			body = jen.Id("body")
		}
		args := jen.Nil()
		if r.HasCustomURLArgs {
			if len(r.CustomURLArgsPath) > 0 {
				params = append(params, jen.Id("pathArgs").Id(goDeclName(r.CustomURLArgsPath)))
				args = jen.Id("pathArgs").Dot("values").Call()
			} else {
				params = append(params, jen.Id("pathArgs").Map(jen.String()).String())
				args = jen.Id("pathArgs")
			}
		}
		f.Func().Params(recv.Clone()).Id(goIdent(r.Name)).Params(params...).Params(out.Clone(), jen.Error()).Block(
			jen.Var().Id("out").Add(out.Clone()),
			jen.Err().Op(":=").Id("d").Dot("runtime").Dot("Send").Call(
				jen.Id("ctx"), jen.Lit(r.Method), jen.Lit(r.Path), body, args, jen.Op("&").Id("out"),
			),
			jen.Return(jen.Id("out"), jen.Err()),
		)
	}
	return nil
}

// goRuntime declares the HTTP runtime shared by every delegate.
func goRuntime(f *jen.File) {
	f.Comment("Runtime sends requests to the API server.")
	f.Type().Id("Runtime").Struct(
		jen.Id("Host").String(),
		jen.Id("Header").Qual("net/http", "Header"),
		jen.Id("Client").Op("*").Qual("net/http", "Client"),
	)
	f.Var().Id("pathArgument").Op("=").Qual("regexp", "MustCompile").Call(jen.Lit(`(:|\*)(\w+)`))
	f.Comment("Send encodes body, fills the path arguments and decodes the response into out.")
	f.Func().Params(jen.Id("r").Op("*").Id("Runtime")).Id("Send").Params(
		jen.Id("ctx").Qual("context", "Context"),
		jen.List(jen.Id("method"), jen.Id("path")).String(),
		jen.Id("body").Any(),
		jen.Id("args").Map(jen.String()).String(),
		jen.Id("out").Any(),
	).Error().Block(
		jen.Id("path").Op("=").Id("pathArgument").Dot("ReplaceAllStringFunc").Call(jen.Id("path"), jen.Func().Params(jen.Id("m").String()).String().Block(
			jen.Return(jen.Qual("net/url", "PathEscape").Call(jen.Id("args").Index(jen.Id("m").Index(jen.Lit(1), jen.Empty())))),
		)),
		jen.Var().Id("reader").Qual("io", "Reader"),
		jen.If(jen.Id("body").Op("!=").Nil()).Block(
			jen.List(jen.Id("b"), jen.Err()).Op(":=").Qual("encoding/json", "Marshal").Call(jen.Id("body")),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
			jen.Id("reader").Op("=").Qual("bytes", "NewReader").Call(jen.Id("b")),
		),
		jen.List(jen.Id("req"), jen.Err()).Op(":=").Qual("net/http", "NewRequestWithContext").Call(
			jen.Id("ctx"), jen.Id("method"),
			jen.Qual("strings", "TrimSuffix").Call(jen.Id("r").Dot("Host"), jen.Lit("/")).Op("+").Lit("/").Op("+").Qual("strings", "TrimPrefix").Call(jen.Id("path"), jen.Lit("/")),
			jen.Id("reader"),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.For(jen.List(jen.Id("k"), jen.Id("v")).Op(":=").Range().Id("r").Dot("Header")).Block(
			jen.Id("req").Dot("Header").Index(jen.Id("k")).Op("=").Id("v"),
		),
		jen.If(jen.Id("body").Op("!=").Nil()).Block(
			jen.Id("req").Dot("Header").Dot("Set").Call(jen.Lit("Content-Type"), jen.Lit("application/json")),
		),
		jen.Id("client").Op(":=").Id("r").Dot("Client"),
		jen.If(jen.Id("client").Op("==").Nil()).Block(
			jen.Id("client").Op("=").Qual("net/http", "DefaultClient"),
		),
		jen.List(jen.Id("resp"), jen.Err()).Op(":=").Id("client").Dot("Do").Call(jen.Id("req")),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Defer().Id("resp").Dot("Body").Dot("Close").Call(),
		jen.If(jen.Id("resp").Dot("StatusCode").Op(">=").Lit(400)).Block(
			jen.List(jen.Id("msg"), jen.Id("_")).Op(":=").Qual("io", "ReadAll").Call(jen.Id("resp").Dot("Body")),
			jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("%s %s: %s: %s"), jen.Id("method"), jen.Id("path"), jen.Id("resp").Dot("Status"), jen.Id("msg"))),
		),
		jen.Return(jen.Qual("encoding/json", "NewDecoder").Call(jen.Id("resp").Dot("Body")).Dot("Decode").Call(jen.Id("out"))),
	)
}
