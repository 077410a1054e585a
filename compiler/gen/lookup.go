package gen

import (
	"slices"

	"github.com/syssam/teogen/schema"
)

// Syntax is the per-target table that drives the type lookup engine.
// A nil hook or a missing table entry means the target cannot express
// the corresponding kind, and the lookup fails with an UnresolvableTypeError.
type Syntax struct {
	// Target names the target in errors.
	Target string
	// Style and Path control how references to other namespaces render.
	Style PathStyle
	Path  PathOptions
	// Scalars maps payload-free kinds to their token.
	Scalars map[schema.Kind]string
	// Opaque maps kinds to a fixed token regardless of their payload.
	Opaque map[schema.Kind]string
	// Contextual overrides scalar tokens depending on whether the type is
	// nested in a container or generic argument.
	Contextual func(k schema.Kind, nested bool) (string, bool)

	Optional   func(inner string, t *schema.Type) string
	Array      func(elem string, t *schema.Type) string
	Dictionary func(value string) string
	Tuple      func(items []string) string
	Range      func(inner string) string
	Union      func(items []string, types []*schema.Type) string
	Enumerable func(inner string) string
	Generic    func(name string, args []string) string

	// NullableUnion renders a two-branch union with one Null branch through
	// Optional. Other unions still go through Union.
	NullableUnion bool

	// Namespace rewrites the namespace segments of reference paths, e.g. to
	// snake_case module names.
	Namespace func(segment string) string
}

// Lookup renders schema types into target syntax as seen from one namespace.
type Lookup struct {
	syntax  *Syntax
	mode    Mode
	current []string
}

// NewLookup returns a lookup for the namespace at current. A nil current
// renders every reference with its absolute path.
func NewLookup(s *Syntax, mode Mode, current []string) *Lookup {
	return &Lookup{syntax: s, mode: mode, current: current}
}

// Render renders t.
func (l *Lookup) Render(t *schema.Type) (string, error) {
	return l.render(t, false)
}

// RenderNested renders t as if it appeared inside a container.
func (l *Lookup) RenderNested(t *schema.Type) (string, error) {
	return l.render(t, true)
}

// Reference renders the absolute declaration path decl.
func (l *Lookup) Reference(decl []string) (string, error) {
	s := l.syntax
	cur := l.current
	if s.Namespace != nil {
		decl = mapNamespace(decl, s.Namespace)
		cur = mapNamespace(append(slices.Clone(cur), ""), s.Namespace)
		cur = cur[:len(cur)-1]
	}
	str, _, err := RenderReference(decl, cur, s.Style, s.Path)
	return str, err
}

func mapNamespace(path []string, fn func(string) string) []string {
	out := slices.Clone(path)
	for i := 0; i < len(out)-1; i++ {
		out[i] = fn(out[i])
	}
	return out
}

func (l *Lookup) unsupported(t *schema.Type) error {
	return NewUnresolvableTypeError(l.syntax.Target, t.String())
}

func (l *Lookup) render(t *schema.Type, nested bool) (string, error) {
	s := l.syntax
	if t == nil {
		return "", NewUnresolvableTypeError(s.Target, "<nil>")
	}
	if tok, ok := s.Opaque[t.Kind]; ok {
		return tok, nil
	}
	switch t.Kind {
	case schema.KindNull, schema.KindBool, schema.KindInt, schema.KindInt64,
		schema.KindFloat32, schema.KindFloat64, schema.KindDecimal, schema.KindString,
		schema.KindObjectID, schema.KindDate, schema.KindDateTime, schema.KindFile,
		schema.KindRegex, schema.KindAny:
		if s.Contextual != nil {
			if tok, ok := s.Contextual(t.Kind, nested); ok {
				return tok, nil
			}
		}
		if tok, ok := s.Scalars[t.Kind]; ok {
			return tok, nil
		}
		return "", l.unsupported(t)
	case schema.KindUndetermined, schema.KindIgnored, schema.KindFieldType, schema.KindFieldName,
		schema.KindKeyword, schema.KindModel, schema.KindDataSet, schema.KindPipeline:
		return "", l.unsupported(t)
	case schema.KindOptional:
		if s.Optional == nil {
			return "", l.unsupported(t)
		}
		inner, err := l.render(t.Inner, nested)
		if err != nil {
			return "", err
		}
		return s.Optional(inner, t.Inner), nil
	case schema.KindArray:
		if s.Array == nil {
			return "", l.unsupported(t)
		}
		elem, err := l.render(t.Inner, true)
		if err != nil {
			return "", err
		}
		return s.Array(elem, t.Inner), nil
	case schema.KindDictionary:
		if s.Dictionary == nil {
			return "", l.unsupported(t)
		}
		v, err := l.render(t.Inner, true)
		if err != nil {
			return "", err
		}
		return s.Dictionary(v), nil
	case schema.KindRange:
		if s.Range == nil {
			return "", l.unsupported(t)
		}
		inner, err := l.render(t.Inner, true)
		if err != nil {
			return "", err
		}
		return s.Range(inner), nil
	case schema.KindEnumerable:
		if s.Enumerable == nil {
			return "", l.unsupported(t)
		}
		inner, err := l.render(t.Inner, true)
		if err != nil {
			return "", err
		}
		return s.Enumerable(inner), nil
	case schema.KindTuple:
		if s.Tuple == nil {
			return "", l.unsupported(t)
		}
		items, err := l.renderAll(t.Items, true)
		if err != nil {
			return "", err
		}
		return s.Tuple(items), nil
	case schema.KindUnion:
		if inner := nullOr(t); s.NullableUnion && inner != nil && s.Optional != nil {
			v, err := l.render(inner, nested)
			if err != nil {
				return "", err
			}
			return s.Optional(v, inner), nil
		}
		if s.Union == nil {
			return "", l.unsupported(t)
		}
		items, err := l.renderAll(t.Items, nested)
		if err != nil {
			return "", err
		}
		return s.Union(items, t.Items), nil
	case schema.KindEnumVariant, schema.KindModelObject:
		if len(t.Path) == 0 {
			return "", NewMalformedReferenceError(t.Kind.String(), "", "empty path")
		}
		return l.Reference(t.Path)
	case schema.KindInterfaceObject, schema.KindStructObject:
		if len(t.Path) == 0 {
			return "", NewMalformedReferenceError(t.Kind.String(), "", "empty path")
		}
		name, err := l.Reference(t.Path)
		if err != nil || len(t.Args) == 0 {
			return name, err
		}
		if s.Generic == nil {
			return "", l.unsupported(t)
		}
		args, err := l.renderAll(t.Args, true)
		if err != nil {
			return "", err
		}
		return s.Generic(name, args), nil
	case schema.KindGenericItem:
		return t.Name, nil
	case schema.KindShapeReference, schema.KindEnumReference, schema.KindDeclaredShape:
		decl, err := ReferencePath(t, l.mode)
		if err != nil {
			return "", err
		}
		return l.Reference(decl)
	default:
		return "", l.unsupported(t)
	}
}

func (l *Lookup) renderAll(ts []*schema.Type, nested bool) ([]string, error) {
	out := make([]string, len(ts))
	for i, t := range ts {
		s, err := l.render(t, nested)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// nullOr returns T when u is the union Null | T or T | Null.
func nullOr(u *schema.Type) *schema.Type {
	if len(u.Items) != 2 {
		return nil
	}
	switch {
	case u.Items[0].IsNull() && !u.Items[1].IsNull():
		return u.Items[1]
	case u.Items[1].IsNull() && !u.Items[0].IsNull():
		return u.Items[0]
	}
	return nil
}
