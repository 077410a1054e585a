package load

import (
	"fmt"
	"slices"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

// Normalize derives the paths a hand-written schema may omit: every
// namespace and declaration without a path gets its parent path plus its
// name.
func Normalize(ns *schema.Namespace) {
	for _, m := range ns.Models {
		if m != nil && len(m.Path) == 0 {
			m.Path = child(ns.Path, m.Name)
		}
	}
	for _, e := range ns.Enums {
		if e != nil && len(e.Path) == 0 {
			e.Path = child(ns.Path, e.Name)
		}
	}
	for _, i := range ns.Interfaces {
		if i != nil && len(i.Path) == 0 {
			i.Path = child(ns.Path, i.Name)
		}
	}
	for _, groups := range [][]*schema.HandlerGroup{ns.HandlerGroups, ns.ModelHandlerGroups} {
		for _, g := range groups {
			if g == nil {
				continue
			}
			if len(g.Path) == 0 {
				g.Path = child(ns.Path, g.Name)
			}
			for _, h := range g.Handlers {
				if h != nil && len(h.Path) == 0 {
					h.Path = child(g.Path, h.Name)
				}
			}
		}
	}
	for _, h := range ns.Handlers {
		if h != nil && len(h.Path) == 0 {
			h.Path = child(ns.Path, h.Name)
		}
	}
	for _, c := range ns.Namespaces {
		if c == nil {
			continue
		}
		if len(c.Path) == 0 {
			c.Path = child(ns.Path, c.Name)
		}
		Normalize(c)
	}
}

func child(parent []string, name string) []string {
	return append(slices.Clone(parent), name)
}

// Validate checks the path invariants of the tree and the well-formedness
// of every type in it.
func Validate(root *schema.Namespace) error {
	if len(root.Path) != 0 {
		return gen.NewSchemaError(root.Path, "the root namespace must have an empty path", nil)
	}
	v := &validator{}
	v.namespace(root)
	return v.err
}

// ValidateType checks the well-formedness of a standalone type.
func ValidateType(t *schema.Type) error {
	v := &validator{}
	v.typ(nil, t)
	return v.err
}

type validator struct {
	err error
}

func (v *validator) fail(path []string, format string, args ...any) {
	if v.err == nil {
		v.err = gen.NewSchemaError(path, fmt.Sprintf(format, args...), nil)
	}
}

// declared checks that path is parent plus name, and that name is unique
// among the declarations of its namespace.
func (v *validator) declared(seen map[string]bool, parent, path []string, name string) {
	if name == "" {
		v.fail(path, "missing name")
		return
	}
	if !slices.Equal(path, child(parent, name)) {
		v.fail(path, "path does not match the declaration %q under %v", name, parent)
		return
	}
	if seen != nil {
		if seen[name] {
			v.fail(path, "duplicate declaration %q", name)
		}
		seen[name] = true
	}
}

func (v *validator) namespace(ns *schema.Namespace) {
	seen := make(map[string]bool)
	for _, m := range ns.Models {
		if m == nil {
			v.fail(ns.Path, "missing model")
			continue
		}
		v.declared(seen, ns.Path, m.Path, m.Name)
		for _, s := range m.Shapes {
			if s == nil {
				v.fail(m.Path, "missing shape entry")
				continue
			}
			if s.Shape == nil && s.Enum == nil && len(s.Union) == 0 {
				v.fail(m.Path, "shape %q has no content", s.Name)
			}
			if s.Shape != nil {
				v.fields(m.Path, s.Shape.Fields)
			}
			for _, u := range s.Union {
				if u == nil {
					v.fail(m.Path, "shape %q has a missing union member", s.Name)
					continue
				}
				v.fields(m.Path, u.Fields)
			}
		}
		for _, d := range m.DeclaredShapes {
			if d == nil || len(d.Path) == 0 || d.Shape == nil {
				v.fail(m.Path, "declared shape without path or content")
				continue
			}
			v.fields(m.Path, d.Shape.Fields)
		}
	}
	for _, e := range ns.Enums {
		if e == nil {
			v.fail(ns.Path, "missing enum")
			continue
		}
		v.declared(seen, ns.Path, e.Path, e.Name)
		members := make(map[string]bool, len(e.Members))
		for _, mem := range e.Members {
			if mem == nil {
				v.fail(e.Path, "missing member")
				continue
			}
			if members[mem.Name] {
				v.fail(e.Path, "duplicate member %q", mem.Name)
			}
			members[mem.Name] = true
		}
	}
	for _, i := range ns.Interfaces {
		if i == nil {
			v.fail(ns.Path, "missing interface")
			continue
		}
		v.declared(seen, ns.Path, i.Path, i.Name)
		for _, ext := range i.Extends {
			if ext == nil || ext.Kind != schema.KindInterfaceObject {
				v.fail(i.Path, "interfaces can only extend interfaces")
				continue
			}
			v.typ(i.Path, ext)
		}
		v.fields(i.Path, i.Fields)
	}
	v.groups(ns.Path, ns.HandlerGroups)
	v.groups(ns.Path, ns.ModelHandlerGroups)
	v.handlers(ns.Path, ns.Handlers)
	children := make(map[string]bool)
	for _, c := range ns.Namespaces {
		if c == nil {
			v.fail(ns.Path, "missing namespace")
			continue
		}
		v.declared(children, ns.Path, c.Path, c.Name)
		v.namespace(c)
	}
}

func (v *validator) groups(parent []string, groups []*schema.HandlerGroup) {
	seen := make(map[string]bool)
	for _, g := range groups {
		if g == nil {
			v.fail(parent, "missing handler group")
			continue
		}
		v.declared(seen, parent, g.Path, g.Name)
		v.handlers(g.Path, g.Handlers)
	}
}

func (v *validator) handlers(parent []string, handlers []*schema.Handler) {
	seen := make(map[string]bool)
	for _, h := range handlers {
		if h == nil {
			v.fail(parent, "missing handler")
			continue
		}
		v.declared(seen, parent, h.Path, h.Name)
		v.typ(h.Path, h.Input)
		v.typ(h.Path, h.Output)
	}
}

func (v *validator) fields(owner []string, fields []*schema.Field) {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f == nil {
			v.fail(owner, "missing field")
			continue
		}
		if f.Name == "" {
			v.fail(owner, "field without name")
			continue
		}
		if seen[f.Name] {
			v.fail(owner, "duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		v.typ(child(owner, f.Name), f.Type)
	}
}

// typ checks that every kind is known and carries the payload it needs.
func (v *validator) typ(at []string, t *schema.Type) {
	if t == nil {
		v.fail(at, "missing type")
		return
	}
	t.Walk(func(t *schema.Type) bool {
		if !t.Kind.Valid() {
			v.fail(at, "unknown type kind %q", string(t.Kind))
			return false
		}
		switch t.Kind {
		case schema.KindOptional, schema.KindArray, schema.KindDictionary, schema.KindRange, schema.KindEnumerable:
			if t.Inner == nil {
				v.fail(at, "%s without inner type", t.Kind)
			}
		case schema.KindTuple, schema.KindUnion:
			if len(t.Items) == 0 || slices.Contains(t.Items, nil) {
				v.fail(at, "empty or incomplete %s", t.Kind)
			}
		case schema.KindEnumVariant, schema.KindModelObject, schema.KindInterfaceObject, schema.KindStructObject:
			if len(t.Path) == 0 {
				v.fail(at, "%s with an empty reference path", t.Kind)
			}
			if slices.Contains(t.Args, nil) {
				v.fail(at, "%s with a missing generic argument", t.Kind)
			}
		case schema.KindGenericItem:
			if t.Name == "" {
				v.fail(at, "generic item without name")
			}
		case schema.KindShapeReference:
			if t.Shape == nil || t.Shape.Owner == nil || t.Shape.Kind == "" {
				v.fail(at, "malformed shape reference")
			}
		case schema.KindEnumReference:
			if t.Enum == nil || t.Enum.Owner == nil || t.Enum.Kind == "" {
				v.fail(at, "malformed enum reference")
			}
		case schema.KindDeclaredShape:
			if len(t.Path) == 0 || t.Owner == nil {
				v.fail(at, "malformed declared shape")
			}
		}
		return v.err == nil
	})
}
