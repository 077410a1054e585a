package schema

import "slices"

// Namespace is a node of the schema tree. Every slice preserves declaration
// order, which is the order generated output follows.
type Namespace struct {
	Name               string          `json:"name" yaml:"name" msgpack:"name"`
	Path               []string        `json:"path" yaml:"path" msgpack:"path"`
	Namespaces         []*Namespace    `json:"namespaces,omitempty" yaml:"namespaces,omitempty" msgpack:"namespaces,omitempty"`
	Models             []*Model        `json:"models,omitempty" yaml:"models,omitempty" msgpack:"models,omitempty"`
	Enums              []*Enum         `json:"enums,omitempty" yaml:"enums,omitempty" msgpack:"enums,omitempty"`
	Interfaces         []*Interface    `json:"interfaces,omitempty" yaml:"interfaces,omitempty" msgpack:"interfaces,omitempty"`
	HandlerGroups      []*HandlerGroup `json:"handlerGroups,omitempty" yaml:"handlerGroups,omitempty" msgpack:"handlerGroups,omitempty"`
	ModelHandlerGroups []*HandlerGroup `json:"modelHandlerGroups,omitempty" yaml:"modelHandlerGroups,omitempty" msgpack:"modelHandlerGroups,omitempty"`
	Handlers           []*Handler      `json:"handlers,omitempty" yaml:"handlers,omitempty" msgpack:"handlers,omitempty"`
}

// IsMain reports if ns is the schema root.
func (ns *Namespace) IsMain() bool { return len(ns.Path) == 0 }

// IsStd reports if ns is the standard library namespace.
func (ns *Namespace) IsStd() bool { return len(ns.Path) == 1 && ns.Path[0] == "std" }

// Child returns the direct child namespace with the given name.
func (ns *Namespace) Child(name string) *Namespace {
	for _, c := range ns.Namespaces {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Lookup returns the descendant namespace at path, relative to ns.
func (ns *Namespace) Lookup(path []string) *Namespace {
	cur := ns
	for _, p := range path {
		if cur = cur.Child(p); cur == nil {
			return nil
		}
	}
	return cur
}

// InterfaceAt returns the interface declared at the absolute path, searching
// from ns as the root.
func (ns *Namespace) InterfaceAt(path []string) *Interface {
	if len(path) == 0 {
		return nil
	}
	owner := ns.Lookup(path[:len(path)-1])
	if owner == nil {
		return nil
	}
	for _, i := range owner.Interfaces {
		if i.Name == path[len(path)-1] {
			return i
		}
	}
	return nil
}

// ModelAt returns the model declared at the absolute path, searching from
// ns as the root.
func (ns *Namespace) ModelAt(path []string) *Model {
	if len(path) == 0 {
		return nil
	}
	owner := ns.Lookup(path[:len(path)-1])
	if owner == nil {
		return nil
	}
	for _, m := range owner.Models {
		if m.Name == path[len(path)-1] {
			return m
		}
	}
	return nil
}

// ModelHandlerGroup returns the handler group bound to the named model.
func (ns *Namespace) ModelHandlerGroup(model string) *HandlerGroup {
	for _, g := range ns.ModelHandlerGroups {
		if g.Name == model {
			return g
		}
	}
	return nil
}

// Walk visits ns and its descendants depth-first in declaration order.
// Returning false from fn stops the descent into that namespace.
func (ns *Namespace) Walk(fn func(*Namespace) bool) {
	if !fn(ns) {
		return
	}
	for _, c := range ns.Namespaces {
		c.Walk(fn)
	}
}

// CollectEnums returns every enum in the tree accepted by filter, in walk order.
func (ns *Namespace) CollectEnums(filter func(*Enum) bool) []*Enum {
	var enums []*Enum
	ns.Walk(func(n *Namespace) bool {
		for _, e := range n.Enums {
			if filter == nil || filter(e) {
				enums = append(enums, e)
			}
		}
		return true
	})
	return enums
}

// CollectModels returns every model in the tree accepted by filter, in walk order.
func (ns *Namespace) CollectModels(filter func(*Model) bool) []*Model {
	var models []*Model
	ns.Walk(func(n *Namespace) bool {
		for _, m := range n.Models {
			if filter == nil || filter(m) {
				models = append(models, m)
			}
		}
		return true
	})
	return models
}

// Model is a persisted entity. The compiler attaches the synthesized shapes
// derived from it in Shapes.
type Model struct {
	Name             string           `json:"name" yaml:"name" msgpack:"name"`
	Path             []string         `json:"path" yaml:"path" msgpack:"path"`
	Title            string           `json:"title,omitempty" yaml:"title,omitempty" msgpack:"title,omitempty"`
	Desc             string           `json:"desc,omitempty" yaml:"desc,omitempty" msgpack:"desc,omitempty"`
	GenerateClient   bool             `json:"generateClient" yaml:"generateClient" msgpack:"generateClient"`
	GenerateEntity   bool             `json:"generateEntity" yaml:"generateEntity" msgpack:"generateEntity"`
	SynthesizeShapes bool             `json:"synthesizeShapes" yaml:"synthesizeShapes" msgpack:"synthesizeShapes"`
	PrimaryIndex     []string         `json:"primaryIndex,omitempty" yaml:"primaryIndex,omitempty" msgpack:"primaryIndex,omitempty"`
	BuiltinHandlers  []string         `json:"builtinHandlers,omitempty" yaml:"builtinHandlers,omitempty" msgpack:"builtinHandlers,omitempty"`
	Shapes           []*ShapeEntry    `json:"shapes,omitempty" yaml:"shapes,omitempty" msgpack:"shapes,omitempty"`
	DeclaredShapes   []*DeclaredShape `json:"declaredShapes,omitempty" yaml:"declaredShapes,omitempty" msgpack:"declaredShapes,omitempty"`
}

// Object returns the ModelObject type referencing m.
func (m *Model) Object() *Type { return ModelObject(slices.Clone(m.Path)...) }

// HasBuiltinHandler reports if the model exposes the named built-in action.
func (m *Model) HasBuiltinHandler(action string) bool {
	return slices.Contains(m.BuiltinHandlers, action)
}

// ShapeEntry is one slot of a model's synthesized shape cache. Exactly one
// of Shape, Union and Enum is set. Name is a ShapeKind for Shape and Union
// entries and an EnumKind for Enum entries.
type ShapeEntry struct {
	Name    string           `json:"name" yaml:"name" msgpack:"name"`
	Without string           `json:"without,omitempty" yaml:"without,omitempty" msgpack:"without,omitempty"`
	Shape   *Shape           `json:"shape,omitempty" yaml:"shape,omitempty" msgpack:"shape,omitempty"`
	Union   []*Shape         `json:"union,omitempty" yaml:"union,omitempty" msgpack:"union,omitempty"`
	Enum    *SynthesizedEnum `json:"enum,omitempty" yaml:"enum,omitempty" msgpack:"enum,omitempty"`
}

// Shape is an ordered record of fields.
type Shape struct {
	Fields []*Field `json:"fields" yaml:"fields" msgpack:"fields"`
}

// SynthesizedEnum lists the members of a compiler-synthesized enum.
type SynthesizedEnum struct {
	Members []string `json:"members" yaml:"members" msgpack:"members"`
}

// DeclaredShape is a user-declared shape attached to a model.
type DeclaredShape struct {
	Path  []string `json:"path" yaml:"path" msgpack:"path"`
	Shape *Shape   `json:"shape" yaml:"shape" msgpack:"shape"`
}

// Enum is a user-declared enumeration.
type Enum struct {
	Name      string    `json:"name" yaml:"name" msgpack:"name"`
	Path      []string  `json:"path" yaml:"path" msgpack:"path"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty" msgpack:"title,omitempty"`
	Desc      string    `json:"desc,omitempty" yaml:"desc,omitempty" msgpack:"desc,omitempty"`
	Interface bool      `json:"interface,omitempty" yaml:"interface,omitempty" msgpack:"interface,omitempty"`
	Option    bool      `json:"option,omitempty" yaml:"option,omitempty" msgpack:"option,omitempty"`
	Members   []*Member `json:"members" yaml:"members" msgpack:"members"`
}

// Member is one value of an Enum.
type Member struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" msgpack:"title,omitempty"`
	Desc  string `json:"desc,omitempty" yaml:"desc,omitempty" msgpack:"desc,omitempty"`
}

// Interface is a user-declared structural type.
type Interface struct {
	Name     string   `json:"name" yaml:"name" msgpack:"name"`
	Path     []string `json:"path" yaml:"path" msgpack:"path"`
	Title    string   `json:"title,omitempty" yaml:"title,omitempty" msgpack:"title,omitempty"`
	Desc     string   `json:"desc,omitempty" yaml:"desc,omitempty" msgpack:"desc,omitempty"`
	Generics []string `json:"generics,omitempty" yaml:"generics,omitempty" msgpack:"generics,omitempty"`
	Extends  []*Type  `json:"extends,omitempty" yaml:"extends,omitempty" msgpack:"extends,omitempty"`
	Fields   []*Field `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
}

// Field is a named, typed member of an Interface or Shape.
type Field struct {
	Name  string `json:"name" yaml:"name" msgpack:"name"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" msgpack:"title,omitempty"`
	Desc  string `json:"desc,omitempty" yaml:"desc,omitempty" msgpack:"desc,omitempty"`
	Type  *Type  `json:"type" yaml:"type" msgpack:"type"`
}

// Handler is a custom request endpoint.
type Handler struct {
	Name         string   `json:"name" yaml:"name" msgpack:"name"`
	Path         []string `json:"path" yaml:"path" msgpack:"path"`
	Input        *Type    `json:"input" yaml:"input" msgpack:"input"`
	Output       *Type    `json:"output" yaml:"output" msgpack:"output"`
	Method       string   `json:"method,omitempty" yaml:"method,omitempty" msgpack:"method,omitempty"`
	URL          string   `json:"url,omitempty" yaml:"url,omitempty" msgpack:"url,omitempty"`
	IgnorePrefix bool     `json:"ignorePrefix,omitempty" yaml:"ignorePrefix,omitempty" msgpack:"ignorePrefix,omitempty"`
	Format       string   `json:"format,omitempty" yaml:"format,omitempty" msgpack:"format,omitempty"`
	NonAPI       bool     `json:"nonapi,omitempty" yaml:"nonapi,omitempty" msgpack:"nonapi,omitempty"`
	Interface    string   `json:"interface,omitempty" yaml:"interface,omitempty" msgpack:"interface,omitempty"`
}

// HandlerGroup groups custom handlers under a name. Groups in
// Namespace.ModelHandlerGroups carry the name of the model they extend.
type HandlerGroup struct {
	Name     string     `json:"name" yaml:"name" msgpack:"name"`
	Path     []string   `json:"path" yaml:"path" msgpack:"path"`
	Handlers []*Handler `json:"handlers,omitempty" yaml:"handlers,omitempty" msgpack:"handlers,omitempty"`
}
