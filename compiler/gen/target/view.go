package target

import (
	"fmt"
	"strings"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

// The views below are the outline tree with every type expression already
// rendered by a target. Templates only read strings and flags from them.
type (
	namespaceView struct {
		Name       string
		Ident      string
		Path       []string
		IsMain     bool
		IsStd      bool
		Enums      []*enumView
		Interfaces []*interfaceView
		Delegates  []*delegateView
		Root       *delegateView
		PathArgs   []*pathArgsView
		Children   []*namespaceView
		Imports    []gen.Import
	}

	interfaceView struct {
		Name        string
		Title       string
		Desc        string
		Generics    []string
		Extends     []string
		Fields      []*fieldView
		Synthesized bool
		Result      bool
		Model       string
		Shape       string
	}

	fieldView struct {
		// Name is the wire name, Ident the escaped identifier.
		Name     string
		Ident    string
		Title    string
		Desc     string
		Type     string
		Optional bool
	}

	enumView struct {
		Name        string
		Title       string
		Desc        string
		Members     []*memberView
		Synthesized bool
	}

	memberView struct {
		Name  string
		Ident string
		Title string
		Desc  string
	}

	delegateView struct {
		Name       string
		Options    string
		Groups     []*itemView
		Namespaces []*itemView
		Requests   []*requestView
	}

	itemView struct {
		Type     string
		Property string
		Ident    string
	}

	requestView struct {
		Name        string
		Ident       string
		Generic     string
		Method      string
		Path        string
		Input       string
		Output      string
		URLArgs     string
		// Decode is a target expression decoding the response into Output.
		Decode      string
		HasBody     bool
		HasURLArgs  bool
		IsForm      bool
		IsBuiltin   bool
		IsAggregate bool
		IsCount     bool
		IsGroupBy   bool
	}

	pathArgsView struct {
		Name  string
		Items []*fieldView
	}
)

// HasDelegates reports if the root delegate has anything to expose.
func (n *namespaceView) HasDelegates() bool {
	return n.Root != nil && (len(n.Root.Groups) > 0 || len(n.Root.Namespaces) > 0 || len(n.Root.Requests) > 0)
}

// Values renders the member names quoted with q and joined with sep.
func (e *enumView) Values(q, sep string) string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = q + m.Name + q
	}
	return strings.Join(names, sep)
}

// GenericList renders the generic parameters between open and close.
func (i *interfaceView) GenericList(open, close string) string {
	if len(i.Generics) == 0 {
		return ""
	}
	return open + strings.Join(i.Generics, ", ") + close
}

// converter turns an outline tree into views for one target.
type converter struct {
	mode gen.Mode
	// lookup renders a type as seen from the namespace at current.
	lookup func(t *schema.Type, current []string) (string, error)
	// reference renders an absolute declaration path.
	reference func(decl, current []string) (string, error)
	// namespace maps a namespace name to its identifier.
	namespace func(string) string
	// field escapes field and path argument identifiers.
	field func(string) string
	// member escapes enum member identifiers.
	member func(string) string
	// method names request methods.
	method func(string) string
	// request adjusts a rendered request, e.g. for result mode outputs.
	request func(r *gen.RequestItem, v *requestView, current []string) error
}

// syntaxConverter returns a converter rendering through the lookup engine.
func syntaxConverter(s *gen.Syntax, mode gen.Mode) *converter {
	return &converter{
		mode: mode,
		lookup: func(t *schema.Type, current []string) (string, error) {
			return gen.NewLookup(s, mode, current).Render(t)
		},
		reference: func(decl, current []string) (string, error) {
			return gen.NewLookup(s, mode, current).Reference(decl)
		},
	}
}

func apply(fn func(string) string, s string) string {
	if fn == nil {
		return s
	}
	return fn(s)
}

func (c *converter) build(o *gen.Outline) (*namespaceView, error) {
	v := &namespaceView{
		Name:   o.Name,
		Ident:  apply(c.namespace, o.Name),
		Path:   o.Path,
		IsMain: o.IsMain,
		IsStd:  o.IsStd,
	}
	for _, e := range o.Enums {
		v.Enums = append(v.Enums, c.enum(e))
	}
	for _, i := range o.Interfaces {
		iv, err := c.iface(i, o.Path)
		if err != nil {
			return nil, err
		}
		v.Interfaces = append(v.Interfaces, iv)
	}
	for _, d := range o.Delegates {
		dv, err := c.delegate(d, o.Path)
		if err != nil {
			return nil, err
		}
		v.Delegates = append(v.Delegates, dv)
	}
	if n := len(v.Delegates); n > 0 {
		v.Root = v.Delegates[n-1]
		v.Delegates = v.Delegates[:n-1]
	}
	for _, p := range o.PathArguments {
		pv := &pathArgsView{Name: p.Name}
		for _, item := range p.Items {
			pv.Items = append(pv.Items, &fieldView{Name: item, Ident: apply(c.field, item), Title: gen.TitleCase(item)})
		}
		v.PathArgs = append(v.PathArgs, pv)
	}
	for _, child := range o.Children {
		cv, err := c.build(child)
		if err != nil {
			return nil, err
		}
		v.Children = append(v.Children, cv)
	}
	// Namespace delegates are declared only when they expose something.
	if v.Root != nil && len(v.Root.Namespaces) == len(v.Children) {
		var items []*itemView
		for i, cv := range v.Children {
			if cv.HasDelegates() {
				items = append(items, v.Root.Namespaces[i])
			}
		}
		v.Root.Namespaces = items
	}
	return v, nil
}

func (c *converter) enum(e *gen.Enum) *enumView {
	v := &enumView{Name: e.Name, Title: e.Title, Desc: e.Desc, Synthesized: e.Synthesized}
	for _, m := range e.Members {
		v.Members = append(v.Members, &memberView{
			Name:  m.Name,
			Ident: apply(c.member, m.Name),
			Title: m.Title,
			Desc:  m.Desc,
		})
	}
	return v
}

func (c *converter) iface(i *gen.Interface, current []string) (*interfaceView, error) {
	v := &interfaceView{
		Name:        i.Name,
		Title:       i.Title,
		Desc:        i.Desc,
		Generics:    i.Generics,
		Synthesized: i.IsSynthesized(),
		Result:      i.IsOutputResult(),
		Model:       i.ModelName(),
		Shape:       i.Shape,
	}
	for _, t := range i.Extends {
		s, err := c.lookup(t, current)
		if err != nil {
			return nil, err
		}
		v.Extends = append(v.Extends, s)
	}
	for _, f := range i.Fields {
		fv, err := c.fieldOf(f, current)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", i.Name, f.Name, err)
		}
		v.Fields = append(v.Fields, fv)
	}
	return v, nil
}

// fieldOf renders the field type. Optional fields carry the rendered
// optional type; templates that declare optionality with a marker use
// the unwrapped type through Optional.
func (c *converter) fieldOf(f *gen.Field, current []string) (*fieldView, error) {
	s, err := c.lookup(f.Type, current)
	if err != nil {
		return nil, err
	}
	return &fieldView{
		Name:     f.Name,
		Ident:    apply(c.field, f.Name),
		Title:    f.Title,
		Desc:     f.Desc,
		Type:     s,
		Optional: f.Type.IsOptional(),
	}, nil
}

func (c *converter) delegate(d *gen.Delegate, current []string) (*delegateView, error) {
	v := &delegateView{Name: d.Name}
	for _, g := range d.GroupItems {
		ref, err := c.reference(g.Path, current)
		if err != nil {
			return nil, err
		}
		v.Groups = append(v.Groups, &itemView{Type: ref, Property: g.PropertyName, Ident: apply(c.field, g.PropertyName)})
	}
	for _, n := range d.NamespaceItems {
		ref, err := c.reference(n.Path, current)
		if err != nil {
			return nil, err
		}
		v.Namespaces = append(v.Namespaces, &itemView{Type: ref, Property: n.PropertyName, Ident: apply(c.field, n.PropertyName)})
	}
	for _, r := range d.RequestItems {
		rv, err := c.requestOf(r, current)
		if err != nil {
			return nil, fmt.Errorf("request %s.%s: %w", d.Name, r.Name, err)
		}
		v.Requests = append(v.Requests, rv)
	}
	return v, nil
}

func (c *converter) requestOf(r *gen.RequestItem, current []string) (*requestView, error) {
	input, err := c.lookup(r.Input, current)
	if err != nil {
		return nil, err
	}
	output, err := c.lookup(r.Output, current)
	if err != nil {
		return nil, err
	}
	v := &requestView{
		Name:        r.Name,
		Ident:       apply(c.method, r.Name),
		Method:      r.Method,
		Path:        r.Path,
		Input:       input,
		Output:      output,
		HasBody:     r.HasBodyInput,
		HasURLArgs:  r.HasCustomURLArgs,
		IsForm:      r.IsForm,
		IsBuiltin:   r.IsBuiltin,
		IsAggregate: r.IsAggregate,
		IsCount:     r.IsCount,
		IsGroupBy:   r.IsGroupBy,
	}
	if len(r.CustomURLArgsPath) > 0 {
		if v.URLArgs, err = c.reference(r.CustomURLArgsPath, current); err != nil {
			return nil, err
		}
	}
	if c.request != nil {
		if err := c.request(r, v, current); err != nil {
			return nil, err
		}
	}
	return v, nil
}
