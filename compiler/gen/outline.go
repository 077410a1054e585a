package gen

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/syssam/teogen/schema"
)

// Placeholder descriptions of compiler-synthesized declarations.
const (
	synthesizedInterfaceDesc = "This synthesized interface doesn't have a description"
	synthesizedFieldDesc     = "This synthesized field doesn't have a description."
	synthesizedEnumDesc      = "This synthesized enum doesn't have a description."
	synthesizedMemberDesc    = "This synthesized enum member doesn't have a description."
)

// pathArgumentRe matches ":name" and "*name" parameters of a URL template.
var pathArgumentRe = regexp.MustCompile(`(:|\*)(\w+)`)

type (
	// Outline is the language-independent view of one namespace. Every
	// target renders from an Outline tree rather than from the schema.
	Outline struct {
		Name          string
		Path          []string
		IsMain        bool
		IsStd         bool
		Mode          Mode
		Interfaces    []*Interface
		Enums         []*Enum
		Delegates     []*Delegate
		PathArguments []*PathArguments
		Children      []*Outline
	}

	// Interface is a structural declaration: a user interface, a synthesized
	// model shape or a declared shape.
	Interface struct {
		Name     string
		Path     []string
		Title    string
		Desc     string
		Generics []string
		Extends  []*schema.Type
		Fields   []*Field
		// Model is the owning model path of synthesized shapes.
		Model []string
		// Shape is the synthesized shape name, empty for user interfaces.
		Shape string
	}

	// Field is a member of an Interface.
	Field struct {
		Name  string
		Title string
		Desc  string
		Type  *schema.Type
	}

	// Enum is a string enumeration, either user declared or synthesized.
	Enum struct {
		Name        string
		Path        []string
		Title       string
		Desc        string
		Members     []*Member
		Synthesized bool
	}

	// Member is one value of an Enum.
	Member struct {
		Name  string
		Title string
		Desc  string
	}

	// Delegate is a client-side accessor grouping request methods, nested
	// delegates and child namespace delegates.
	Delegate struct {
		Name           string
		Path           []string
		GroupItems     []*GroupItem
		NamespaceItems []*NamespaceItem
		RequestItems   []*RequestItem
	}

	// GroupItem links a delegate to a model or handler group delegate.
	GroupItem struct {
		Name         string
		Path         []string
		PropertyName string
	}

	// NamespaceItem links a delegate to a child namespace delegate.
	NamespaceItem struct {
		Name         string
		Path         []string
		PropertyName string
		IsMain       bool
		IsStd        bool
	}

	// RequestItem is one callable endpoint of a delegate.
	RequestItem struct {
		Name              string
		Input             *schema.Type
		Output            *schema.Type
		Method            string
		Path              string
		HasBodyInput      bool
		HasCustomURLArgs  bool
		CustomURLArgsPath []string
		IsForm            bool
		IsAggregate       bool
		IsCount           bool
		IsGroupBy         bool
		IsBuiltin         bool
	}

	// PathArguments is the typed record of the URL parameters of a handler.
	PathArguments struct {
		Name  string
		Items []string
	}
)

// NewOutline builds the outline of ns and, recursively, of its child
// namespaces. main is the schema root and is consulted for standard
// library declarations.
func NewOutline(ns *schema.Namespace, mode Mode, main *schema.Namespace) (*Outline, error) {
	if mode != Client && mode != Entity {
		return nil, NewConfigError("Mode", mode, "must be client or entity")
	}
	b := &outlineBuilder{mode: mode, main: main}
	return b.build(ns)
}

type outlineBuilder struct {
	mode Mode
	main *schema.Namespace
}

func (b *outlineBuilder) build(ns *schema.Namespace) (*Outline, error) {
	o := &Outline{
		Name:   ns.Name,
		Path:   ns.Path,
		IsMain: ns.IsMain(),
		IsStd:  ns.IsStd(),
		Mode:   b.mode,
	}
	for _, e := range ns.Enums {
		if e.Interface || e.Option {
			continue
		}
		o.Enums = append(o.Enums, declaredEnum(e))
	}
	for _, i := range ns.Interfaces {
		iface, err := b.declaredInterface(i)
		if err != nil {
			return nil, err
		}
		o.Interfaces = append(o.Interfaces, iface)
	}
	sort.SliceStable(o.Interfaces, func(i, j int) bool {
		return last(o.Interfaces[i].Path) < last(o.Interfaces[j].Path)
	})
	for _, m := range ns.Models {
		if !b.mode.Eligible(m) {
			continue
		}
		if err := b.modelShapes(o, m); err != nil {
			return nil, err
		}
	}
	if err := b.delegates(o, ns); err != nil {
		return nil, err
	}
	for _, h := range ns.Handlers {
		o.addPathArguments(h)
	}
	for _, g := range ns.HandlerGroups {
		for _, h := range g.Handlers {
			o.addPathArguments(h)
		}
	}
	for _, g := range ns.ModelHandlerGroups {
		for _, h := range g.Handlers {
			o.addPathArguments(h)
		}
	}
	for _, c := range ns.Namespaces {
		child, err := b.build(c)
		if err != nil {
			return nil, err
		}
		o.Children = append(o.Children, child)
	}
	return o, nil
}

func declaredEnum(e *schema.Enum) *Enum {
	enum := &Enum{
		Name:  e.Name,
		Path:  e.Path,
		Title: e.Title,
		Desc:  e.Desc,
	}
	if enum.Title == "" {
		enum.Title = SentenceCase(e.Name)
	}
	for _, m := range e.Members {
		mem := &Member{Name: m.Name, Title: m.Title, Desc: m.Desc}
		if mem.Title == "" {
			mem.Title = TitleCase(m.Name)
		}
		enum.Members = append(enum.Members, mem)
	}
	return enum
}

func (b *outlineBuilder) declaredInterface(i *schema.Interface) (*Interface, error) {
	iface := &Interface{
		Name:     i.Name,
		Path:     i.Path,
		Title:    i.Title,
		Desc:     i.Desc,
		Generics: i.Generics,
		Extends:  i.Extends,
	}
	if iface.Title == "" {
		iface.Title = SentenceCase(i.Name)
	}
	for _, t := range i.Extends {
		if err := b.check(i.Name, "", t); err != nil {
			return nil, err
		}
	}
	for _, f := range i.Fields {
		if err := b.check(i.Name, f.Name, f.Type); err != nil {
			return nil, err
		}
		field := &Field{Name: f.Name, Title: f.Title, Desc: f.Desc, Type: f.Type}
		if field.Title == "" {
			field.Title = TitleCase(f.Name)
		}
		iface.Fields = append(iface.Fields, field)
	}
	return iface, nil
}

func (b *outlineBuilder) modelShapes(o *Outline, m *schema.Model) error {
	for _, entry := range m.Shapes {
		if entry.Enum != nil {
			name, err := ResolveEnumName(schema.EnumKind(entry.Name), m.Name)
			if err != nil {
				return err
			}
			o.Enums = append(o.Enums, synthesizedEnum(name, m, entry.Enum))
			continue
		}
		var fields []*schema.Field
		switch {
		case entry.Shape != nil:
			fields = entry.Shape.Fields
		case len(entry.Union) > 0:
			fields = mergeShapes(entry.Union)
		default:
			return NewSchemaError(m.Path, "shape entry "+entry.Name+" is empty", nil)
		}
		name, err := ResolveShapeName(schema.ShapeKind(entry.Name), m.Name, entry.Without, b.mode)
		if err != nil {
			return err
		}
		iface, err := b.synthesizedInterface(name, m, fields)
		if err != nil {
			return err
		}
		iface.Shape = entry.Name
		o.Interfaces = append(o.Interfaces, iface)
	}
	for _, d := range m.DeclaredShapes {
		if len(d.Path) == 0 || d.Shape == nil {
			return NewSchemaError(m.Path, "declared shape without path or shape", nil)
		}
		iface, err := b.synthesizedInterface(DeclaredShapeName(d.Path, m.Name), m, d.Shape.Fields)
		if err != nil {
			return err
		}
		o.Interfaces = append(o.Interfaces, iface)
	}
	return nil
}

func (b *outlineBuilder) synthesizedInterface(name string, m *schema.Model, fields []*schema.Field) (*Interface, error) {
	iface := &Interface{
		Name:  name,
		Path:  withLast(m.Path, name),
		Title: SentenceCase(name),
		Desc:  synthesizedInterfaceDesc,
		Model: m.Path,
	}
	for _, f := range fields {
		if err := b.check(m.Name, f.Name, f.Type); err != nil {
			return nil, err
		}
		iface.Fields = append(iface.Fields, &Field{
			Name:  f.Name,
			Title: TitleCase(f.Name),
			Desc:  synthesizedFieldDesc,
			Type:  f.Type,
		})
	}
	return iface, nil
}

func synthesizedEnum(name string, m *schema.Model, e *schema.SynthesizedEnum) *Enum {
	enum := &Enum{
		Name:        name,
		Path:        withLast(m.Path, name),
		Title:       SentenceCase(name),
		Desc:        synthesizedEnumDesc,
		Synthesized: true,
	}
	for _, mem := range e.Members {
		enum.Members = append(enum.Members, &Member{
			Name:  mem,
			Title: TitleCase(mem),
			Desc:  synthesizedMemberDesc,
		})
	}
	return enum
}

// mergeShapes merges the fields of a union of shapes in first-seen order.
// A later field of the same name replaces the earlier type in place. When
// more than one shape contributes, every field becomes optional.
func mergeShapes(shapes []*schema.Shape) []*schema.Field {
	var (
		order        []string
		byName       = make(map[string]*schema.Field)
		contributing int
	)
	for _, s := range shapes {
		if s == nil {
			continue
		}
		contributing++
		for _, f := range s.Fields {
			if _, ok := byName[f.Name]; !ok {
				order = append(order, f.Name)
			}
			byName[f.Name] = f
		}
	}
	fields := make([]*schema.Field, 0, len(order))
	for _, name := range order {
		f := byName[name]
		if contributing > 1 {
			f = &schema.Field{Name: f.Name, Title: f.Title, Desc: f.Desc, Type: f.Type.WrapInOptional()}
		}
		fields = append(fields, f)
	}
	return fields
}

// check rejects types that no target can render: compiler-internal markers,
// unknown kinds and malformed synthesized references.
func (b *outlineBuilder) check(owner, field string, t *schema.Type) error {
	if t == nil {
		return &UnresolvableTypeError{Model: owner, Field: field, Type: "<nil>"}
	}
	var err error
	t.Walk(func(n *schema.Type) bool {
		if err != nil {
			return false
		}
		switch {
		case !n.Kind.Valid(), n.Kind.IsInternal():
			err = &UnresolvableTypeError{Model: owner, Field: field, Type: n.String()}
		case n.Kind.IsReference():
			_, err = ReferencePath(n, b.mode)
		}
		return err == nil
	})
	return err
}

func (b *outlineBuilder) delegates(o *Outline, ns *schema.Namespace) error {
	for _, m := range ns.Models {
		if !b.mode.Eligible(m) || !m.SynthesizeShapes {
			continue
		}
		name := m.Name + "Delegate"
		d := &Delegate{Name: name, Path: withLast(m.Path, name)}
		for _, action := range m.BuiltinHandlers {
			item, err := b.builtinRequest(m, action)
			if err != nil {
				return err
			}
			d.RequestItems = append(d.RequestItems, item)
		}
		if g := ns.ModelHandlerGroup(m.Name); g != nil {
			items, err := b.customRequests(m.Name, ns.Path, g.Handlers)
			if err != nil {
				return err
			}
			d.RequestItems = append(d.RequestItems, items...)
		}
		o.Delegates = append(o.Delegates, d)
	}
	for _, g := range ns.HandlerGroups {
		name := g.Name + "Delegate"
		items, err := b.customRequests(g.Name, ns.Path, g.Handlers)
		if err != nil {
			return err
		}
		o.Delegates = append(o.Delegates, &Delegate{Name: name, Path: withLast(g.Path, name), RequestItems: items})
	}
	root := &Delegate{Name: namespaceDelegateName(ns)}
	if !ns.IsMain() {
		root.Path = append(append([]string{}, ns.Path...), root.Name)
	}
	for _, m := range ns.Models {
		if !b.mode.Eligible(m) || !m.SynthesizeShapes {
			continue
		}
		name := m.Name + "Delegate"
		root.GroupItems = append(root.GroupItems, &GroupItem{Name: name, Path: withLast(m.Path, name), PropertyName: Camel(m.Name)})
	}
	for _, g := range ns.HandlerGroups {
		name := g.Name + "Delegate"
		root.GroupItems = append(root.GroupItems, &GroupItem{Name: name, Path: withLast(g.Path, name), PropertyName: Camel(g.Name)})
	}
	for _, c := range ns.Namespaces {
		name := namespaceDelegateName(c)
		root.NamespaceItems = append(root.NamespaceItems, &NamespaceItem{
			Name:         name,
			Path:         append(append([]string{}, c.Path...), name),
			PropertyName: Camel(c.Name),
			IsMain:       c.IsMain(),
			IsStd:        c.IsStd(),
		})
	}
	items, err := b.customRequests(ns.Name, ns.Path, ns.Handlers)
	if err != nil {
		return err
	}
	root.RequestItems = items
	o.Delegates = append(o.Delegates, root)
	return nil
}

func namespaceDelegateName(ns *schema.Namespace) string {
	if ns.IsMain() {
		return ""
	}
	return Pascal(last(ns.Path)) + "NamespaceDelegate"
}

// builtinAction describes a built-in model handler.
type builtinAction struct {
	input  schema.ShapeKind
	output func(m *schema.Model) *schema.Type
}

func resultOf(m *schema.Model) *schema.Type {
	return schema.ShapeRef(schema.ShapeResult, m.Object(), "")
}

var builtinActions = map[string]builtinAction{
	"findUnique": {schema.ShapeFindUniqueArgs, func(m *schema.Model) *schema.Type { return schema.Optional(resultOf(m)) }},
	"findFirst":  {schema.ShapeFindFirstArgs, func(m *schema.Model) *schema.Type { return schema.Optional(resultOf(m)) }},
	"findMany":   {schema.ShapeFindManyArgs, func(m *schema.Model) *schema.Type { return schema.Array(resultOf(m)) }},
	"create":     {schema.ShapeCreateArgs, resultOf},
	"update":     {schema.ShapeUpdateArgs, resultOf},
	"upsert":     {schema.ShapeUpsertArgs, resultOf},
	"copy":       {schema.ShapeCopyArgs, resultOf},
	"delete":     {schema.ShapeDeleteArgs, resultOf},
	"createMany": {schema.ShapeCreateManyArgs, func(m *schema.Model) *schema.Type { return schema.Array(resultOf(m)) }},
	"updateMany": {schema.ShapeUpdateManyArgs, func(m *schema.Model) *schema.Type { return schema.Array(resultOf(m)) }},
	"copyMany":   {schema.ShapeCopyManyArgs, func(m *schema.Model) *schema.Type { return schema.Array(resultOf(m)) }},
	"deleteMany": {schema.ShapeDeleteManyArgs, func(m *schema.Model) *schema.Type { return schema.Array(resultOf(m)) }},
	"count":      {schema.ShapeCountArgs, func(*schema.Model) *schema.Type { return schema.Int64() }},
	"aggregate": {schema.ShapeAggregateArgs, func(m *schema.Model) *schema.Type {
		return schema.ShapeRef(schema.ShapeAggregateResult, m.Object(), "")
	}},
	"groupBy": {schema.ShapeGroupByArgs, func(m *schema.Model) *schema.Type {
		return schema.Array(schema.ShapeRef(schema.ShapeGroupByResult, m.Object(), ""))
	}},
}

// stdData is the response envelope of built-in handlers when the schema
// declares it.
var stdData = []string{"std", "Data"}

func (b *outlineBuilder) builtinRequest(m *schema.Model, action string) (*RequestItem, error) {
	a, ok := builtinActions[action]
	if !ok {
		return nil, NewSchemaError(m.Path, "unknown built-in handler "+action, nil)
	}
	output := a.output(m)
	if b.main != nil && b.main.InterfaceAt(stdData) != nil {
		output = schema.InterfaceObject(stdData, output)
	}
	return &RequestItem{
		Name:         action,
		Input:        schema.ShapeRef(a.input, m.Object(), ""),
		Output:       output,
		Method:       "POST",
		Path:         strings.Join(m.Path, "/") + "/" + action,
		HasBodyInput: true,
		IsAggregate:  action == "aggregate",
		IsCount:      action == "count",
		IsGroupBy:    action == "groupBy",
		IsBuiltin:    true,
	}, nil
}

func (b *outlineBuilder) customRequests(owner string, nsPath []string, handlers []*schema.Handler) ([]*RequestItem, error) {
	var items []*RequestItem
	for _, h := range handlers {
		if h.NonAPI {
			continue
		}
		if err := b.check(owner, h.Name, h.Input); err != nil {
			return nil, err
		}
		if err := b.check(owner, h.Name, h.Output); err != nil {
			return nil, err
		}
		method := strings.ToUpper(h.Method)
		if method == "" {
			method = "POST"
		}
		item := &RequestItem{
			Name:             h.Name,
			Input:            h.Input,
			Output:           h.Output,
			Method:           method,
			Path:             HandlerURL(h),
			HasBodyInput:     method != "GET" && method != "DELETE",
			HasCustomURLArgs: len(PathArgumentNames(h.URL)) > 0,
			IsForm:           strings.EqualFold(h.Format, "form"),
		}
		if item.HasCustomURLArgs && h.Interface != "" {
			item.CustomURLArgsPath = append(slices.Clone(nsPath), h.Interface)
		}
		items = append(items, item)
	}
	return items, nil
}

// HandlerURL returns the request path of a custom handler. An explicit URL
// is appended to the handler's namespace path unless the handler ignores
// the prefix; without a URL the path ends with the handler name.
func HandlerURL(h *schema.Handler) string {
	prefix := strings.Join(parent(h.Path), "/")
	switch {
	case h.URL != "" && h.IgnorePrefix:
		return h.URL
	case h.URL != "":
		if strings.HasPrefix(h.URL, "/") {
			return prefix + h.URL
		}
		return prefix + "/" + h.URL
	default:
		return prefix + "/" + h.Name
	}
}

// PathArgumentNames returns the parameter names of a URL template in order.
func PathArgumentNames(url string) []string {
	var names []string
	for _, m := range pathArgumentRe.FindAllStringSubmatch(url, -1) {
		names = append(names, m[2])
	}
	return names
}

func (o *Outline) addPathArguments(h *schema.Handler) {
	items := PathArgumentNames(h.URL)
	if h.Interface == "" || len(items) == 0 {
		return
	}
	o.PathArguments = append(o.PathArguments, &PathArguments{Name: h.Interface, Items: items})
}

// Walk visits o and its descendants depth-first.
func (o *Outline) Walk(fn func(*Outline)) {
	fn(o)
	for _, c := range o.Children {
		c.Walk(fn)
	}
}

// Find returns the descendant outline at the relative path.
func (o *Outline) Find(path []string) *Outline {
	cur := o
	for _, p := range path {
		var next *Outline
		for _, c := range cur.Children {
			if c.Name == p {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Types returns every type expression used by the declarations of o,
// excluding its children.
func (o *Outline) Types() []*schema.Type {
	var types []*schema.Type
	for _, i := range o.Interfaces {
		types = append(types, i.Extends...)
		for _, f := range i.Fields {
			types = append(types, f.Type)
		}
	}
	for _, d := range o.Delegates {
		for _, r := range d.RequestItems {
			types = append(types, r.Input, r.Output)
		}
	}
	return types
}

// RootDelegate returns the namespace delegate of o.
func (o *Outline) RootDelegate() *Delegate {
	if len(o.Delegates) == 0 {
		return nil
	}
	return o.Delegates[len(o.Delegates)-1]
}

// IsEmpty reports if o and its children declare nothing.
func (o *Outline) IsEmpty() bool {
	empty := true
	o.Walk(func(n *Outline) {
		if len(n.Interfaces) > 0 || len(n.Enums) > 0 || len(n.PathArguments) > 0 {
			empty = false
		}
		for _, d := range n.Delegates {
			if len(d.RequestItems) > 0 || len(d.GroupItems) > 0 {
				empty = false
			}
		}
	})
	return empty
}

// GenericsDeclaration renders the generic parameter list with the given
// delimiters, or "" when the interface is not generic.
func (i *Interface) GenericsDeclaration(open, close string) string {
	if len(i.Generics) == 0 {
		return ""
	}
	return open + strings.Join(i.Generics, ", ") + close
}

// IsSynthesized reports if the interface was derived from a model.
func (i *Interface) IsSynthesized() bool { return len(i.Model) > 0 }

// IsOutputResult reports if the interface is a model's Result shape.
func (i *Interface) IsOutputResult() bool { return i.Shape == string(schema.ShapeResult) }

// ModelName returns the owning model name of a synthesized interface.
func (i *Interface) ModelName() string { return last(i.Model) }

// JoinedMemberNames renders the member names quoted with quote and joined
// with sep.
func (e *Enum) JoinedMemberNames(quote, sep string) string {
	names := make([]string, len(e.Members))
	for i, m := range e.Members {
		names[i] = quote + m.Name + quote
	}
	return strings.Join(names, sep)
}
