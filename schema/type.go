package schema

import (
	"strings"
)

// Kind identifies the variant of a Type.
type Kind string

// Scalar kinds.
const (
	KindNull         Kind = "null"
	KindBool         Kind = "bool"
	KindInt          Kind = "int"
	KindInt64        Kind = "int64"
	KindFloat32      Kind = "float32"
	KindFloat64      Kind = "float64"
	KindDecimal      Kind = "decimal"
	KindString       Kind = "string"
	KindObjectID     Kind = "objectId"
	KindDate         Kind = "date"
	KindDateTime     Kind = "dateTime"
	KindFile         Kind = "file"
	KindRegex        Kind = "regex"
	KindAny          Kind = "any"
	KindUndetermined Kind = "undetermined"
	KindIgnored      Kind = "ignored"
)

// Compiler-internal kinds. They may appear in a loaded schema but are never rendered.
const (
	KindFieldType Kind = "fieldType"
	KindFieldName Kind = "fieldName"
	KindKeyword   Kind = "keyword"
	KindModel     Kind = "model"
	KindDataSet   Kind = "dataSet"
	KindPipeline  Kind = "pipeline"
)

// Composite kinds.
const (
	KindOptional   Kind = "optional"
	KindArray      Kind = "array"
	KindDictionary Kind = "dictionary"
	KindTuple      Kind = "tuple"
	KindRange      Kind = "range"
	KindUnion      Kind = "union"
	KindEnumerable Kind = "enumerable"
)

// Reference kinds.
const (
	KindEnumVariant     Kind = "enumVariant"
	KindModelObject     Kind = "modelObject"
	KindInterfaceObject Kind = "interfaceObject"
	KindStructObject    Kind = "structObject"
	KindGenericItem     Kind = "genericItem"
	KindShapeReference  Kind = "shapeReference"
	KindEnumReference   Kind = "enumReference"
	KindDeclaredShape   Kind = "declaredShape"
)

var kindNames = map[Kind]string{
	KindNull:            "Null",
	KindBool:            "Bool",
	KindInt:             "Int",
	KindInt64:           "Int64",
	KindFloat32:         "Float32",
	KindFloat64:         "Float",
	KindDecimal:         "Decimal",
	KindString:          "String",
	KindObjectID:        "ObjectId",
	KindDate:            "Date",
	KindDateTime:        "DateTime",
	KindFile:            "File",
	KindRegex:           "Regex",
	KindAny:             "Any",
	KindUndetermined:    "Undetermined",
	KindIgnored:         "Ignored",
	KindFieldType:       "FieldType",
	KindFieldName:       "FieldName",
	KindKeyword:         "Keyword",
	KindModel:           "Model",
	KindDataSet:         "DataSet",
	KindPipeline:        "Pipeline",
	KindOptional:        "Optional",
	KindArray:           "Array",
	KindDictionary:      "Dictionary",
	KindTuple:           "Tuple",
	KindRange:           "Range",
	KindUnion:           "Union",
	KindEnumerable:      "Enumerable",
	KindEnumVariant:     "EnumVariant",
	KindModelObject:     "ModelObject",
	KindInterfaceObject: "InterfaceObject",
	KindStructObject:    "StructObject",
	KindGenericItem:     "GenericItem",
	KindShapeReference:  "SynthesizedShapeReference",
	KindEnumReference:   "SynthesizedEnumReference",
	KindDeclaredShape:   "DeclaredSynthesizedShape",
}

// Valid reports if the kind is a known Type variant.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// String returns the display name of the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Kind(" + string(k) + ")"
}

// IsInternal reports if the kind is a compiler-internal marker that
// no target can render.
func (k Kind) IsInternal() bool {
	switch k {
	case KindUndetermined, KindIgnored, KindFieldType, KindFieldName,
		KindKeyword, KindModel, KindDataSet, KindPipeline:
		return true
	}
	return false
}

// IsScalar reports if the kind carries no payload.
func (k Kind) IsScalar() bool {
	switch k {
	case KindNull, KindBool, KindInt, KindInt64, KindFloat32, KindFloat64,
		KindDecimal, KindString, KindObjectID, KindDate, KindDateTime,
		KindFile, KindRegex, KindAny:
		return true
	}
	return false
}

// IsReference reports if the kind points at a named declaration.
func (k Kind) IsReference() bool {
	switch k {
	case KindEnumVariant, KindModelObject, KindInterfaceObject, KindStructObject,
		KindShapeReference, KindEnumReference, KindDeclaredShape:
		return true
	}
	return false
}

// Type is the abstract, language-independent type expression attached to
// every field and handler of a schema. Only the payload fields used by
// the Kind are set:
//
//	Optional, Array, Dictionary, Range, Enumerable  Inner
//	Tuple, Union                                   Items
//	EnumVariant, ModelObject                       Path
//	InterfaceObject, StructObject                  Path, Args
//	GenericItem                                    Name
//	SynthesizedShapeReference                      Shape
//	SynthesizedEnumReference                       Enum
//	DeclaredSynthesizedShape                       Path, Owner
//
// Reference paths are always absolute from the schema root.
type Type struct {
	Kind  Kind            `json:"kind" yaml:"kind" msgpack:"kind"`
	Inner *Type           `json:"inner,omitempty" yaml:"inner,omitempty" msgpack:"inner,omitempty"`
	Items []*Type         `json:"items,omitempty" yaml:"items,omitempty" msgpack:"items,omitempty"`
	Path  []string        `json:"path,omitempty" yaml:"path,omitempty" msgpack:"path,omitempty"`
	Args  []*Type         `json:"args,omitempty" yaml:"args,omitempty" msgpack:"args,omitempty"`
	Name  string          `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Shape *ShapeReference `json:"shape,omitempty" yaml:"shape,omitempty" msgpack:"shape,omitempty"`
	Enum  *EnumReference  `json:"enum,omitempty" yaml:"enum,omitempty" msgpack:"enum,omitempty"`
	Owner *Type           `json:"owner,omitempty" yaml:"owner,omitempty" msgpack:"owner,omitempty"`
}

// Scalar returns a payload-free type of the given kind.
func Scalar(k Kind) *Type { return &Type{Kind: k} }

func Null() *Type     { return Scalar(KindNull) }
func Bool() *Type     { return Scalar(KindBool) }
func Int() *Type      { return Scalar(KindInt) }
func Int64() *Type    { return Scalar(KindInt64) }
func Float32() *Type  { return Scalar(KindFloat32) }
func Float64() *Type  { return Scalar(KindFloat64) }
func Decimal() *Type  { return Scalar(KindDecimal) }
func String() *Type   { return Scalar(KindString) }
func ObjectID() *Type { return Scalar(KindObjectID) }
func Date() *Type     { return Scalar(KindDate) }
func DateTime() *Type { return Scalar(KindDateTime) }
func File() *Type     { return Scalar(KindFile) }
func Regex() *Type    { return Scalar(KindRegex) }
func Any() *Type      { return Scalar(KindAny) }

// Optional wraps t as a nullable value.
func Optional(t *Type) *Type { return &Type{Kind: KindOptional, Inner: t} }

// Array returns a list of t.
func Array(t *Type) *Type { return &Type{Kind: KindArray, Inner: t} }

// Dictionary returns a string-keyed map of t.
func Dictionary(t *Type) *Type { return &Type{Kind: KindDictionary, Inner: t} }

// Range returns a range over t.
func Range(t *Type) *Type { return &Type{Kind: KindRange, Inner: t} }

// Enumerable returns a value that is either t or a list of t.
func Enumerable(t *Type) *Type { return &Type{Kind: KindEnumerable, Inner: t} }

// Tuple returns a fixed-length heterogeneous sequence.
func Tuple(items ...*Type) *Type { return &Type{Kind: KindTuple, Items: items} }

// Union returns a type that is any one of items.
func Union(items ...*Type) *Type { return &Type{Kind: KindUnion, Items: items} }

// EnumVariant references the enum declared at path.
func EnumVariant(path ...string) *Type { return &Type{Kind: KindEnumVariant, Path: path} }

// ModelObject references the model declared at path.
func ModelObject(path ...string) *Type { return &Type{Kind: KindModelObject, Path: path} }

// InterfaceObject references the interface declared at path with the given generic arguments.
func InterfaceObject(path []string, args ...*Type) *Type {
	return &Type{Kind: KindInterfaceObject, Path: path, Args: args}
}

// StructObject references the struct declared at path with the given generic arguments.
func StructObject(path []string, args ...*Type) *Type {
	return &Type{Kind: KindStructObject, Path: path, Args: args}
}

// GenericItem references a generic parameter by name.
func GenericItem(name string) *Type { return &Type{Kind: KindGenericItem, Name: name} }

// ShapeRef references a compiler-synthesized shape of owner.
// without must be set only for the "*Without" kinds.
func ShapeRef(kind ShapeKind, owner *Type, without string) *Type {
	return &Type{Kind: KindShapeReference, Shape: &ShapeReference{Kind: kind, Owner: owner, Without: without}}
}

// EnumRef references a compiler-synthesized enum of owner.
func EnumRef(kind EnumKind, owner *Type) *Type {
	return &Type{Kind: KindEnumReference, Enum: &EnumReference{Kind: kind, Owner: owner}}
}

// DeclaredShapeRef references a user-declared synthesized shape attached to owner.
func DeclaredShapeRef(path []string, owner *Type) *Type {
	return &Type{Kind: KindDeclaredShape, Path: path, Owner: owner}
}

// IsOptional reports if t is an Optional wrapper.
func (t *Type) IsOptional() bool { return t != nil && t.Kind == KindOptional }

// IsNull reports if t is the Null type.
func (t *Type) IsNull() bool { return t != nil && t.Kind == KindNull }

// IsUnion reports if t is a Union.
func (t *Type) IsUnion() bool { return t != nil && t.Kind == KindUnion }

// IsArray reports if t is an Array.
func (t *Type) IsArray() bool { return t != nil && t.Kind == KindArray }

// IsAny reports if t is the Any type.
func (t *Type) IsAny() bool { return t != nil && t.Kind == KindAny }

// Unwrap returns the inner type of an Optional, or t itself.
func (t *Type) Unwrap() *Type {
	if t.IsOptional() {
		return t.Inner
	}
	return t
}

// WrapInOptional returns t as an Optional. Optional types are returned as is.
func (t *Type) WrapInOptional() *Type {
	if t.IsOptional() {
		return t
	}
	return Optional(t)
}

// Walk visits t and every type nested in it in pre-order. Returning false
// from fn skips the children of the visited type.
func (t *Type) Walk(fn func(*Type) bool) {
	if t == nil || !fn(t) {
		return
	}
	t.Inner.Walk(fn)
	for _, it := range t.Items {
		it.Walk(fn)
	}
	for _, a := range t.Args {
		a.Walk(fn)
	}
	t.Owner.Walk(fn)
	if t.Shape != nil {
		t.Shape.Owner.Walk(fn)
	}
	if t.Enum != nil {
		t.Enum.Owner.Walk(fn)
	}
}

// String returns a stable, human-readable rendering of t.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindOptional:
		return t.Inner.String() + "?"
	case KindArray:
		return t.Inner.String() + "[]"
	case KindDictionary:
		return "{" + t.Inner.String() + "}"
	case KindRange:
		return "Range<" + t.Inner.String() + ">"
	case KindEnumerable:
		return "Enumerable<" + t.Inner.String() + ">"
	case KindTuple:
		return "(" + joinTypes(t.Items, ", ") + ")"
	case KindUnion:
		return joinTypes(t.Items, " | ")
	case KindEnumVariant, KindModelObject:
		return strings.Join(t.Path, ".")
	case KindInterfaceObject, KindStructObject:
		if len(t.Args) == 0 {
			return strings.Join(t.Path, ".")
		}
		return strings.Join(t.Path, ".") + "<" + joinTypes(t.Args, ", ") + ">"
	case KindGenericItem:
		return t.Name
	case KindShapeReference:
		if t.Shape == nil {
			return "<shape>"
		}
		s := t.Shape.Owner.String() + "." + string(t.Shape.Kind)
		if t.Shape.Without != "" {
			s += "(" + t.Shape.Without + ")"
		}
		return s
	case KindEnumReference:
		if t.Enum == nil {
			return "<enum>"
		}
		return t.Enum.Owner.String() + "." + string(t.Enum.Kind)
	case KindDeclaredShape:
		return t.Owner.String() + "." + strings.Join(t.Path, ".")
	default:
		return t.Kind.String()
	}
}

func joinTypes(ts []*Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
