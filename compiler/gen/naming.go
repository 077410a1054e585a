package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/teogen/schema"
)

// Mode selects which side of the schema a target generates for. It changes
// which models are emitted and how the Result shape is named.
type Mode uint8

const (
	// Client generates request/response bindings for API consumers.
	Client Mode = iota + 1
	// Entity generates server-side bindings for model records.
	Entity
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Client:
		return "client"
	case Entity:
		return "entity"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses the string form of a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "client":
		return Client, nil
	case "entity":
		return Entity, nil
	default:
		return 0, NewConfigError("Mode", s, "must be client or entity")
	}
}

// Eligible reports if the model is generated in this mode.
func (m Mode) Eligible(model *schema.Model) bool {
	switch m {
	case Client:
		return model.GenerateClient
	case Entity:
		return model.GenerateEntity
	}
	return false
}

// shapeName describes how a synthesized shape kind is named.
// Plain kinds are "{Owner}{suffix}". Without kinds are
// "{Owner}{base}Without{Pascal(without)}Input".
type shapeName struct {
	suffix  string
	base    string
	without bool
}

func plain(suffix string) shapeName { return shapeName{suffix: suffix} }
func withoutOf(base string) shapeName {
	return shapeName{base: base, without: true}
}

// shapeNames is the single naming table for synthesized shapes.
var shapeNames = map[schema.ShapeKind]shapeName{
	schema.ShapeArgs:           plain("Args"),
	schema.ShapeFindManyArgs:   plain("FindManyArgs"),
	schema.ShapeFindFirstArgs:  plain("FindFirstArgs"),
	schema.ShapeFindUniqueArgs: plain("FindUniqueArgs"),
	schema.ShapeCreateArgs:     plain("CreateArgs"),
	schema.ShapeUpdateArgs:     plain("UpdateArgs"),
	schema.ShapeUpsertArgs:     plain("UpsertArgs"),
	schema.ShapeCopyArgs:       plain("CopyArgs"),
	schema.ShapeDeleteArgs:     plain("DeleteArgs"),
	schema.ShapeCreateManyArgs: plain("CreateManyArgs"),
	schema.ShapeUpdateManyArgs: plain("UpdateManyArgs"),
	schema.ShapeCopyManyArgs:   plain("CopyManyArgs"),
	schema.ShapeDeleteManyArgs: plain("DeleteManyArgs"),
	schema.ShapeCountArgs:      plain("CountArgs"),
	schema.ShapeAggregateArgs:  plain("AggregateArgs"),
	schema.ShapeGroupByArgs:    plain("GroupByArgs"),

	schema.ShapeRelationFilter:                 plain("RelationFilter"),
	schema.ShapeListRelationFilter:             plain("ListRelationFilter"),
	schema.ShapeWhereInput:                     plain("WhereInput"),
	schema.ShapeWhereUniqueInput:               plain("WhereUniqueInput"),
	schema.ShapeScalarWhereWithAggregatesInput: plain("ScalarWhereWithAggregatesInput"),
	schema.ShapeCountAggregateInputType:        plain("CountAggregateInputType"),
	schema.ShapeSumAggregateInputType:          plain("SumAggregateInputType"),
	schema.ShapeAvgAggregateInputType:          plain("AvgAggregateInputType"),
	schema.ShapeMaxAggregateInputType:          plain("MaxAggregateInputType"),
	schema.ShapeMinAggregateInputType:          plain("MinAggregateInputType"),

	schema.ShapeCreateInput:                       plain("CreateInput"),
	schema.ShapeCreateInputWithout:                withoutOf("Create"),
	schema.ShapeCreateNestedOneInput:              plain("CreateNestedOneInput"),
	schema.ShapeCreateNestedOneInputWithout:       withoutOf("CreateNestedOne"),
	schema.ShapeCreateNestedManyInput:             plain("CreateNestedManyInput"),
	schema.ShapeCreateNestedManyInputWithout:      withoutOf("CreateNestedMany"),
	schema.ShapeUpdateInput:                       plain("UpdateInput"),
	schema.ShapeUpdateInputWithout:                withoutOf("Update"),
	schema.ShapeUpdateNestedOneInput:              plain("UpdateNestedOneInput"),
	schema.ShapeUpdateNestedOneInputWithout:       withoutOf("UpdateNestedOne"),
	schema.ShapeUpdateNestedManyInput:             plain("UpdateNestedManyInput"),
	schema.ShapeUpdateNestedManyInputWithout:      withoutOf("UpdateNestedMany"),
	schema.ShapeConnectOrCreateInput:              plain("ConnectOrCreateInput"),
	schema.ShapeConnectOrCreateInputWithout:       withoutOf("ConnectOrCreate"),
	schema.ShapeUpdateWithWhereUniqueInput:        plain("UpdateWithWhereUniqueInput"),
	schema.ShapeUpdateWithWhereUniqueInputWithout: withoutOf("UpdateWithWhereUnique"),
	schema.ShapeUpsertWithWhereUniqueInput:        plain("UpsertWithWhereUniqueInput"),
	schema.ShapeUpsertWithWhereUniqueInputWithout: withoutOf("UpsertWithWhereUnique"),
	schema.ShapeUpdateManyWithWhereInput:          plain("UpdateManyWithWhereInput"),
	schema.ShapeUpdateManyWithWhereInputWithout:   withoutOf("UpdateManyWithWhere"),

	schema.ShapeSelect:               plain("Select"),
	schema.ShapeInclude:              plain("Include"),
	schema.ShapeOrderByInput:         plain("OrderByInput"),
	schema.ShapeResult:               plain("Result"),
	schema.ShapeCountAggregateResult: plain("CountAggregateResult"),
	schema.ShapeSumAggregateResult:   plain("SumAggregateResult"),
	schema.ShapeAvgAggregateResult:   plain("AvgAggregateResult"),
	schema.ShapeMinAggregateResult:   plain("MinAggregateResult"),
	schema.ShapeMaxAggregateResult:   plain("MaxAggregateResult"),
	schema.ShapeAggregateResult:      plain("AggregateResult"),
	schema.ShapeGroupByResult:        plain("GroupByResult"),
}

// enumNames is the naming table for synthesized enums.
var enumNames = map[schema.EnumKind]string{
	schema.EnumScalarFields:             "ScalarFields",
	schema.EnumSerializableScalarFields: "SerializableScalarFields",
	schema.EnumRelations:                "Relations",
	schema.EnumDirectRelations:          "DirectRelations",
	schema.EnumIndirectRelations:        "IndirectRelations",
}

// IsWithoutShape reports if the kind requires a without value.
func IsWithoutShape(kind schema.ShapeKind) bool {
	return shapeNames[kind].without
}

// ResolveShapeName returns the declaration name of the synthesized shape of
// the given kind owned by the declaration named owner.
func ResolveShapeName(kind schema.ShapeKind, owner, without string, mode Mode) (string, error) {
	n, ok := shapeNames[kind]
	switch {
	case !ok:
		return "", NewMalformedReferenceError(string(kind), owner, "unknown shape kind")
	case n.without && without == "":
		return "", NewMalformedReferenceError(string(kind), owner, "missing without relation")
	case !n.without && without != "":
		return "", NewMalformedReferenceError(string(kind), owner, fmt.Sprintf("unexpected without relation %q", without))
	case n.without:
		return owner + n.base + "Without" + relationName(without) + "Input", nil
	case kind == schema.ShapeResult && mode == Client:
		return owner, nil
	default:
		return owner + n.suffix, nil
	}
}

// relationName PascalCases a relation name whatever its casing
// ("POSTS" -> "Posts", "author_posts" -> "AuthorPosts").
func relationName(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, w := range words {
		if strings.ToUpper(w) == w {
			words[i] = strings.ToLower(w)
		}
	}
	return Pascal(strings.Join(words, "_"))
}

// ResolveEnumName returns the declaration name of the synthesized enum of
// the given kind owned by the declaration named owner.
func ResolveEnumName(kind schema.EnumKind, owner string) (string, error) {
	suffix, ok := enumNames[kind]
	if !ok {
		return "", NewMalformedReferenceError(string(kind), owner, "unknown enum kind")
	}
	return owner + suffix, nil
}

// ShapeReferencePath returns the absolute path of the declaration a
// synthesized shape reference resolves to. The declaration lives in the
// owner's namespace.
func ShapeReferencePath(ref *schema.ShapeReference, mode Mode) ([]string, error) {
	if ref == nil {
		return nil, NewMalformedReferenceError("", "", "missing shape payload")
	}
	owner, err := shapeOwner(string(ref.Kind), ref.Owner, true)
	if err != nil {
		return nil, err
	}
	name, err := ResolveShapeName(ref.Kind, last(owner), ref.Without, mode)
	if err != nil {
		return nil, err
	}
	return withLast(owner, name), nil
}

// EnumReferencePath returns the absolute path of the declaration a
// synthesized enum reference resolves to.
func EnumReferencePath(ref *schema.EnumReference) ([]string, error) {
	if ref == nil {
		return nil, NewMalformedReferenceError("", "", "missing enum payload")
	}
	owner, err := shapeOwner(string(ref.Kind), ref.Owner, true)
	if err != nil {
		return nil, err
	}
	name, err := ResolveEnumName(ref.Kind, last(owner))
	if err != nil {
		return nil, err
	}
	return withLast(owner, name), nil
}

// DeclaredShapeName returns the declaration name of a declared shape:
// the owner model name followed by the last component of the declared path.
func DeclaredShapeName(path []string, owner string) string {
	return owner + last(path)
}

// DeclaredShapePath returns the absolute path of a declared synthesized shape.
// Only models may own declared shapes.
func DeclaredShapePath(path []string, owner *schema.Type) ([]string, error) {
	if len(path) == 0 {
		return nil, NewMalformedReferenceError("DeclaredSynthesizedShape", owner.String(), "empty declared path")
	}
	o, err := shapeOwner("DeclaredSynthesizedShape", owner, false)
	if err != nil {
		return nil, err
	}
	return withLast(o, DeclaredShapeName(path, last(o))), nil
}

// ReferencePath returns the absolute declaration path of any reference type.
func ReferencePath(t *schema.Type, mode Mode) ([]string, error) {
	switch t.Kind {
	case schema.KindEnumVariant, schema.KindModelObject, schema.KindInterfaceObject, schema.KindStructObject:
		if len(t.Path) == 0 {
			return nil, NewMalformedReferenceError(t.Kind.String(), "", "empty path")
		}
		return t.Path, nil
	case schema.KindShapeReference:
		return ShapeReferencePath(t.Shape, mode)
	case schema.KindEnumReference:
		return EnumReferencePath(t.Enum)
	case schema.KindDeclaredShape:
		return DeclaredShapePath(t.Path, t.Owner)
	default:
		return nil, NewMalformedReferenceError(t.Kind.String(), "", "not a reference")
	}
}

func shapeOwner(kind string, owner *schema.Type, allowInterface bool) ([]string, error) {
	switch {
	case owner == nil:
		return nil, NewMalformedReferenceError(kind, "", "missing owner")
	case owner.Kind == schema.KindModelObject,
		allowInterface && owner.Kind == schema.KindInterfaceObject:
		if len(owner.Path) == 0 {
			return nil, NewMalformedReferenceError(kind, owner.String(), "owner has an empty path")
		}
		return owner.Path, nil
	default:
		return nil, NewMalformedReferenceError(kind, owner.String(), "owner must be a model")
	}
}
