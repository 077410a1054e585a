package schema

// ShapeKind names a compiler-synthesized shape of a model. The kinds ending
// in "Without" describe a shape that omits one relation and require the
// relation name in ShapeReference.Without.
type ShapeKind string

// Argument shapes of the built-in handlers.
const (
	ShapeArgs           ShapeKind = "Args"
	ShapeFindManyArgs   ShapeKind = "FindManyArgs"
	ShapeFindFirstArgs  ShapeKind = "FindFirstArgs"
	ShapeFindUniqueArgs ShapeKind = "FindUniqueArgs"
	ShapeCreateArgs     ShapeKind = "CreateArgs"
	ShapeUpdateArgs     ShapeKind = "UpdateArgs"
	ShapeUpsertArgs     ShapeKind = "UpsertArgs"
	ShapeCopyArgs       ShapeKind = "CopyArgs"
	ShapeDeleteArgs     ShapeKind = "DeleteArgs"
	ShapeCreateManyArgs ShapeKind = "CreateManyArgs"
	ShapeUpdateManyArgs ShapeKind = "UpdateManyArgs"
	ShapeCopyManyArgs   ShapeKind = "CopyManyArgs"
	ShapeDeleteManyArgs ShapeKind = "DeleteManyArgs"
	ShapeCountArgs      ShapeKind = "CountArgs"
	ShapeAggregateArgs  ShapeKind = "AggregateArgs"
	ShapeGroupByArgs    ShapeKind = "GroupByArgs"
)

// Filter and aggregate input shapes.
const (
	ShapeRelationFilter                 ShapeKind = "RelationFilter"
	ShapeListRelationFilter             ShapeKind = "ListRelationFilter"
	ShapeWhereInput                     ShapeKind = "WhereInput"
	ShapeWhereUniqueInput               ShapeKind = "WhereUniqueInput"
	ShapeScalarWhereWithAggregatesInput ShapeKind = "ScalarWhereWithAggregatesInput"
	ShapeCountAggregateInputType        ShapeKind = "CountAggregateInputType"
	ShapeSumAggregateInputType          ShapeKind = "SumAggregateInputType"
	ShapeAvgAggregateInputType          ShapeKind = "AvgAggregateInputType"
	ShapeMaxAggregateInputType          ShapeKind = "MaxAggregateInputType"
	ShapeMinAggregateInputType          ShapeKind = "MinAggregateInputType"
)

// Create and update input shapes.
const (
	ShapeCreateInput                       ShapeKind = "CreateInput"
	ShapeCreateInputWithout                ShapeKind = "CreateInputWithout"
	ShapeCreateNestedOneInput              ShapeKind = "CreateNestedOneInput"
	ShapeCreateNestedOneInputWithout       ShapeKind = "CreateNestedOneInputWithout"
	ShapeCreateNestedManyInput             ShapeKind = "CreateNestedManyInput"
	ShapeCreateNestedManyInputWithout      ShapeKind = "CreateNestedManyInputWithout"
	ShapeUpdateInput                       ShapeKind = "UpdateInput"
	ShapeUpdateInputWithout                ShapeKind = "UpdateInputWithout"
	ShapeUpdateNestedOneInput              ShapeKind = "UpdateNestedOneInput"
	ShapeUpdateNestedOneInputWithout       ShapeKind = "UpdateNestedOneInputWithout"
	ShapeUpdateNestedManyInput             ShapeKind = "UpdateNestedManyInput"
	ShapeUpdateNestedManyInputWithout      ShapeKind = "UpdateNestedManyInputWithout"
	ShapeConnectOrCreateInput              ShapeKind = "ConnectOrCreateInput"
	ShapeConnectOrCreateInputWithout       ShapeKind = "ConnectOrCreateInputWithout"
	ShapeUpdateWithWhereUniqueInput        ShapeKind = "UpdateWithWhereUniqueInput"
	ShapeUpdateWithWhereUniqueInputWithout ShapeKind = "UpdateWithWhereUniqueInputWithout"
	ShapeUpsertWithWhereUniqueInput        ShapeKind = "UpsertWithWhereUniqueInput"
	ShapeUpsertWithWhereUniqueInputWithout ShapeKind = "UpsertWithWhereUniqueInputWithout"
	ShapeUpdateManyWithWhereInput          ShapeKind = "UpdateManyWithWhereInput"
	ShapeUpdateManyWithWhereInputWithout   ShapeKind = "UpdateManyWithWhereInputWithout"
)

// Selection, ordering and result shapes.
const (
	ShapeSelect               ShapeKind = "Select"
	ShapeInclude              ShapeKind = "Include"
	ShapeOrderByInput         ShapeKind = "OrderByInput"
	ShapeResult               ShapeKind = "Result"
	ShapeCountAggregateResult ShapeKind = "CountAggregateResult"
	ShapeSumAggregateResult   ShapeKind = "SumAggregateResult"
	ShapeAvgAggregateResult   ShapeKind = "AvgAggregateResult"
	ShapeMinAggregateResult   ShapeKind = "MinAggregateResult"
	ShapeMaxAggregateResult   ShapeKind = "MaxAggregateResult"
	ShapeAggregateResult      ShapeKind = "AggregateResult"
	ShapeGroupByResult        ShapeKind = "GroupByResult"
)

// EnumKind names a compiler-synthesized enum of a model.
type EnumKind string

const (
	EnumScalarFields             EnumKind = "ScalarFields"
	EnumSerializableScalarFields EnumKind = "SerializableScalarFields"
	EnumRelations                EnumKind = "Relations"
	EnumDirectRelations          EnumKind = "DirectRelations"
	EnumIndirectRelations        EnumKind = "IndirectRelations"
)

// ShapeReference is the payload of a SynthesizedShapeReference type.
type ShapeReference struct {
	Kind    ShapeKind `json:"kind" yaml:"kind" msgpack:"kind"`
	Owner   *Type     `json:"owner" yaml:"owner" msgpack:"owner"`
	Without string    `json:"without,omitempty" yaml:"without,omitempty" msgpack:"without,omitempty"`
}

// EnumReference is the payload of a SynthesizedEnumReference type.
type EnumReference struct {
	Kind  EnumKind `json:"kind" yaml:"kind" msgpack:"kind"`
	Owner *Type    `json:"owner" yaml:"owner" msgpack:"owner"`
}
