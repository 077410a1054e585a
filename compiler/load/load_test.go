package load

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/teogen/compiler/gen"
	"github.com/syssam/teogen/schema"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"schema.json", JSON},
		{"schema.YAML", YAML},
		{"dir/schema.yml", YAML},
		{"schema.msgpack", MsgPack},
		{"schema.mpk", MsgPack},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := FormatOf("schema.teo")
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}

func TestLoad_YAML(t *testing.T) {
	ns, err := Load(filepath.Join("testdata", "schema.yaml"))
	require.NoError(t, err)

	assert.Empty(t, ns.Path)
	shop := ns.Child("shop")
	require.NotNil(t, shop)
	assert.Equal(t, []string{"shop"}, shop.Path)
	assert.Equal(t, []string{"shop", "Order"}, shop.Models[0].Path)
	assert.Equal(t, []string{"shop", "ping"}, shop.Handlers[0].Path)
	assert.Equal(t, []string{"std", "Data"}, ns.Child("std").Interfaces[0].Path)
	assert.Equal(t, []string{"User", "profile"}, ns.ModelHandlerGroups[0].Handlers[0].Path)

	orders := ns.Models[0].Shapes[0].Shape.Fields[2].Type
	assert.Equal(t, "shop.Order.Result[]?", orders.String())

	// The loaded tree is accepted by the outline builder.
	o, err := gen.NewOutline(ns, gen.Client, ns)
	require.NoError(t, err)
	require.NotNil(t, o.Find([]string{"shop"}))
}

func TestLoad_JSON(t *testing.T) {
	ns, err := Load(filepath.Join("testdata", "schema.json"))
	require.NoError(t, err)
	require.Len(t, ns.Interfaces, 1)
	assert.Equal(t, []string{"T"}, ns.Interfaces[0].Generics)
	assert.Equal(t, schema.KindGenericItem, ns.Interfaces[0].Fields[0].Type.Inner.Kind)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestEncodeDecode(t *testing.T) {
	want, err := Load(filepath.Join("testdata", "schema.yaml"))
	require.NoError(t, err)
	for _, format := range []Format{JSON, YAML, MsgPack} {
		t.Run(string(format), func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, Encode(&b, want, format))
			got, err := Decode(&b, format)
			require.NoError(t, err)
			assert.Equal(t, want.Child("shop").Models[0].Path, got.Child("shop").Models[0].Path)
			assert.Equal(t,
				want.Models[0].Shapes[0].Shape.Fields[2].Type.String(),
				got.Models[0].Shapes[0].Shape.Fields[2].Type.String())
			assert.Equal(t, want.Enums[0].Members[1].Title, got.Enums[0].Members[1].Title)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   string
	}{
		{"unknown json field", JSON, `{"name": "main", "colour": "red"}`, "decode json"},
		{"unknown yaml field", YAML, "name: main\ncolour: red\n", "decode yaml"},
		{"malformed msgpack", MsgPack, "\xc1", "decode msgpack"},
		{"root with path", JSON, `{"name": "main", "path": ["main"]}`, "empty path"},
		{"mismatched path", YAML, "models:\n  - name: User\n    path: [Account]\n", "path does not match"},
		{"duplicate declaration", YAML, "enums:\n  - name: A\n    members: []\n  - name: A\n    members: []\n", "duplicate declaration"},
		{"duplicate member", YAML, "enums:\n  - name: A\n    members: [{name: x}, {name: x}]\n", "duplicate member"},
		{"duplicate field", YAML, "interfaces:\n  - name: A\n    fields:\n      - {name: x, type: {kind: int}}\n      - {name: x, type: {kind: int}}\n", "duplicate field"},
		{"unknown kind", YAML, "interfaces:\n  - name: A\n    fields:\n      - {name: x, type: {kind: money}}\n", "unknown type kind"},
		{"empty reference", YAML, "interfaces:\n  - name: A\n    fields:\n      - {name: x, type: {kind: modelObject}}\n", "empty reference path"},
		{"optional without inner", YAML, "interfaces:\n  - name: A\n    fields:\n      - {name: x, type: {kind: optional}}\n", "without inner type"},
		{"malformed shape reference", YAML, "interfaces:\n  - name: A\n    fields:\n      - {name: x, type: {kind: shapeReference}}\n", "malformed shape reference"},
		{"extends non interface", YAML, "interfaces:\n  - name: A\n    extends: [{kind: int}]\n", "can only extend interfaces"},
		{"handler without type", YAML, "handlers:\n  - name: ping\n    input: {kind: any}\n", "missing type"},
		{"duplicate namespace", YAML, "namespaces:\n  - name: shop\n  - name: shop\n", "duplicate declaration"},
		{"null union member", YAML, "models:\n  - name: User\n    shapes:\n      - name: WhereInput\n        union: [null, {fields: [{name: a, type: {kind: int}}]}]\n", "missing union member"},
		{"null model", YAML, "models: [null]\n", "missing model"},
		{"null field", YAML, "interfaces:\n  - name: A\n    fields: [null]\n", "missing field"},
		{"null handler", JSON, `{"handlers": [null]}`, "missing handler"},
		{"null union item", YAML, "interfaces:\n  - name: A\n    fields:\n      - {name: x, type: {kind: union, items: [null, {kind: int}]}}\n", "incomplete union"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			require.Error(t, err)
			assert.True(t, gen.IsSchemaError(err), err.Error())
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode(strings.NewReader("{}"), Format("toml"))
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
}

func TestValidateType(t *testing.T) {
	require.NoError(t, ValidateType(schema.Optional(schema.Array(schema.Int()))))
	require.NoError(t, ValidateType(schema.ShapeRef(schema.ShapeResult, schema.ModelObject("User"), "")))

	for name, typ := range map[string]*schema.Type{
		"nil":            nil,
		"unknown kind":   {Kind: "bogus"},
		"missing inner":  {Kind: schema.KindOptional},
		"nested missing": schema.Array(&schema.Type{Kind: schema.KindDictionary}),
	} {
		t.Run(name, func(t *testing.T) {
			err := ValidateType(typ)
			require.Error(t, err)
			assert.True(t, gen.IsSchemaError(err))
		})
	}
}

func TestValidate_NilUnionMember(t *testing.T) {
	ns := &schema.Namespace{
		Models: []*schema.Model{
			{
				Name: "User",
				Path: []string{"User"},
				Shapes: []*schema.ShapeEntry{
					{Name: "WhereInput", Union: []*schema.Shape{nil, {Fields: []*schema.Field{{Name: "a", Type: schema.Int()}}}}},
				},
			},
		},
	}
	var err error
	require.NotPanics(t, func() { err = Validate(ns) })
	require.Error(t, err)
	assert.True(t, gen.IsSchemaError(err))
}
