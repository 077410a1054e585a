package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/teogen/schema"
)

func interfaceNames(o *Outline) []string {
	names := make([]string, len(o.Interfaces))
	for i, iface := range o.Interfaces {
		names[i] = iface.Name
	}
	return names
}

func delegateNames(o *Outline) []string {
	names := make([]string, len(o.Delegates))
	for i, d := range o.Delegates {
		names[i] = d.Name
	}
	return names
}

func requestNames(d *Delegate) []string {
	names := make([]string, len(d.RequestItems))
	for i, r := range d.RequestItems {
		names[i] = r.Name
	}
	return names
}

func TestNewOutline_Client(t *testing.T) {
	ns := testSchema()
	o, err := NewOutline(ns, Client, ns)
	require.NoError(t, err)

	assert.True(t, o.IsMain)
	assert.Equal(t, Client, o.Mode)
	require.Len(t, o.Children, 2)
	assert.Equal(t, "std", o.Children[0].Name)
	assert.True(t, o.Children[0].IsStd)
	assert.Equal(t, "shop", o.Children[1].Name)

	t.Run("enums", func(t *testing.T) {
		require.Len(t, o.Enums, 2)
		role := o.Enums[0]
		assert.Equal(t, "Role", role.Name)
		assert.False(t, role.Synthesized)
		require.Len(t, role.Members, 2)
		assert.Equal(t, "Admin", role.Members[0].Title)
		assert.Equal(t, "Regular user", role.Members[1].Title)
		assert.Equal(t, `"admin" | "user"`, role.JoinedMemberNames(`"`, " | "))

		fields := o.Enums[1]
		assert.Equal(t, "UserScalarFields", fields.Name)
		assert.Equal(t, []string{"UserScalarFields"}, fields.Path)
		assert.True(t, fields.Synthesized)
		assert.Equal(t, synthesizedEnumDesc, fields.Desc)
		assert.Equal(t, synthesizedMemberDesc, fields.Members[0].Desc)
	})

	t.Run("interfaces", func(t *testing.T) {
		assert.Equal(t, []string{"Address", "Point", "User", "UserCreateInput", "UserSummary"}, interfaceNames(o))

		address := o.Interfaces[0]
		assert.Equal(t, "Address", address.Title)
		assert.False(t, address.IsSynthesized())
		assert.Equal(t, "Created At", address.Fields[1].Title)

		result := o.Interfaces[2]
		assert.True(t, result.IsSynthesized())
		assert.True(t, result.IsOutputResult())
		assert.Equal(t, "User", result.ModelName())
		assert.Equal(t, synthesizedInterfaceDesc, result.Desc)
		assert.Equal(t, synthesizedFieldDesc, result.Fields[0].Desc)

		create := o.Interfaces[3]
		assert.Equal(t, "User create input", create.Title)
		assert.Equal(t, "CreateInput", create.Shape)
		assert.False(t, create.IsOutputResult())

		summary := o.Interfaces[4]
		assert.Equal(t, []string{"UserSummary"}, summary.Path)
		assert.Empty(t, summary.Shape)
	})

	t.Run("delegates", func(t *testing.T) {
		assert.Equal(t, []string{"UserDelegate", ""}, delegateNames(o))

		user := o.Delegates[0]
		assert.Equal(t, []string{"UserDelegate"}, user.Path)
		assert.Equal(t, []string{"findMany", "count", "profile"}, requestNames(user))

		findMany := user.RequestItems[0]
		assert.True(t, findMany.IsBuiltin)
		assert.Equal(t, "POST", findMany.Method)
		assert.Equal(t, "User/findMany", findMany.Path)
		assert.True(t, findMany.HasBodyInput)
		assert.Equal(t, "User.FindManyArgs", findMany.Input.String())
		assert.Equal(t, "std.Data<User.Result[]>", findMany.Output.String())

		count := user.RequestItems[1]
		assert.True(t, count.IsCount)
		assert.Equal(t, "std.Data<Int64>", count.Output.String())

		profile := user.RequestItems[2]
		assert.False(t, profile.IsBuiltin)
		assert.Equal(t, "GET", profile.Method)
		assert.Equal(t, "User/users/:id/*rest", profile.Path)
		assert.False(t, profile.HasBodyInput)
		assert.True(t, profile.HasCustomURLArgs)
		assert.Equal(t, []string{"ProfilePathArgs"}, profile.CustomURLArgsPath)

		root := o.RootDelegate()
		assert.Nil(t, root.Path)
		require.Len(t, root.GroupItems, 1)
		assert.Equal(t, "user", root.GroupItems[0].PropertyName)
		require.Len(t, root.NamespaceItems, 2)
		assert.Equal(t, "StdNamespaceDelegate", root.NamespaceItems[0].Name)
		assert.Equal(t, []string{"std", "StdNamespaceDelegate"}, root.NamespaceItems[0].Path)
		assert.True(t, root.NamespaceItems[0].IsStd)
		assert.Equal(t, "shop", root.NamespaceItems[1].PropertyName)
		assert.Empty(t, root.RequestItems)
	})

	t.Run("path arguments", func(t *testing.T) {
		require.Len(t, o.PathArguments, 1)
		assert.Equal(t, "ProfilePathArgs", o.PathArguments[0].Name)
		assert.Equal(t, []string{"id", "rest"}, o.PathArguments[0].Items)
	})

	t.Run("child namespace", func(t *testing.T) {
		shop := o.Find([]string{"shop"})
		require.NotNil(t, shop)
		assert.Equal(t, []string{"Order"}, interfaceNames(shop))
		assert.Equal(t, []string{"OrderDelegate", "CartDelegate", "ShopNamespaceDelegate"}, delegateNames(shop))

		findUnique := shop.Delegates[0].RequestItems[0]
		assert.Equal(t, "shop/Order/findUnique", findUnique.Path)
		assert.Equal(t, "std.Data<shop.Order.Result?>", findUnique.Output.String())

		root := shop.RootDelegate()
		assert.Equal(t, []string{"shop", "ShopNamespaceDelegate"}, root.Path)
		require.Len(t, root.GroupItems, 2)
		assert.Equal(t, "cart", root.GroupItems[1].PropertyName)
		assert.Equal(t, []string{"shop", "CartDelegate"}, root.GroupItems[1].Path)
		assert.Equal(t, []string{"ping"}, requestNames(root))
		assert.Equal(t, "shop/ping", root.RequestItems[0].Path)
		assert.Equal(t, "GET", root.RequestItems[0].Method)
	})
}

func TestNewOutline_Entity(t *testing.T) {
	ns := testSchema()
	o, err := NewOutline(ns, Entity, ns)
	require.NoError(t, err)

	assert.Equal(t, []string{"Address", "Point", "UserResult", "UserCreateInput", "UserSummary"}, interfaceNames(o))
	shop := o.Find([]string{"shop"})
	require.NotNil(t, shop)
	assert.Empty(t, shop.Interfaces)
	assert.Equal(t, []string{"CartDelegate", "ShopNamespaceDelegate"}, delegateNames(shop))
}

func TestNewOutline_WithoutStdData(t *testing.T) {
	ns := testSchema()
	ns.Namespaces = ns.Namespaces[1:]
	o, err := NewOutline(ns, Client, ns)
	require.NoError(t, err)
	assert.Equal(t, "User.Result[]", o.Delegates[0].RequestItems[0].Output.String())
}

func TestNewOutline_Errors(t *testing.T) {
	t.Run("invalid mode", func(t *testing.T) {
		_, err := NewOutline(testSchema(), Mode(9), nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("internal kind", func(t *testing.T) {
		ns := testSchema()
		ns.Interfaces[0].Fields[0].Type = schema.Array(schema.Scalar(schema.KindPipeline))
		_, err := NewOutline(ns, Client, ns)
		require.Error(t, err)
		assert.True(t, IsUnresolvableTypeError(err))
	})

	t.Run("missing without", func(t *testing.T) {
		ns := testSchema()
		ns.Interfaces[0].Fields[0].Type = schema.ShapeRef(schema.ShapeCreateInputWithout, schema.ModelObject("User"), "")
		_, err := NewOutline(ns, Client, ns)
		require.Error(t, err)
		assert.True(t, IsMalformedReferenceError(err))
	})

	t.Run("unknown builtin handler", func(t *testing.T) {
		ns := testSchema()
		ns.Models[0].BuiltinHandlers = []string{"truncate"}
		_, err := NewOutline(ns, Client, ns)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	})

	t.Run("empty shape entry", func(t *testing.T) {
		ns := testSchema()
		ns.Models[0].Shapes = append(ns.Models[0].Shapes, &schema.ShapeEntry{Name: "Select"})
		_, err := NewOutline(ns, Client, ns)
		require.Error(t, err)
		assert.True(t, IsSchemaError(err))
	})
}

func TestMergeShapes(t *testing.T) {
	a := &schema.Shape{Fields: []*schema.Field{
		{Name: "id", Type: schema.Int()},
		{Name: "name", Type: schema.String()},
	}}
	b := &schema.Shape{Fields: []*schema.Field{
		{Name: "name", Type: schema.Optional(schema.String())},
		{Name: "email", Type: schema.String()},
	}}

	t.Run("single shape keeps types", func(t *testing.T) {
		fields := mergeShapes([]*schema.Shape{a, nil})
		require.Len(t, fields, 2)
		assert.Equal(t, "Int", fields[0].Type.String())
	})

	t.Run("union makes fields optional", func(t *testing.T) {
		fields := mergeShapes([]*schema.Shape{a, b})
		require.Len(t, fields, 3)
		assert.Equal(t, "id", fields[0].Name)
		assert.Equal(t, "name", fields[1].Name)
		assert.Equal(t, "email", fields[2].Name)
		assert.Equal(t, "Int?", fields[0].Type.String())
		assert.Equal(t, "String?", fields[1].Type.String())
		assert.Equal(t, "Int", a.Fields[0].Type.String(), "inputs are not modified")
	})

	t.Run("union entry", func(t *testing.T) {
		ns := testSchema()
		ns.Models[0].Shapes = append(ns.Models[0].Shapes, &schema.ShapeEntry{Name: "WhereUniqueInput", Union: []*schema.Shape{a, b}})
		o, err := NewOutline(ns, Client, ns)
		require.NoError(t, err)
		iface := o.Interfaces[len(o.Interfaces)-2]
		assert.Equal(t, "UserWhereUniqueInput", iface.Name)
		assert.Len(t, iface.Fields, 3)
	})
}

func TestHandlerURL(t *testing.T) {
	tests := []struct {
		name    string
		handler *schema.Handler
		want    string
	}{
		{"name", &schema.Handler{Name: "ping", Path: []string{"shop", "ping"}}, "shop/ping"},
		{"url", &schema.Handler{Name: "ping", Path: []string{"shop", "ping"}, URL: "health"}, "shop/health"},
		{"slash url", &schema.Handler{Name: "ping", Path: []string{"shop", "ping"}, URL: "/health"}, "shop/health"},
		{"ignore prefix", &schema.Handler{Name: "ping", Path: []string{"shop", "ping"}, URL: "/health", IgnorePrefix: true}, "/health"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HandlerURL(tt.handler))
		})
	}
}

func TestPathArgumentNames(t *testing.T) {
	assert.Equal(t, []string{"id", "rest"}, PathArgumentNames("/users/:id/*rest"))
	assert.Nil(t, PathArgumentNames("/users"))
}

func TestOutline_Helpers(t *testing.T) {
	ns := testSchema()
	o, err := NewOutline(ns, Client, ns)
	require.NoError(t, err)

	var visited []string
	o.Walk(func(n *Outline) { visited = append(visited, n.Name) })
	assert.Equal(t, []string{"", "std", "shop"}, visited)

	assert.Nil(t, o.Find([]string{"missing"}))
	assert.False(t, o.IsEmpty())
	assert.False(t, o.Children[0].IsEmpty())

	empty, err := NewOutline(&schema.Namespace{Name: "empty", Path: []string{"empty"}}, Client, ns)
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())

	data := o.Children[0].Interfaces[0]
	assert.Equal(t, "<T>", data.GenericsDeclaration("<", ">"))
	assert.Equal(t, "", o.Interfaces[0].GenericsDeclaration("<", ">"))
}
