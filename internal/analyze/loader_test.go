package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("dto-generator/examples/store", "dto-generator/examples/view")
	require.NoError(t, err)
	require.NotNil(t, graph)

	// Check that packages were loaded
	assert.Contains(t, graph.Packages, "dto-generator/examples/store")
	assert.Contains(t, graph.Packages, "dto-generator/examples/view")

	// Check that types were extracted
	storeUser := TypeID{PkgPath: "dto-generator/examples/store", Name: "User"}
	assert.Contains(t, graph.Types, storeUser)

	userView := TypeID{PkgPath: "dto-generator/examples/view", Name: "UserView"}
	assert.Contains(t, graph.Types, userView)
}

func TestAnalyzer_UserFields(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("dto-generator/examples/store")
	require.NoError(t, err)

	userID := TypeID{PkgPath: "dto-generator/examples/store", Name: "User"}
	user := graph.GetType(userID)
	require.NotNil(t, user)
	assert.Equal(t, TypeKindStruct, user.Kind)

	// Field order must follow the declaration
	assert.Equal(t, []string{"ID", "Name", "Age", "Password", "Status"}, user.FieldNames())
}

func TestAnalyzer_FieldTags(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("dto-generator/examples/view")
	require.NoError(t, err)

	viewID := TypeID{PkgPath: "dto-generator/examples/view", Name: "UserView"}
	view := graph.GetType(viewID)
	require.NotNil(t, view)

	display := view.Field("DisplayName")
	require.NotNil(t, display)

	tag, ok := display.MappingTag()
	assert.True(t, ok)
	assert.Equal(t, "rename=Name,transform_fn=MaskName", tag)

	// AST overlay attaches the raw literal and positions
	assert.Equal(t, "`dto:\"rename=Name,transform_fn=MaskName\"`", display.RawTag)
	assert.True(t, display.Pos.IsValid(), "field position should be set")
	assert.True(t, display.TagPos.IsValid(), "tag position should be set")
	assert.Greater(t, display.TagPos.Column, display.Pos.Column)

	// Untagged fields carry no mapping tag
	age := view.Field("Age")
	require.NotNil(t, age)
	_, ok = age.MappingTag()
	assert.False(t, ok)
}

func TestAnalyzer_SliceField(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("dto-generator/examples/store")
	require.NoError(t, err)

	articleID := TypeID{PkgPath: "dto-generator/examples/store", Name: "Article"}
	article := graph.GetType(articleID)
	require.NotNil(t, article)

	labels := article.Field("Labels")
	require.NotNil(t, labels)

	// Labels should be a slice of structs
	assert.Equal(t, TypeKindSlice, labels.Type.Kind)
	require.NotNil(t, labels.Type.ElemType)
	assert.Equal(t, TypeKindStruct, labels.Type.ElemType.Kind)
	assert.Equal(t, "Tag", labels.Type.ElemType.ID.Name)
}

func TestAnalyzer_PointerField(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("dto-generator/examples/store")
	require.NoError(t, err)

	articleID := TypeID{PkgPath: "dto-generator/examples/store", Name: "Article"}
	article := graph.GetType(articleID)
	require.NotNil(t, article)

	author := article.Field("Author")
	require.NotNil(t, author)

	// Author should be a pointer to a struct
	assert.Equal(t, TypeKindPointer, author.Type.Kind)
	require.NotNil(t, author.Type.ElemType)
	assert.Equal(t, TypeKindStruct, author.Type.ElemType.Kind)
}

func TestAnalyzer_NamedBasicType(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("dto-generator/examples/store")
	require.NoError(t, err)

	statusID := TypeID{PkgPath: "dto-generator/examples/store", Name: "Status"}
	status := graph.GetType(statusID)
	require.NotNil(t, status)

	// Status is a named type over string
	assert.Equal(t, TypeKindAlias, status.Kind)
	require.NotNil(t, status.Underlying)
	assert.Equal(t, TypeKindBasic, status.Underlying.Kind)
	assert.Equal(t, "string", status.Underlying.ID.Name)
}

func TestAnalyzer_Declarations(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages("dto-generator/examples/...")
	require.NoError(t, err)

	decls := analyzer.Declarations()
	require.Len(t, decls, 2)

	// Source order within the file
	assert.Equal(t, "UserView", decls[0].Name())
	assert.Equal(t, "ArticleView", decls[1].Name())

	require.Len(t, decls[0].Directives, 1)
	assert.Equal(t, "from store.User", decls[0].Directives[0].Text)
	assert.True(t, decls[0].Directives[0].Pos.IsValid())

	require.Len(t, decls[1].Directives, 1)
	assert.Equal(t, "from store.Article", decls[1].Directives[0].Text)
}

func TestResolveTypeRef(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages("dto-generator/examples/...")
	require.NoError(t, err)

	// Short package form
	user := ResolveTypeRef("store.User", graph)
	require.NotNil(t, user)
	assert.Equal(t, "dto-generator/examples/store", user.ID.PkgPath)

	// Full import path
	article := ResolveTypeRef("dto-generator/examples/store.Article", graph)
	require.NotNil(t, article)
	assert.Equal(t, "Article", article.ID.Name)

	// Bare name
	tag := ResolveTypeRef("Tag", graph)
	require.NotNil(t, tag)
	assert.Equal(t, "Tag", tag.ID.Name)

	// Unknown references resolve to nil
	assert.Nil(t, ResolveTypeRef("store.Order", graph))
	assert.Nil(t, ResolveTypeRef("", graph))
	assert.Nil(t, ResolveTypeRef("x.", graph))
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: "dto-generator/examples/store", Name: "User"}
	assert.Equal(t, "dto-generator/examples/store.User", id.String())

	// Empty package path
	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "basic", TypeKindBasic.String())
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "pointer", TypeKindPointer.String())
	assert.Equal(t, "slice", TypeKindSlice.String())
	assert.Equal(t, "map", TypeKindMap.String())
	assert.Equal(t, "alias", TypeKindAlias.String())
	assert.Equal(t, "external", TypeKindExternal.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}
