package gen

import (
	"go/token"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dto-generator/internal/analyze"
	"dto-generator/internal/plan"
)

func stringType() *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindBasic, ID: analyze.TypeID{Name: "string"}}
}

func uint32Type() *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindBasic, ID: analyze.TypeID{Name: "uint32"}}
}

func enumType(pkgPath, name string) *analyze.TypeInfo {
	return &analyze.TypeInfo{
		ID:         analyze.TypeID{PkgPath: pkgPath, Name: name},
		Kind:       analyze.TypeKindAlias,
		Underlying: stringType(),
	}
}

func field(name string, typ *analyze.TypeInfo, tag string, index int) analyze.FieldInfo {
	return analyze.FieldInfo{
		Name:     name,
		Exported: true,
		Type:     typ,
		Tag:      reflect.StructTag(tag),
		Index:    index,
		Pos:      token.Position{Filename: "view.go", Line: 10 + index, Column: 2, Offset: 100 + 50*index},
	}
}

func userViewPlan(t *testing.T) (*analyze.TypeGraph, *plan.StructPlan) {
	t.Helper()

	source := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "dto-generator/examples/store", Name: "User"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			field("ID", stringType(), "", 0),
			field("Name", stringType(), "", 1),
			field("Age", uint32Type(), "", 2),
			field("Password", stringType(), "", 3),
			field("Status", enumType("dto-generator/examples/store", "Status"), "", 4),
		},
	}

	ptrString := &analyze.TypeInfo{Kind: analyze.TypeKindPointer, ElemType: stringType()}
	target := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "dto-generator/examples/view", Name: "UserView"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			field("DisplayName", stringType(), `dto:"rename=Name,transform_fn=MaskName"`, 0),
			field("Age", uint32Type(), "", 1),
			field("Note", ptrString, `dto:"skip"`, 2),
			field("Status", enumType("dto-generator/examples/view", "Status"), `dto:"into"`, 3),
		},
	}

	graph := analyze.NewTypeGraph()
	graph.Types[source.ID] = source
	graph.Types[target.ID] = target

	decl := analyze.Declaration{
		Type:       target,
		Directives: []analyze.Directive{{Text: "from store.User"}},
	}

	p := plan.NewResolver(graph).Resolve(&decl)
	require.True(t, p.Diagnostics.IsValid(), "unexpected diagnostics: %v", p.Diagnostics.Error())

	return graph, p
}

func TestGenerateUserViewConverter(t *testing.T) {
	graph, p := userViewPlan(t)

	g := NewGenerator(DefaultGeneratorConfig(), graph)

	files, err := g.Generate([]*plan.StructPlan{p})
	require.NoError(t, err)
	require.Len(t, files, 1)

	file := files[0]
	assert.Equal(t, "user_view_from_user_gen.go", file.Filename)

	content := string(file.Content)

	assert.Contains(t, content, "// Code generated by dtogen. DO NOT EDIT.")
	assert.Contains(t, content, "package view")
	assert.Contains(t, content, `"dto-generator/examples/store"`)
	assert.Contains(t, content, "func UserViewFromUser(in store.User) UserView {")
	assert.Contains(t, content, "out.DisplayName = MaskName(in.Name)")
	assert.Contains(t, content, "out.Age = in.Age")
	assert.Contains(t, content, "out.Note = nil")
	assert.Contains(t, content, "out.Status = Status(in.Status)")
	assert.Contains(t, content, "return out")

	// Unreferenced source fields never leak into the converter.
	assert.NotContains(t, content, "in.ID")
	assert.NotContains(t, content, "in.Password")
}

func TestGenerateSkipsInvalidPlans(t *testing.T) {
	graph, p := userViewPlan(t)
	p.Diagnostics.AddError("IncompatibleType", "boom", token.Position{})

	g := NewGenerator(DefaultGeneratorConfig(), graph)

	files, err := g.Generate([]*plan.StructPlan{p})
	require.NoError(t, err)
	assert.Empty(t, files, "plans with diagnostics must not render")
}

func TestGenerateQualifiedTransform(t *testing.T) {
	source := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "dto-generator/examples/store", Name: "Article"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			field("Title", stringType(), "", 0),
		},
	}
	target := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "dto-generator/examples/api", Name: "ArticleView"},
		Kind: analyze.TypeKindStruct,
		Fields: []analyze.FieldInfo{
			field("Headline", stringType(), `dto:"rename=Title,transform_fn=dto-generator/helpers.Shorten"`, 0),
		},
	}

	graph := analyze.NewTypeGraph()
	graph.Types[source.ID] = source
	graph.Types[target.ID] = target

	decl := analyze.Declaration{
		Type:       target,
		Directives: []analyze.Directive{{Text: "from store.Article"}},
	}

	p := plan.NewResolver(graph).Resolve(&decl)
	require.True(t, p.Diagnostics.IsValid())

	g := NewGenerator(DefaultGeneratorConfig(), graph)

	files, err := g.Generate([]*plan.StructPlan{p})
	require.NoError(t, err)
	require.Len(t, files, 1)

	content := string(files[0].Content)
	assert.Contains(t, content, `"dto-generator/helpers"`)
	assert.Contains(t, content, "out.Headline = helpers.Shorten(in.Title)")
}

func TestGenerateCommentsToggle(t *testing.T) {
	graph, p := userViewPlan(t)

	cfg := DefaultGeneratorConfig()
	cfg.GenerateComments = false

	g := NewGenerator(cfg, graph)

	files, err := g.Generate([]*plan.StructPlan{p})
	require.NoError(t, err)

	content := string(files[0].Content)
	assert.NotContains(t, content, "// skipped")
	assert.NotContains(t, content, "// converted")
}

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"UserView", "user_view"},
		{"ID", "i_d"},
		{"Article", "article"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, camelToSnake(tt.in))
	}
}

func TestZeroValues(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig(), analyze.NewTypeGraph())

	tests := []struct {
		name string
		typ  *analyze.TypeInfo
		want string
	}{
		{"string", stringType(), `""`},
		{"uint32", uint32Type(), "0"},
		{"bool", &analyze.TypeInfo{Kind: analyze.TypeKindBasic, ID: analyze.TypeID{Name: "bool"}}, "false"},
		{"pointer", &analyze.TypeInfo{Kind: analyze.TypeKindPointer, ElemType: stringType()}, "nil"},
		{"slice", &analyze.TypeInfo{Kind: analyze.TypeKindSlice, ElemType: stringType()}, "nil"},
		{"map", &analyze.TypeInfo{Kind: analyze.TypeKindMap, KeyType: stringType(), ElemType: stringType()}, "nil"},
		{"named string", enumType("p", "Status"), `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.zeroValue(tt.typ, map[string]importSpec{}))
		})
	}
}

func TestZeroValueStructImportsPackage(t *testing.T) {
	g := NewGenerator(DefaultGeneratorConfig(), analyze.NewTypeGraph())

	structType := &analyze.TypeInfo{
		ID:   analyze.TypeID{PkgPath: "dto-generator/examples/store", Name: "Author"},
		Kind: analyze.TypeKindStruct,
	}

	imports := map[string]importSpec{}
	got := g.zeroValue(structType, imports)

	assert.Equal(t, "store.Author{}", got)
	assert.Contains(t, imports, "dto-generator/examples/store")
}

func TestGeneratedCodeIsFormatted(t *testing.T) {
	graph, p := userViewPlan(t)

	g := NewGenerator(DefaultGeneratorConfig(), graph)

	files, err := g.Generate([]*plan.StructPlan{p})
	require.NoError(t, err)

	content := string(files[0].Content)
	assert.False(t, strings.Contains(content, "\n\n\n"), "no triple blank lines after gofmt")
	assert.True(t, strings.HasSuffix(content, "}\n"))
}
