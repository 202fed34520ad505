package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// directivePrefix marks a dto directive comment line, e.g. //dto:from store.User.
const directivePrefix = "//dto:"

// Analyzer loads Go packages and builds a type graph plus the list of
// annotated target declarations.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	decls     []Declaration
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
	}
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./...", "dto-generator/examples/store").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	sort.SliceStable(a.decls, func(i, j int) bool {
		pi, pj := a.decls[i].Pos, a.decls[j].Pos
		if pi.Filename != pj.Filename {
			return pi.Filename < pj.Filename
		}

		return pi.Offset < pj.Offset
	})

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// Declarations returns all annotated target declarations in source order.
func (a *Analyzer) Declarations() []Declaration {
	return a.decls
}

// processPackage extracts types and annotated declarations from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}

		if !typeName.Exported() {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.ID = typeID
		typeInfo.Pos = pkg.Fset.Position(typeName.Pos())

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo

	// Second pass over the syntax trees: field positions, tag literals,
	// and dto directives are only visible in the AST.
	for _, file := range pkg.Syntax {
		a.processFile(pkg, file)
	}
}

// processFile overlays AST-level detail onto the type graph and collects
// annotated declarations.
func (a *Analyzer) processFile(pkg *packages.Package, file *ast.File) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}

		for _, spec := range genDecl.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok || !ts.Name.IsExported() {
				continue
			}

			id := TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name}

			info := a.graph.GetType(id)
			if info == nil {
				continue
			}

			if st, ok := ts.Type.(*ast.StructType); ok {
				a.overlayFieldSpans(pkg, info, st)
			}

			doc := ts.Doc
			if doc == nil {
				doc = genDecl.Doc
			}

			directives := extractDirectives(pkg.Fset, doc)
			if len(directives) == 0 {
				continue
			}

			a.decls = append(a.decls, Declaration{
				Type:       info,
				Directives: directives,
				Pos:        pkg.Fset.Position(ts.Name.Pos()),
			})
		}
	}
}

// overlayFieldSpans attaches positions and raw tag literals to the fields of a
// struct TypeInfo. Fields are matched by name; unexported fields are absent
// from the type graph and skipped here too.
func (a *Analyzer) overlayFieldSpans(pkg *packages.Package, info *TypeInfo, st *ast.StructType) {
	for _, astField := range st.Fields.List {
		names := fieldNames(astField)

		for _, name := range names {
			fi := info.Field(name.name)
			if fi == nil {
				continue
			}

			fi.Pos = pkg.Fset.Position(name.pos)

			if astField.Tag != nil {
				fi.RawTag = astField.Tag.Value
				fi.TagPos = pkg.Fset.Position(astField.Tag.Pos())

				if unquoted, err := strconv.Unquote(astField.Tag.Value); err == nil {
					fi.Tag = reflect.StructTag(unquoted)
				}
			}
		}
	}
}

type namedPos struct {
	name string
	pos  token.Pos
}

// fieldNames flattens the declared names of one AST field entry. Embedded
// fields take the name of their (possibly pointed-to) type.
func fieldNames(f *ast.Field) []namedPos {
	if len(f.Names) > 0 {
		result := make([]namedPos, len(f.Names))
		for i, n := range f.Names {
			result[i] = namedPos{name: n.Name, pos: n.Pos()}
		}

		return result
	}

	expr := f.Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}

	switch e := expr.(type) {
	case *ast.Ident:
		return []namedPos{{name: e.Name, pos: e.Pos()}}
	case *ast.SelectorExpr:
		return []namedPos{{name: e.Sel.Name, pos: e.Sel.Pos()}}
	default:
		return nil
	}
}

// extractDirectives pulls dto: directive lines out of a doc comment. The
// returned positions point at the directive key, just past the "//dto:" marker.
func extractDirectives(fset *token.FileSet, doc *ast.CommentGroup) []Directive {
	if doc == nil {
		return nil
	}

	var directives []Directive

	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}

		pos := fset.Position(c.Pos())
		pos.Column += len(directivePrefix)
		pos.Offset += len(directivePrefix)

		directives = append(directives, Directive{
			Text: strings.TrimSpace(c.Text[len(directivePrefix):]),
			Pos:  pos,
		})
	}

	return directives
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	if alias, ok := t.(*types.Alias); ok {
		resolved := a.analyzeType(types.Unalias(alias))
		a.typeCache[t] = resolved

		return resolved
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (details are filled in below).
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		info.Kind = TypeKindBasic
		info.ID = TypeID{Name: tt.Name()}

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Interfaces, channels, functions, etc. are unsupported schema shapes.
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	if obj.Pkg() != nil {
		info.ID = TypeID{
			PkgPath: obj.Pkg().Path(),
			Name:    obj.Name(),
		}
	} else {
		info.ID = TypeID{Name: obj.Name()}
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Basic:
		// Named type over a basic type (e.g., type Status string).
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)

	default:
		if obj.Pkg() != nil && a.isExternalPackage(obj.Pkg().Path()) {
			info.Kind = TypeKindExternal
		} else {
			info.Kind = TypeKindAlias
			info.Underlying = a.analyzeType(ut)
		}
	}
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts exported fields from a struct type.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := 0; i < st.NumFields(); i++ {
		field := st.Field(i)

		if !field.Exported() {
			continue
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: true,
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// ResolveTypeRef resolves a type reference string against the graph:
//   - "store.User" (short package form)
//   - "dto-generator/examples/store.User" (full import path)
//   - "User" (name only, best-effort)
func ResolveTypeRef(ref string, graph *TypeGraph) *TypeInfo {
	if graph == nil || ref == "" {
		return nil
	}

	if !strings.Contains(ref, ".") {
		for id, t := range graph.Types {
			if id.Name == ref {
				return t
			}
		}

		return nil
	}

	lastDot := strings.LastIndex(ref, ".")

	pkgStr := ref[:lastDot]
	name := ref[lastDot+1:]

	if pkgStr == "" || name == "" {
		return nil
	}

	// Exact match on the fully qualified import path.
	if t := graph.GetType(TypeID{PkgPath: pkgStr, Name: name}); t != nil {
		return t
	}

	// Suffix match for short forms like "store.User".
	for id, t := range graph.Types {
		if id.Name != name {
			continue
		}

		if id.PkgPath == pkgStr || strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			return t
		}
	}

	return nil
}
