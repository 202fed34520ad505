package gen

import (
	"dto-generator/internal/analyze"
	"dto-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// getPkgName returns the package name for a given package path. It tries to
// look up the name from the type graph, falling back to the path base alias.
func (g *Generator) getPkgName(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	if g.graph != nil {
		if pkgInfo, ok := g.graph.Packages[pkgPath]; ok {
			return pkgInfo.Name
		}
	}

	return common.PkgAlias(pkgPath)
}

// addImport adds an import to the imports map.
func (g *Generator) addImport(imports map[string]importSpec, pkgPath string) {
	if pkgPath == "" || imports == nil {
		return
	}

	imports[pkgPath] = importSpec{
		Alias: g.getPkgName(pkgPath),
		Path:  pkgPath,
	}
}

// typeRefString returns the string representation of a type for use in
// generated code, qualifying and importing cross-package names.
func (g *Generator) typeRefString(t *analyze.TypeInfo, imports map[string]importSpec) string {
	if t == nil {
		return "any"
	}

	switch t.Kind {
	case analyze.TypeKindBasic:
		return t.ID.Name

	case analyze.TypeKindPointer:
		return "*" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindSlice:
		return "[]" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindMap:
		return "map[" + g.typeRefString(t.KeyType, imports) + "]" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindArray:
		// go/types keeps the length; TypeInfo does not.
		if t.GoType != nil {
			return t.GoType.String()
		}

		return "[]" + g.typeRefString(t.ElemType, imports)

	case analyze.TypeKindStruct, analyze.TypeKindAlias, analyze.TypeKindExternal:
		if t.ID.PkgPath != "" && t.ID.PkgPath != g.contextPkgPath {
			g.addImport(imports, t.ID.PkgPath)

			return g.getPkgName(t.ID.PkgPath) + "." + t.ID.Name
		}

		return t.ID.Name

	default:
		return "any"
	}
}

// zeroValue returns the zero-value expression for a type, used for skipped
// fields.
func (g *Generator) zeroValue(t *analyze.TypeInfo, imports map[string]importSpec) string {
	if t == nil {
		return "nil"
	}

	switch t.Kind {
	case analyze.TypeKindBasic:
		return zeroValueForBasic(t.ID.Name)

	case analyze.TypeKindAlias:
		if t.Underlying != nil {
			// Untyped constants assign to named basic types directly.
			return g.zeroValue(t.Underlying, imports)
		}

		return g.typeRefString(t, imports) + "{}"

	case analyze.TypeKindPointer, analyze.TypeKindSlice, analyze.TypeKindMap:
		return "nil"

	case analyze.TypeKindStruct, analyze.TypeKindExternal, analyze.TypeKindArray:
		return g.typeRefString(t, imports) + "{}"

	default:
		return "nil"
	}
}

// zeroValueForBasic returns the zero value for a builtin basic type.
func zeroValueForBasic(name string) string {
	switch name {
	case "string":
		return `""`
	case "bool":
		return "false"
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"float32", "float64", "byte", "rune",
		"complex64", "complex128":
		return "0"
	default:
		return "nil"
	}
}
