package analyze

import (
	"go/token"
	"go/types"
	"reflect"

	"dto-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "dto-generator/examples/store"
	Name    string // e.g., "User"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // named-field struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindMap               // map type
	TypeKindAlias             // named type wrapping another
	TypeKindExternal          // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID         // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind       // Kind of type
	Underlying *TypeInfo      // For named types, the underlying type
	ElemType   *TypeInfo      // For pointers, slices, arrays, and maps, the element type
	KeyType    *TypeInfo      // For maps, the key type
	Fields     []FieldInfo    // For structs, the ordered list of fields
	GoType     types.Type     // The original go/types.Type (for identity checks)
	Pos        token.Position // Declaration position (zero for synthetic/unnamed types)
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// IsSchema reports whether the type is a named-field record type that can act
// as a mapping source or target.
func (t *TypeInfo) IsSchema() bool {
	return t != nil && t.Kind == TypeKindStruct
}

// Field returns the field with the given name, or nil if absent.
func (t *TypeInfo) Field(name string) *FieldInfo {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// FieldNames returns the ordered field names.
func (t *TypeInfo) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}

	return names
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Parsed struct tag
	RawTag   string            // Raw tag literal including quotes, "" if none
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
	Pos      token.Position    // Position of the field name
	TagPos   token.Position    // Position of the tag literal (zero if no tag)
}

// MappingTag returns the raw value of the dto tag, and whether it is present.
func (f *FieldInfo) MappingTag() (string, bool) {
	return f.Tag.Lookup("dto")
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory of the package sources
	Types []TypeID // Named types defined in this package
}

// Directive is one raw `dto:` line from a declaration's doc comment, with the
// leading "dto:" marker stripped. "from store.User" for `//dto:from store.User`.
type Directive struct {
	Text string
	Pos  token.Position
}

// Declaration is one annotated target type found in the loaded packages.
// Targets are type declarations whose doc comment carries at least one `dto:`
// directive; the type may be of any kind (the pipeline rejects non-structs).
type Declaration struct {
	Type       *TypeInfo
	Directives []Directive
	Pos        token.Position // Position of the type name in the declaration
}

// Name returns the declared type's identifier.
func (d *Declaration) Name() string {
	return d.Type.ID.Name
}
