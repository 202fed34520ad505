package analyze

import "go/types"

// Identical reports whether two types are declared identical. When both sides
// carry their go/types representation the check is exact; otherwise it falls
// back to a structural comparison of the graph nodes, which keeps the check
// usable for schemas constructed in memory.
func Identical(a, b *TypeInfo) bool {
	if a == nil || b == nil {
		return false
	}

	if a.GoType != nil && b.GoType != nil {
		return types.Identical(a.GoType, b.GoType)
	}

	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind {
	case TypeKindPointer, TypeKindSlice, TypeKindArray:
		return Identical(a.ElemType, b.ElemType)
	case TypeKindMap:
		return Identical(a.KeyType, b.KeyType) && Identical(a.ElemType, b.ElemType)
	default:
		return a.ID == b.ID
	}
}
