package ast

import (
	"strings"

	"aster/internal/source"
)

type TypeKind uint8

const (
	TypePath  TypeKind = iota // std::vec::Vec<T>
	TypeRef                   // &T, &mut T
	TypePtr                   // *const T, *mut T
	TypeSlice                 // [T]
	TypeArray                 // [T; N]
	TypeTuple                 // (A, B), () is the unit type
	TypeInfer                 // _
)

type Mutability uint8

const (
	Immutable Mutability = iota
	Mutable
)

// Type is a syntactic type. Which fields are meaningful depends on Kind:
// Path for TypePath, Elem and Mut for TypeRef/TypePtr, Elem for TypeSlice,
// Elem and Len for TypeArray, Elems for TypeTuple.
type Type struct {
	ID    NodeID
	Kind  TypeKind
	Path  *Path
	Elem  *Type
	Mut   Mutability
	Len   uint64
	Elems []*Type
	Span  source.Span
}

// Path is a possibly global sequence of segments.
type Path struct {
	Global   bool
	Segments []PathSegment
	Span     source.Span
}

type PathSegment struct {
	Ident Ident
	Args  []*Type
}

// String renders the path without generic arguments.
func (p *Path) String() string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	if p.Global {
		sb.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			sb.WriteString("::")
		}
		sb.WriteString(seg.Ident.String())
	}
	return sb.String()
}

// IsIdent reports whether p is a single plain segment named name.
func (p *Path) IsIdent(name string) bool {
	return p != nil && !p.Global && len(p.Segments) == 1 &&
		len(p.Segments[0].Args) == 0 && p.Segments[0].Ident.String() == name
}
