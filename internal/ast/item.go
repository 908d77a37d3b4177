package ast

import "aster/internal/source"

type VariantKind uint8

const (
	VariantStruct VariantKind = iota // struct S { a: T }
	VariantTuple                     // struct S(T);
	VariantUnit                      // struct S;
)

func (k VariantKind) String() string {
	switch k {
	case VariantStruct:
		return "struct"
	case VariantTuple:
		return "tuple"
	case VariantUnit:
		return "unit"
	default:
		return "unknown"
	}
}

// VariantData is the body of a struct definition.
type VariantData struct {
	Kind   VariantKind
	Fields []StructField
	ID     NodeID
}

// Item is a top-level struct declaration.
type Item struct {
	ID       NodeID
	Ident    Ident
	Vis      Visibility
	Attrs    []Attribute
	Generics []Ident
	Data     VariantData
	Span     source.Span
}
