package ast

import "aster/internal/source"

// FieldKind is either NamedField or UnnamedField. The variant is chosen when
// the field is created and never changes; only its visibility may.
type FieldKind interface {
	Visibility() Visibility
	fieldKind()
}

// NamedField is a `name: Type` member of a brace struct.
type NamedField struct {
	Name Ident
	Vis  Visibility
}

// UnnamedField is a positional member of a tuple struct.
type UnnamedField struct {
	Vis Visibility
}

func (k NamedField) Visibility() Visibility   { return k.Vis }
func (k UnnamedField) Visibility() Visibility { return k.Vis }

func (NamedField) fieldKind()   {}
func (UnnamedField) fieldKind() {}

// WithVisibility returns kind with its visibility replaced, keeping the variant.
func WithVisibility(kind FieldKind, vis Visibility) FieldKind {
	switch k := kind.(type) {
	case NamedField:
		k.Vis = vis
		return k
	case UnnamedField:
		k.Vis = vis
		return k
	default:
		panic("ast: unknown field kind")
	}
}

// StructField is one finished member of a struct.
type StructField struct {
	Kind  FieldKind
	ID    NodeID
	Type  *Type
	Attrs []Attribute
	Span  source.Span
}

// Name returns the field name; ok is false for positional fields.
func (f *StructField) Name() (Ident, bool) {
	if k, ok := f.Kind.(NamedField); ok {
		return k.Name, true
	}
	return Ident{}, false
}

func (f *StructField) Visibility() Visibility {
	if f.Kind == nil {
		return VisInherited
	}
	return f.Kind.Visibility()
}
