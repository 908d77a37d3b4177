package aster

import (
	"iter"

	"aster/internal/ast"
	"aster/internal/source"
)

// StructFieldBuilder accumulates one struct field. The field is finished by
// supplying its type, directly through BuildType or through Ty.
type StructFieldBuilder[R any] struct {
	callback Invoker[ast.StructField, R]
	span     source.Span
	kind     ast.FieldKind
	attrs    []ast.Attribute
	done     finished
}

// NewNamedField starts a `name: T` field whose result is the field itself.
func NewNamedField[N ast.IdentLike](name N) *StructFieldBuilder[ast.StructField] {
	return NamedFieldWithCallback[N, ast.StructField](name, Identity[ast.StructField]{})
}

// NewUnnamedField starts a positional field whose result is the field itself.
func NewUnnamedField() *StructFieldBuilder[ast.StructField] {
	return UnnamedFieldWithCallback[ast.StructField](Identity[ast.StructField]{})
}

// NamedFieldWithCallback starts a named field that is handed to callback when finished.
// An invalid name panics with *ast.IdentError.
func NamedFieldWithCallback[N ast.IdentLike, R any](name N, callback Invoker[ast.StructField, R]) *StructFieldBuilder[R] {
	return &StructFieldBuilder[R]{
		callback: callback,
		kind:     ast.NamedField{Name: ast.ToIdent(name), Vis: ast.VisInherited},
	}
}

// UnnamedFieldWithCallback starts a positional field that is handed to callback when finished.
func UnnamedFieldWithCallback[R any](callback Invoker[ast.StructField, R]) *StructFieldBuilder[R] {
	return &StructFieldBuilder[R]{
		callback: callback,
		kind:     ast.UnnamedField{Vis: ast.VisInherited},
	}
}

func (b *StructFieldBuilder[R]) Span(sp source.Span) *StructFieldBuilder[R] {
	b.done.check("struct field builder")
	b.span = sp
	return b
}

// Pub makes the field public, whichever kind it is.
func (b *StructFieldBuilder[R]) Pub() *StructFieldBuilder[R] {
	b.done.check("struct field builder")
	b.kind = ast.WithVisibility(b.kind, ast.VisPublic)
	return b
}

// WithAttrs appends attrs in order.
func (b *StructFieldBuilder[R]) WithAttrs(attrs ...ast.Attribute) *StructFieldBuilder[R] {
	b.done.check("struct field builder")
	b.attrs = append(b.attrs, attrs...)
	return b
}

// WithAttrSeq appends every attribute yielded by seq, in order.
func (b *StructFieldBuilder[R]) WithAttrSeq(seq iter.Seq[ast.Attribute]) *StructFieldBuilder[R] {
	b.done.check("struct field builder")
	for a := range seq {
		b.attrs = append(b.attrs, a)
	}
	return b
}

// AddAttr appends a single attribute. Nested attribute builders land here.
func (b *StructFieldBuilder[R]) AddAttr(a ast.Attribute) *StructFieldBuilder[R] {
	return b.WithAttrs(a)
}

// Attr opens an attribute builder that returns to this field when done.
func (b *StructFieldBuilder[R]) Attr() *AttrBuilder[*StructFieldBuilder[R]] {
	b.done.check("struct field builder")
	return AttrWithCallback[*StructFieldBuilder[R]](fieldAttrSink[R]{b}).Span(b.span)
}

// Ty opens a type builder; finishing it finishes the field.
func (b *StructFieldBuilder[R]) Ty() *TypeBuilder[R] {
	b.done.check("struct field builder")
	return TyWithCallback[R](b).Span(b.span)
}

// Invoke lets the field builder act as the continuation of a type builder.
func (b *StructFieldBuilder[R]) Invoke(ty *ast.Type) R {
	return b.BuildType(ty)
}

// BuildType finishes the field with ty and passes it to the continuation.
func (b *StructFieldBuilder[R]) BuildType(ty *ast.Type) R {
	b.done.finish("struct field builder")
	field := ast.StructField{
		Kind:  b.kind,
		ID:    ast.NewPlaceholderID(),
		Type:  ty,
		Attrs: b.attrs,
		Span:  b.span,
	}
	b.attrs = nil
	return b.callback.Invoke(field)
}

type fieldAttrSink[R any] struct {
	b *StructFieldBuilder[R]
}

func (s fieldAttrSink[R]) Invoke(a ast.Attribute) *StructFieldBuilder[R] {
	return s.b.AddAttr(a)
}
